package model

// Group is a pool of brackets competing against each other.
type Group struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Year     int       `json:"year"`
	Size     int       `json:"size"`
	Brackets []Bracket `json:"brackets,omitempty"`
}

// GroupSummary is the search-result shape: a group without its brackets.
type GroupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Year int    `json:"year"`
	Size int    `json:"size"`
}

// Bracket is one user's set of tournament predictions.
type Bracket struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Owner string `json:"owner,omitempty"`
	Rank  int    `json:"rank,omitempty"`
}

type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Seed int    `json:"seed"`
}

// WrappedSlide is one precomputed summary slide. Slides arrive fully
// formed from the remote API; nothing is computed client-side.
type WrappedSlide struct {
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
