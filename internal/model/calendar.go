package model

// DayAvailability classifies a calendar day from the daily buckets.
type DayAvailability struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// DayInfo is one cell of the calendar grid. Derived per request from
// DailyAppointments and never persisted. Availability is nil for dates
// the upstream window does not cover.
type DayInfo struct {
	Date           string           `json:"date"`
	Day            int              `json:"day"`
	IsCurrentMonth bool             `json:"isCurrentMonth"`
	IsToday        bool             `json:"isToday"`
	IsWeekend      bool             `json:"isWeekend"`
	WeekNumber     int              `json:"weekNumber"`
	Availability   *DayAvailability `json:"availability,omitempty"`
}

// MonthView is a single month of the rolling calendar.
type MonthView struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []DayInfo `json:"days"`
}

// CalendarView is the full derived schedule: twelve consecutive months
// plus the first day found open, if any.
type CalendarView struct {
	Months            []MonthView `json:"months"`
	FirstAvailableDay string      `json:"firstAvailableDay,omitempty"`
}
