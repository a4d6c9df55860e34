package model

// AppointmentStatus is the upstream scheduling state of a slot.
type AppointmentStatus string

const (
	AppointmentStatusOpen   AppointmentStatus = "Open"
	AppointmentStatusBooked AppointmentStatus = "Booked"
)

// StatusChange is one entry of an appointment's append-only history.
// Timestamps are unix seconds and non-decreasing per appointment as
// recorded upstream; that ordering is not re-verified here.
type StatusChange struct {
	Status    AppointmentStatus `json:"status"`
	Timestamp int64             `json:"timestamp"`
}

// Appointment is a single schedulable slot with its status history.
type Appointment struct {
	Date    string            `json:"date"`
	Time    string            `json:"time"`
	Status  AppointmentStatus `json:"status"`
	History []StatusChange    `json:"history"`
}

// AppointmentSlot is the ranged-listing shape (GET /appointments).
type AppointmentSlot struct {
	Date   string            `json:"date"`
	Time   string            `json:"time"`
	Status AppointmentStatus `json:"status"`
}

// RecentAppointmentsPage is one page of the recent-appointments feed.
type RecentAppointmentsPage struct {
	Items     []Appointment `json:"items"`
	NextToken string        `json:"nextToken,omitempty"`
}

// AppointmentsPage is one page of the ranged listing.
type AppointmentsPage struct {
	Items     []AppointmentSlot `json:"items"`
	NextToken string            `json:"nextToken,omitempty"`
}

// DailyAppointments groups a rolling window of dates (YYYY-MM-DD) into
// three disjoint availability buckets. A date absent from all three has
// unknown availability.
type DailyAppointments struct {
	Open        []string `json:"open"`
	Booked      []string `json:"booked"`
	Unavailable []string `json:"unavailable"`
}

// RecentChange is one row of the status-change ticker: a history entry
// annotated with its appointment and the status it transitioned from.
type RecentChange struct {
	Date           string             `json:"date"`
	Time           string             `json:"time"`
	Status         AppointmentStatus  `json:"status"`
	LastChanged    int64              `json:"lastChanged"`
	PreviousStatus *AppointmentStatus `json:"previousStatus,omitempty"`
}
