package model

// NotificationPreference is a user's subscription window. Identity is the
// server-assigned NotificationID; the upstream API owns the record.
type NotificationPreference struct {
	NotificationID string   `json:"notificationId"`
	Days           []string `json:"days"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	StartTime      string   `json:"startTime"`
	EndTime        string   `json:"endTime"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

type CreateNotificationRequest struct {
	Days      []string `json:"days" binding:"required,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartDate string   `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" binding:"required,datetime=2006-01-02"`
	StartTime string   `json:"startTime" binding:"required,hhmm"`
	EndTime   string   `json:"endTime" binding:"required,hhmm"`
}

type UpdateNotificationRequest struct {
	Days      []string `json:"days" binding:"omitempty,min=1,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartDate string   `json:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string   `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	StartTime string   `json:"startTime" binding:"omitempty,hhmm"`
	EndTime   string   `json:"endTime" binding:"omitempty,hhmm"`
}
