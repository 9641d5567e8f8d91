package dto

import "time"

type CreateBookingRequest struct {
	CustomerID  *uint     `json:"customer_id"`
	TeacherID   uint      `json:"teacher_id"`
	PackageID   *uint     `json:"package_id"`
	SessionType string    `json:"session_type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Notes       string    `json:"notes"`
	CreatedBy   string    `json:"created_by"`
	AutoConfirm bool      `json:"auto_confirm"`
}

type ConfirmBookingRequest struct {
	ConfirmedBy string     `json:"confirmed_by"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type AttendanceRequest struct {
	Outcome string `json:"outcome"`
}

type CreateBlockRequest struct {
	TeacherID uint      `json:"teacher_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"created_by"`
}
