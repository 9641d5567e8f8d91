package dto

import (
	"time"

	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/service"
)

type BookingResponse struct {
	ID                 uint                 `json:"id"`
	CustomerID         *uint                `json:"customer_id,omitempty"`
	TeacherID          uint                 `json:"teacher_id"`
	PackageID          *uint                `json:"package_id,omitempty"`
	SessionType        models.SessionType   `json:"session_type"`
	StartTime          time.Time            `json:"start_time"`
	EndTime            time.Time            `json:"end_time"`
	Status             models.BookingStatus `json:"status"`
	Notes              string               `json:"notes,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time           `json:"confirmed_at,omitempty"`
	AttendanceMarkedAt *time.Time           `json:"attendance_marked_at,omitempty"`
	CalendarEventID    string               `json:"calendar_event_id,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
}

func ToBookingResponse(b *models.Booking) BookingResponse {
	return BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		TeacherID:          b.TeacherID,
		PackageID:          b.PackageID,
		SessionType:        b.SessionType,
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		ConfirmedAt:        b.ConfirmedAt,
		AttendanceMarkedAt: b.AttendanceMarkedAt,
		CalendarEventID:    b.CalendarEventID,
		CreatedAt:          b.CreatedAt,
	}
}

type PackageResponse struct {
	ID            uint                 `json:"id"`
	CustomerID    uint                 `json:"customer_id"`
	TotalSessions int                  `json:"total_sessions"`
	Remaining     int                  `json:"remaining_sessions"`
	Debited       int                  `json:"debited"`
	Upcoming      int                  `json:"upcoming"`
	Available     int                  `json:"available_to_book"`
	Status        models.PackageStatus `json:"status"`
	ValidFrom     time.Time            `json:"valid_from"`
	ValidTo       time.Time            `json:"valid_to"`
}

func ToPackageResponse(v *service.PackageView) PackageResponse {
	return PackageResponse{
		ID:            v.Package.ID,
		CustomerID:    v.Package.CustomerID,
		TotalSessions: v.Package.TotalSessions,
		Remaining:     v.Remaining,
		Debited:       v.Debited,
		Upcoming:      v.Upcoming,
		Available:     v.Available,
		Status:        v.Status,
		ValidFrom:     v.Package.ValidFrom,
		ValidTo:       v.Package.ValidTo,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
}
