package models

import "time"

type BookingStatus string

const (
	StatusPending               BookingStatus = "pending"
	StatusConfirmed             BookingStatus = "confirmed"
	StatusCancellationRequested BookingStatus = "cancellation_requested"
	StatusCancelled             BookingStatus = "cancelled"
	StatusCompleted             BookingStatus = "completed"
	StatusNoShow                BookingStatus = "no_show"
)

type SessionType string

const (
	SessionPrivate SessionType = "private"
	SessionDuo     SessionType = "duo"
	SessionGroup   SessionType = "group"
	SessionBlocked SessionType = "blocked"
)

// ActiveStatuses are the statuses that occupy a slot and reserve a package
// session. A cancellation request keeps the slot and its debit until the
// teacher decides, because rejection puts the booking straight back to
// confirmed.
var ActiveStatuses = []BookingStatus{StatusPending, StatusConfirmed, StatusCancellationRequested}

type Booking struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	CustomerID         *uint         `gorm:"index" json:"customer_id,omitempty"`
	TeacherID          uint          `gorm:"not null;index" json:"teacher_id"`
	PackageID          *uint         `gorm:"index" json:"package_id,omitempty"`
	SessionType        SessionType   `gorm:"type:varchar(20);not null" json:"session_type"`
	StartTime          time.Time     `gorm:"not null;index" json:"start_time"`
	EndTime            time.Time     `gorm:"not null" json:"end_time"`
	Status             BookingStatus `gorm:"type:varchar(30);not null;default:'pending'" json:"status"`
	Notes              string        `json:"notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CreatedBy          string        `json:"created_by,omitempty"`
	ConfirmedAt        *time.Time    `json:"confirmed_at,omitempty"`
	ConfirmedBy        string        `json:"confirmed_by,omitempty"`
	AttendanceMarkedAt *time.Time    `json:"attendance_marked_at,omitempty"`
	CalendarEventID    string        `json:"calendar_event_id,omitempty"`
	IdempotencyKey     *string       `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// transitions is the booking status state machine. Anything not listed here,
// including every transition out of a terminal state, is illegal.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:               {StatusConfirmed, StatusCancelled},
	StatusConfirmed:             {StatusCompleted, StatusNoShow, StatusCancelled, StatusCancellationRequested},
	StatusCancellationRequested: {StatusCancelled, StatusConfirmed},
}

func (s BookingStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsActive reports whether the booking occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed ||
		b.Status == StatusCancellationRequested
}

func (b *Booking) IsBlock() bool {
	return b.SessionType == SessionBlocked
}
