package scheduling

import (
	"time"

	"github.com/studiobook/studio-booking/internal/models"
)

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Valid() bool {
	return i.End.After(i.Start)
}

// Overlaps is the half-open interval intersection test. Touching endpoints
// (a.End == b.Start) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

func bookingInterval(b *models.Booking) Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// ExistsOverlap reports whether any active booking matching filter overlaps
// the candidate interval. The first match is returned so callers can build a
// specific error message.
func ExistsOverlap(bookings []models.Booking, candidate Interval, filter func(*models.Booking) bool) (*models.Booking, bool) {
	for i := range bookings {
		b := &bookings[i]
		if !b.IsActive() {
			continue
		}
		if filter != nil && !filter(b) {
			continue
		}
		if candidate.Overlaps(bookingInterval(b)) {
			return b, true
		}
	}
	return nil, false
}

// ByCustomer filters bookings held by the given customer.
func ByCustomer(customerID uint) func(*models.Booking) bool {
	return func(b *models.Booking) bool {
		return b.CustomerID != nil && *b.CustomerID == customerID
	}
}

// ByTeacher filters bookings (including blocks) on the given teacher's schedule.
func ByTeacher(teacherID uint) func(*models.Booking) bool {
	return func(b *models.Booking) bool {
		return b.TeacherID == teacherID
	}
}

// Excluding wraps a filter to skip one booking id, used when re-checking a
// slot for a booking that already occupies it.
func Excluding(id uint, filter func(*models.Booking) bool) func(*models.Booking) bool {
	return func(b *models.Booking) bool {
		if b.ID == id {
			return false
		}
		return filter == nil || filter(b)
	}
}
