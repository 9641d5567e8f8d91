package scheduling

import (
	"github.com/studiobook/studio-booking/internal/models"
)

// SlotStatus is the tri-state capacity verdict for a candidate interval.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotPartial   SlotStatus = "partial"
	SlotBlocked   SlotStatus = "blocked"
)

// MaxConcurrentTeachers is the studio-wide cap on distinct teachers with
// active non-block bookings in the same interval.
const MaxConcurrentTeachers = 2

// Candidate describes a booking the studio is being asked to accept.
// TeacherID 0 means "no teacher chosen yet" and skips the per-teacher check;
// CustomerID nil likewise skips the customer check. ExcludeBookingID skips an
// existing booking when its own slot is being re-evaluated.
type Candidate struct {
	TeacherID        uint
	CustomerID       *uint
	SessionType      models.SessionType
	Interval         Interval
	ExcludeBookingID uint
}

type Verdict struct {
	Status       SlotStatus
	AllowedTypes []models.SessionType
	Reason       string
}

// Allows reports whether a session of type t may be placed under this verdict.
func (v Verdict) Allows(t models.SessionType) bool {
	for _, a := range v.AllowedTypes {
		if a == t {
			return true
		}
	}
	return false
}

var allSessionTypes = []models.SessionType{
	models.SessionPrivate, models.SessionDuo, models.SessionGroup, models.SessionBlocked,
}

func blockedVerdict(reason string) Verdict {
	return Verdict{Status: SlotBlocked, Reason: reason}
}

// EvaluateSlot applies the studio capacity rules to a candidate against the
// active bookings overlapping its interval, in veto order:
//
//  1. a group session by any teacher blocks everything else
//  2. the chosen teacher must be free (blocks count as busy)
//  3. the customer must not already hold an overlapping booking
//  4. at most two distinct teachers in the interval (blocks excluded)
//  5. alongside one other teacher only private/duo sessions fit
//
// A block candidate only contends with its own teacher's schedule.
func EvaluateSlot(existing []models.Booking, c Candidate) Verdict {
	overlapping := make([]*models.Booking, 0, len(existing))
	for i := range existing {
		b := &existing[i]
		if b.ID == c.ExcludeBookingID && c.ExcludeBookingID != 0 {
			continue
		}
		if !b.IsActive() {
			continue
		}
		if c.Interval.Overlaps(bookingInterval(b)) {
			overlapping = append(overlapping, b)
		}
	}

	if c.SessionType == models.SessionBlocked {
		for _, b := range overlapping {
			if b.TeacherID == c.TeacherID {
				return blockedVerdict("teacher already has a booking in this interval")
			}
		}
		return Verdict{Status: SlotAvailable, AllowedTypes: allSessionTypes}
	}

	for _, b := range overlapping {
		if b.SessionType == models.SessionGroup {
			return blockedVerdict("a group session occupies the studio in this interval")
		}
	}

	if c.TeacherID != 0 {
		for _, b := range overlapping {
			if b.TeacherID == c.TeacherID {
				return blockedVerdict("teacher already has a booking in this interval")
			}
		}
	}

	if c.CustomerID != nil {
		for _, b := range overlapping {
			if b.CustomerID != nil && *b.CustomerID == *c.CustomerID {
				return blockedVerdict("customer already has a booking in this interval")
			}
		}
	}

	// Distinct other teachers with non-block bookings. A teacher's own block
	// never reduces capacity for the rest of the studio.
	others := map[uint]struct{}{}
	for _, b := range overlapping {
		if b.IsBlock() || b.TeacherID == c.TeacherID {
			continue
		}
		others[b.TeacherID] = struct{}{}
	}

	if len(others) >= MaxConcurrentTeachers {
		return blockedVerdict("studio is at teacher capacity for this interval")
	}

	if len(others) == 1 {
		return Verdict{
			Status:       SlotPartial,
			AllowedTypes: []models.SessionType{models.SessionPrivate, models.SessionDuo},
			Reason:       "another teacher is active, only private or duo sessions fit",
		}
	}

	return Verdict{Status: SlotAvailable, AllowedTypes: allSessionTypes}
}
