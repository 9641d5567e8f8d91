package service

import (
	"context"
	"time"

	"github.com/studiobook/studio-booking/internal/apperr"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/repository"
	"github.com/studiobook/studio-booking/internal/scheduling"
)

// SlotDuration is the studio's session length; availability views are
// rendered on this grid.
const SlotDuration = time.Hour

type SlotAvailability struct {
	StartTime    time.Time             `json:"start_time"`
	EndTime      time.Time             `json:"end_time"`
	Status       scheduling.SlotStatus `json:"status"`
	AllowedTypes []models.SessionType  `json:"allowed_types,omitempty"`
	Reason       string                `json:"reason,omitempty"`
}

type AvailabilityService interface {
	GetAvailability(ctx context.Context, teacherID *uint, from, to time.Time) ([]SlotAvailability, error)
}

type availabilityService struct {
	bookings repository.BookingRepository
}

func NewAvailabilityService(bookings repository.BookingRepository) AvailabilityService {
	return &availabilityService{bookings: bookings}
}

// GetAvailability slices [from, to) into fixed slots and gives each an
// independent capacity verdict. With a teacher chosen the verdict includes
// that teacher's own schedule; without one it reflects studio-wide capacity.
func (s *availabilityService) GetAvailability(ctx context.Context, teacherID *uint, from, to time.Time) ([]SlotAvailability, error) {
	if !to.After(from) {
		return nil, apperr.New(apperr.Validation, "end time must be after start time")
	}

	active, err := s.bookings.FindActiveOverlapping(ctx, nil, from, to)
	if err != nil {
		return nil, err
	}

	var chosen uint
	if teacherID != nil {
		chosen = *teacherID
	}

	var slots []SlotAvailability
	for start := from; start.Add(SlotDuration).Before(to) || start.Add(SlotDuration).Equal(to); start = start.Add(SlotDuration) {
		end := start.Add(SlotDuration)
		verdict := scheduling.EvaluateSlot(active, scheduling.Candidate{
			TeacherID:   chosen,
			SessionType: models.SessionPrivate,
			Interval:    scheduling.Interval{Start: start, End: end},
		})
		slots = append(slots, SlotAvailability{
			StartTime:    start,
			EndTime:      end,
			Status:       verdict.Status,
			AllowedTypes: verdict.AllowedTypes,
			Reason:       verdict.Reason,
		})
	}
	return slots, nil
}
