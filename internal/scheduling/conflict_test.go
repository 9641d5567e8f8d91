package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/studiobook/studio-booking/internal/models"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
}

func span(fromHour, toHour int) Interval {
	return Interval{Start: at(fromHour, 0), End: at(toHour, 0)}
}

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"identical", span(10, 11), span(10, 11), true},
		{"partial overlap", span(10, 11), Interval{Start: at(10, 30), End: at(11, 30)}, true},
		{"contained", span(9, 12), span(10, 11), true},
		{"touching end to start", span(10, 11), span(11, 12), false},
		{"touching start to end", span(11, 12), span(10, 11), false},
		{"disjoint", span(9, 10), span(14, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestExistsOverlap(t *testing.T) {
	customerA := uint(1)
	customerB := uint(2)
	bookings := []models.Booking{
		{ID: 1, TeacherID: 10, CustomerID: &customerA, Status: models.StatusConfirmed, StartTime: at(10, 0), EndTime: at(11, 0)},
		{ID: 2, TeacherID: 11, CustomerID: &customerB, Status: models.StatusCancelled, StartTime: at(10, 0), EndTime: at(11, 0)},
	}

	_, found := ExistsOverlap(bookings, span(10, 11), ByCustomer(customerA))
	assert.True(t, found)

	// Cancelled bookings never conflict.
	_, found = ExistsOverlap(bookings, span(10, 11), ByCustomer(customerB))
	assert.False(t, found)

	_, found = ExistsOverlap(bookings, span(11, 12), ByCustomer(customerA))
	assert.False(t, found)

	_, found = ExistsOverlap(bookings, span(10, 11), ByTeacher(10))
	assert.True(t, found)

	// Excluding skips the booking being re-checked.
	_, found = ExistsOverlap(bookings, span(10, 11), Excluding(1, ByTeacher(10)))
	assert.False(t, found)
}
