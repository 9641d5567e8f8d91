package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/studiobook/studio-booking/internal/apperr"
	"github.com/studiobook/studio-booking/internal/models"
)

var asOf = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func pkg(id uint, total int) *models.Package {
	return &models.Package{
		ID:            id,
		TotalSessions: total,
		ValidFrom:     asOf.AddDate(0, -1, 0),
		ValidTo:       asOf.AddDate(0, 2, 0),
	}
}

func booking(pkgID uint, status models.BookingStatus, start time.Time) models.Booking {
	id := pkgID
	return models.Booking{
		PackageID: &id,
		Status:    status,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}
}

func TestBuild_ConfirmedUpcomingSessions(t *testing.T) {
	// Ten-session package with three confirmed future sessions: nothing
	// debited yet, three upcoming, seven bookable, cache counter at seven.
	p := pkg(1, 10)
	future := asOf.Add(24 * time.Hour)
	bookings := []models.Booking{
		booking(1, models.StatusConfirmed, future),
		booking(1, models.StatusConfirmed, future.Add(2*time.Hour)),
		booking(1, models.StatusConfirmed, future.Add(4*time.Hour)),
	}

	s := Build(p, bookings, asOf)

	assert.Equal(t, 0, s.Debited)
	assert.Equal(t, 3, s.Upcoming)
	assert.Equal(t, 3, s.ConfirmedUpcoming)
	assert.Equal(t, 7, s.Available())
	assert.Equal(t, 7, s.CacheRemaining())
	assert.NoError(t, s.Check())
}

func TestBuild_ElapsedConfirmedCountsAsDebited(t *testing.T) {
	// A confirmed session whose end has passed is consumed even without an
	// attendance mark.
	p := pkg(1, 5)
	bookings := []models.Booking{
		booking(1, models.StatusConfirmed, asOf.Add(-3*time.Hour)),
		booking(1, models.StatusConfirmed, asOf.Add(3*time.Hour)),
	}

	s := Build(p, bookings, asOf)

	assert.Equal(t, 1, s.Debited)
	assert.Equal(t, 1, s.Upcoming)
	assert.Equal(t, 3, s.Available())
}

func TestBuild_TerminalStatuses(t *testing.T) {
	p := pkg(1, 5)
	bookings := []models.Booking{
		booking(1, models.StatusCompleted, asOf.Add(-48*time.Hour)),
		booking(1, models.StatusNoShow, asOf.Add(-24*time.Hour)),
		booking(1, models.StatusCancelled, asOf.Add(-24*time.Hour)),
		booking(1, models.StatusPending, asOf.Add(24*time.Hour)),
	}

	s := Build(p, bookings, asOf)

	assert.Equal(t, 2, s.Debited)
	assert.Equal(t, 1, s.Upcoming)
	assert.Equal(t, 0, s.ConfirmedUpcoming)
	assert.Equal(t, 2, s.Available())
	// Pending reservations have not touched the cache counter yet.
	assert.Equal(t, 3, s.CacheRemaining())
}

func TestBuild_CancellationRequestedHoldsDebit(t *testing.T) {
	// An undecided cancellation request keeps both the reservation and the
	// confirm-time debit: nothing frees up until the teacher decides, so a
	// fully committed package offers no session for rebooking.
	p := pkg(1, 2)
	bookings := []models.Booking{
		booking(1, models.StatusConfirmed, asOf.Add(24*time.Hour)),
		booking(1, models.StatusCancellationRequested, asOf.Add(48*time.Hour)),
	}

	s := Build(p, bookings, asOf)

	assert.Equal(t, 0, s.Debited)
	assert.Equal(t, 2, s.Upcoming)
	assert.Equal(t, 2, s.ConfirmedUpcoming)
	assert.Equal(t, 0, s.Available())
	assert.Equal(t, 0, s.CacheRemaining())
	assert.NoError(t, s.Check())
}

func TestBuild_IgnoresOtherPackages(t *testing.T) {
	p := pkg(1, 5)
	other := booking(2, models.StatusConfirmed, asOf.Add(24*time.Hour))
	none := models.Booking{Status: models.StatusConfirmed, StartTime: asOf, EndTime: asOf.Add(time.Hour)}

	s := Build(p, []models.Booking{other, none}, asOf)

	assert.Equal(t, Snapshot{Total: 5}, s)
}

func TestCheck_Overcommitted(t *testing.T) {
	s := Snapshot{Total: 2, Debited: 2, Upcoming: 1}

	err := s.Check()

	assert.Error(t, err)
	assert.Equal(t, apperr.Integrity, apperr.KindOf(err))
}

func TestConservation(t *testing.T) {
	// Debited + upcoming + available always sums to total.
	p := pkg(1, 8)
	bookings := []models.Booking{
		booking(1, models.StatusCompleted, asOf.Add(-72*time.Hour)),
		booking(1, models.StatusConfirmed, asOf.Add(-5*time.Hour)),
		booking(1, models.StatusConfirmed, asOf.Add(5*time.Hour)),
		booking(1, models.StatusPending, asOf.Add(48*time.Hour)),
		booking(1, models.StatusCancelled, asOf.Add(48*time.Hour)),
	}

	s := Build(p, bookings, asOf)

	assert.Equal(t, s.Total, s.Debited+s.Upcoming+s.Available())
}

func TestStatus(t *testing.T) {
	p := pkg(1, 3)

	assert.Equal(t, models.PackageActive, Status(p, 0, asOf))
	assert.Equal(t, models.PackageUsed, Status(p, 3, asOf))

	// Expiry wins over depletion.
	assert.Equal(t, models.PackageExpired, Status(p, 3, p.ValidTo))
	assert.Equal(t, models.PackageExpired, Status(p, 0, p.ValidTo.Add(time.Hour)))
}
