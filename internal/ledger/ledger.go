package ledger

import (
	"time"

	"github.com/studiobook/studio-booking/internal/apperr"
	"github.com/studiobook/studio-booking/internal/models"
)

// Snapshot is the derived session accounting for one package at an instant.
// Debited + Upcoming + Available() must equal Total; that split is the
// conservation invariant every transition has to preserve.
type Snapshot struct {
	Total    int
	Debited  int
	Upcoming int
	// ConfirmedUpcoming is the subset of Upcoming whose debit has been taken
	// on the stored cache counter but that has not yet elapsed: confirmed
	// sessions plus undecided cancellation requests.
	ConfirmedUpcoming int
}

// Available is the number of sessions a new booking request may still consume.
func (s Snapshot) Available() int {
	return s.Total - s.Debited - s.Upcoming
}

// CacheRemaining is what the stored remaining-sessions counter should read:
// every confirmation decremented it and every refund restored it, so it
// excludes confirmed sessions whether or not they have elapsed, but still
// counts pending reservations.
func (s Snapshot) CacheRemaining() int {
	return s.Total - s.Debited - s.ConfirmedUpcoming
}

// Check validates the conservation invariant. A negative available count
// means the package is overcommitted; that is an integrity fault to be
// flagged, never silently corrected.
func (s Snapshot) Check() error {
	if s.Debited < 0 || s.Upcoming < 0 {
		return apperr.Newf(apperr.Integrity, "package ledger has negative counts: debited=%d upcoming=%d", s.Debited, s.Upcoming)
	}
	if s.Debited+s.Upcoming > s.Total {
		return apperr.Newf(apperr.Integrity,
			"package ledger overcommitted: debited=%d upcoming=%d total=%d", s.Debited, s.Upcoming, s.Total)
	}
	return nil
}

// debits reports whether a booking counts as a consumed session as of asOf.
// A confirmed session whose end has elapsed is consumed even when nobody has
// marked attendance yet. A pending cancellation request keeps the confirm-time
// debit: the ledger does not move until the teacher decides.
func debits(b *models.Booking, asOf time.Time) bool {
	switch b.Status {
	case models.StatusCompleted, models.StatusNoShow:
		return true
	case models.StatusConfirmed, models.StatusCancellationRequested:
		return b.EndTime.Before(asOf)
	default:
		return false
	}
}

// reserves reports whether a booking still holds an upcoming session.
func reserves(b *models.Booking, asOf time.Time) bool {
	if !b.IsActive() {
		return false
	}
	return !b.EndTime.Before(asOf)
}

// Build derives the snapshot for a package from its bookings.
func Build(pkg *models.Package, bookings []models.Booking, asOf time.Time) Snapshot {
	s := Snapshot{Total: pkg.TotalSessions}
	for i := range bookings {
		b := &bookings[i]
		if b.PackageID == nil || *b.PackageID != pkg.ID {
			continue
		}
		if debits(b, asOf) {
			s.Debited++
		} else if reserves(b, asOf) {
			s.Upcoming++
			if b.Status != models.StatusPending {
				s.ConfirmedUpcoming++
			}
		}
	}
	return s
}

// Status derives the package lifecycle status. The stored status column is a
// display cache; this function is the only place the derivation lives.
func Status(pkg *models.Package, debited int, asOf time.Time) models.PackageStatus {
	if !pkg.ValidTo.After(asOf) {
		return models.PackageExpired
	}
	if debited >= pkg.TotalSessions {
		return models.PackageUsed
	}
	return models.PackageActive
}
