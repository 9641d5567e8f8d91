package service

import (
	"context"

	"github.com/studiobook/studio-booking/internal/clock"
	"github.com/studiobook/studio-booking/internal/ledger"
	"github.com/studiobook/studio-booking/internal/models"
	"github.com/studiobook/studio-booking/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PackageView is the derived accounting for one package: what the ledger
// says, regardless of the stored cache columns.
type PackageView struct {
	Package   *models.Package
	Remaining int
	Debited   int
	Upcoming  int
	Available int
	Status    models.PackageStatus
}

type PackageService interface {
	GetPackage(ctx context.Context, id uint) (*PackageView, error)
	Reconcile(ctx context.Context, id uint) (*PackageView, error)
	ExpirePackages(ctx context.Context) (int64, error)
}

type packageService struct {
	packages repository.PackageRepository
	bookings repository.BookingRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func NewPackageService(
	packages repository.PackageRepository,
	bookings repository.BookingRepository,
	clk clock.Clock,
	logger *zap.Logger,
) PackageService {
	return &packageService{packages: packages, bookings: bookings, clock: clk, logger: logger}
}

func (s *packageService) view(pkg *models.Package, history []models.Booking) *PackageView {
	asOf := s.clock.Now()
	snap := ledger.Build(pkg, history, asOf)
	return &PackageView{
		Package:   pkg,
		Remaining: snap.CacheRemaining(),
		Debited:   snap.Debited,
		Upcoming:  snap.Upcoming,
		Available: snap.Available(),
		Status:    ledger.Status(pkg, snap.Debited, asOf),
	}
}

func (s *packageService) GetPackage(ctx context.Context, id uint) (*PackageView, error) {
	pkg, err := s.packages.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, "package not found")
	}
	history, err := s.bookings.FindByPackage(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return s.view(pkg, history), nil
}

// Reconcile recounts the ledger from booking history and repairs the stored
// remaining-sessions cache when it has drifted. A conservation violation
// (more sessions committed than the package holds) is returned as an
// integrity error and deliberately left uncorrected for manual review.
func (s *packageService) Reconcile(ctx context.Context, id uint) (*PackageView, error) {
	var result *PackageView
	txErr := s.bookings.Transaction(ctx, func(tx *gorm.DB) error {
		pkg, err := s.packages.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return notFound(err, "package not found")
		}
		history, err := s.bookings.FindByPackage(ctx, tx, id)
		if err != nil {
			return err
		}

		asOf := s.clock.Now()
		snap := ledger.Build(pkg, history, asOf)
		if err := snap.Check(); err != nil {
			s.logger.Error("package ledger integrity violation",
				zap.Uint("package_id", id),
				zap.Int("debited", snap.Debited),
				zap.Int("upcoming", snap.Upcoming),
				zap.Int("total", snap.Total),
			)
			return err
		}

		derived := snap.CacheRemaining()
		if pkg.RemainingSessions != derived {
			s.logger.Warn("repairing remaining-sessions cache",
				zap.Uint("package_id", id),
				zap.Int("stored", pkg.RemainingSessions),
				zap.Int("derived", derived),
			)
			if err := s.packages.SetRemaining(ctx, tx, id, derived); err != nil {
				return err
			}
			pkg.RemainingSessions = derived
		}

		result = s.view(pkg, history)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return result, nil
}

// ExpirePackages refreshes the status cache for lapsed packages; the sweep
// half that pairs with CompleteElapsed.
func (s *packageService) ExpirePackages(ctx context.Context) (int64, error) {
	return s.packages.MarkExpired(ctx, s.clock.Now())
}
