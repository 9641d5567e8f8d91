package repository

import (
	"context"
	"time"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/gorm"
)

// studioLockKey seeds the Postgres advisory lock that serializes every
// check-then-create booking sequence. Capacity is a studio-global rule, so a
// per-teacher lock alone cannot protect it.
const studioLockKey = 7201

type BookingRepository interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
	LockStudio(ctx context.Context, tx *gorm.DB) error
	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error)
	FindActiveOverlapping(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]models.Booking, error)
	FindByTeacherBetween(ctx context.Context, teacherID uint, from, to time.Time) ([]models.Booking, error)
	FindByPackage(ctx context.Context, tx *gorm.DB, packageID uint) ([]models.Booking, error)
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uint, from, to models.BookingStatus, updates map[string]any) (int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error
	DeleteBlock(ctx context.Context, id uint) (int64, error)
	CompleteElapsed(ctx context.Context, asOf time.Time) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bookingRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

// LockStudio takes the studio-wide advisory lock for the rest of the current
// transaction, serializing concurrent check-then-create sequences.
func (r *bookingRepository) LockStudio(ctx context.Context, tx *gorm.DB) error {
	return r.conn(tx).WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", studioLockKey).Error
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return r.conn(tx).WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindActiveOverlapping fetches every slot-occupying booking (pending,
// confirmed, or awaiting cancellation approval) across all teachers
// intersecting the half-open interval [start, end).
func (r *bookingRepository) FindActiveOverlapping(ctx context.Context, tx *gorm.DB, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.conn(tx).WithContext(ctx).
		Where("status IN ?", models.ActiveStatuses).
		Where("start_time < ? AND end_time > ?", end, start).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByTeacherBetween(ctx context.Context, teacherID uint, from, to time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByPackage(ctx context.Context, tx *gorm.DB, packageID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.conn(tx).WithContext(ctx).
		Where("package_id = ?", packageID).
		Order("start_time ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatusFrom performs the conditional transition UPDATE. The returned
// row count is the concurrency guard: zero rows means another request already
// moved the booking out of the expected status.
func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, id uint, from, to models.BookingStatus, updates map[string]any) (int64, error) {
	values := map[string]any{"status": to}
	for k, v := range updates {
		values[k] = v
	}
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(values)
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) UpdateFields(ctx context.Context, tx *gorm.DB, id uint, updates map[string]any) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteBlock hard-deletes a teacher unavailability entry. Regular bookings
// are never deleted, so the predicate insists on the blocked type.
func (r *bookingRepository) DeleteBlock(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND session_type = ?", id, models.SessionBlocked).
		Delete(&models.Booking{})
	return res.RowsAffected, res.Error
}

// CompleteElapsed flips confirmed bookings whose end time has passed to
// completed. Idempotent: already-completed rows no longer match the predicate.
func (r *bookingRepository) CompleteElapsed(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ? AND end_time < ? AND session_type <> ?",
			models.StatusConfirmed, asOf, models.SessionBlocked).
		Update("status", models.StatusCompleted)
	return res.RowsAffected, res.Error
}
