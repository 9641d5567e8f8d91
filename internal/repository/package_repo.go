package repository

import (
	"context"
	"time"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PackageRepository interface {
	Upsert(ctx context.Context, pkg *models.Package) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Package, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Package, error)
	Debit(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Refund(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	SetRemaining(ctx context.Context, tx *gorm.DB, id uint, remaining int) error
	MarkExpired(ctx context.Context, asOf time.Time) (int64, error)
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Upsert inserts a purchased package or refreshes its descriptive columns.
// The remaining_sessions cache is deliberately left out of the update set so
// a replayed purchase message cannot clobber the ledger.
func (r *packageRepository) Upsert(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"customer_id", "total_sessions", "session_type", "valid_from", "valid_to", "price", "updated_at",
		}),
	}).Create(pkg).Error
}

func (r *packageRepository) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.conn(tx).WithContext(ctx).First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindByIDForUpdate acquires a row-level lock on the package within the given
// transaction.
func (r *packageRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Package, error) {
	var pkg models.Package
	if err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// Debit decrements the stored session counter atomically. False means the
// package was already depleted; no read-modify-write window exists.
func (r *packageRepository) Debit(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ? AND remaining_sessions > 0", id).
		UpdateColumn("remaining_sessions", gorm.Expr("remaining_sessions - 1"))
	return res.RowsAffected > 0, res.Error
}

// Refund increments the stored counter, bounded so a refund can never push it
// past total_sessions.
func (r *packageRepository) Refund(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	res := r.conn(tx).WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ? AND remaining_sessions < total_sessions", id).
		UpdateColumn("remaining_sessions", gorm.Expr("remaining_sessions + 1"))
	return res.RowsAffected > 0, res.Error
}

// SetRemaining overwrites the cache counter, used only by reconciliation.
func (r *packageRepository) SetRemaining(ctx context.Context, tx *gorm.DB, id uint, remaining int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.Package{}).
		Where("id = ?", id).
		UpdateColumn("remaining_sessions", remaining).Error
}

// MarkExpired refreshes the status cache for packages whose validity window
// has closed. Idempotent by predicate.
func (r *packageRepository) MarkExpired(ctx context.Context, asOf time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Package{}).
		Where("valid_to <= ? AND status <> ?", asOf, models.PackageExpired).
		Update("status", models.PackageExpired)
	return res.RowsAffected, res.Error
}
