package repository

import (
	"context"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Customer, error)
	IncrementCancellations(ctx context.Context, tx *gorm.DB, id uint) error
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) IncrementCancellations(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		UpdateColumn("total_cancellations", gorm.Expr("total_cancellations + 1")).Error
}
