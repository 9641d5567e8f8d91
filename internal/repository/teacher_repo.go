package repository

import (
	"context"

	"github.com/studiobook/studio-booking/internal/models"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Teacher, error)
	FindActive(ctx context.Context) ([]models.Teacher, error)
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) FindByID(ctx context.Context, id uint) (*models.Teacher, error) {
	var teacher models.Teacher
	if err := r.db.WithContext(ctx).First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) FindActive(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("id ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, err
	}
	return teachers, nil
}
