package repositories

import (
	"context"
	"errors"
	"fmt"

	"novusarc/placement/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Job{}, app.JobID, ErrJobNotFound); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&models.Application{}).
			Where("job_id = ? AND student_id = ?", app.JobID, app.StudentID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateApplication
		}

		if err := tx.Create(app).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateApplication
			}
			return fmt.Errorf("create application: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	err := r.DB.WithContext(ctx).First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}
