package repositories

import (
	"context"
	"errors"
	"fmt"

	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"gorm.io/gorm"
)

type JobRepository struct {
	DB  *gorm.DB
	Seq SequenceAllocator
}

// Create mints a JOB code and stores the job under an existing company.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	err := withSequence(ctx, r.DB, r.Seq, models.SequenceJob, func(tx *gorm.DB, n int64) error {
		if err := ensureExists(tx, &models.Company{}, job.CompanyID, ErrCompanyNotFound); err != nil {
			return err
		}

		var count int64
		err := tx.Model(&models.Job{}).
			Where("company_id = ? AND LOWER(title) = LOWER(?)", job.CompanyID, job.Title).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateJobTitle
		}

		job.JobCode = utils.FormatCode(models.JobCodePrefix, n)
		if err := tx.Create(job).Error; err != nil {
			return fmt.Errorf("create job: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return findJob(r.DB.WithContext(ctx), id)
}

func findJob(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	query := r.DB.WithContext(ctx).Model(&models.Job{})
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pageBounds(filter.Page, filter.Limit)
	var jobs []models.Job
	err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}
	return jobs, int(total), nil
}

// Update edits the job. A new title must stay unique within the company.
func (r *JobRepository) Update(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	var updated *models.Job
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := findJob(tx, id)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Title != nil && *patch.Title != job.Title {
			var count int64
			err := tx.Model(&models.Job{}).
				Where("company_id = ? AND LOWER(title) = LOWER(?) AND id <> ?", job.CompanyID, *patch.Title, id).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateJobTitle
			}
			updates["title"] = *patch.Title
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Location != nil {
			updates["location"] = *patch.Location
		}
		if patch.Type != nil {
			updates["type"] = *patch.Type
		}
		if patch.Status != nil {
			updates["status"] = *patch.Status
		}

		if len(updates) > 0 {
			if err := tx.Model(job).Updates(updates).Error; err != nil {
				return fmt.Errorf("update job: %w", err)
			}
		}

		updated, err = findJob(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Close marks the job closed. Closing twice is a no-op.
func (r *JobRepository) Close(ctx context.Context, id string) (*models.Job, error) {
	closed := models.JobClosed
	return r.Update(ctx, id, models.JobPatch{Status: &closed})
}

// ensureExists returns notFound unless a row of model's table has the id.
func ensureExists(tx *gorm.DB, model any, id string, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
