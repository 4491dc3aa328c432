package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"novusarc/placement/internal/locks"
	"novusarc/placement/internal/metrics"
	"novusarc/placement/internal/models"

	"gorm.io/gorm"
)

// InterviewRepository schedules interviews so that a candidate never holds
// two overlapping non-cancelled slots. Scheduling for one candidate is
// serialised through Locks; the overlap check and the write share a
// transaction.
type InterviewRepository struct {
	DB    *gorm.DB
	Locks locks.Locker
}

func NewInterviewRepository(db *gorm.DB, locker locks.Locker) *InterviewRepository {
	if locker == nil {
		locker = locks.NewLocal()
	}
	return &InterviewRepository{DB: db, Locks: locker}
}

func candidateLockKey(candidateID string) string {
	return "candidate:" + candidateID
}

// Schedule stores the interview unless it overlaps another live interview
// of the same candidate.
func (r *InterviewRepository) Schedule(ctx context.Context, interview *models.Interview) (*models.Interview, error) {
	// sqlite compares stored times as text, so every bound must share a zone
	interview.StartTime = interview.StartTime.UTC()
	interview.EndTime = interview.EndTime.UTC()
	if !interview.EndTime.After(interview.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	release, err := r.Locks.Acquire(ctx, candidateLockKey(interview.CandidateID))
	if err != nil {
		return nil, fmt.Errorf("lock candidate schedule: %w", err)
	}
	defer release()

	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var app models.Application
		err := tx.First(&app, "id = ?", interview.ApplicationID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrApplicationNotFound
		}
		if err != nil {
			return err
		}
		if interview.JobID == "" {
			interview.JobID = app.JobID
		}

		if err := checkOverlap(tx, interview.CandidateID, "", interview.StartTime, interview.EndTime); err != nil {
			return err
		}
		return tx.Create(interview).Error
	})
	if err != nil {
		return nil, err
	}
	return interview, nil
}

// checkOverlap fails with ErrScheduleConflict when [start, end) intersects a
// non-cancelled interview of the candidate other than excludeID.
func checkOverlap(tx *gorm.DB, candidateID, excludeID string, start, end time.Time) error {
	start, end = start.UTC(), end.UTC()
	query := tx.Model(&models.Interview{}).
		Where("candidate_id = ?", candidateID).
		Where("status <> ?", models.InterviewCancelled).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var clash models.Interview
	err := query.Order("start_time ASC").Limit(1).Find(&clash).Error
	if err != nil {
		return err
	}
	if clash.ID != "" {
		metrics.InterviewConflicts.Inc()
		return fmt.Errorf("%w: overlaps interview %s (%s - %s)", ErrScheduleConflict,
			clash.ID, clash.StartTime.Format(time.RFC3339), clash.EndTime.Format(time.RFC3339))
	}
	return nil
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	return findInterview(r.DB.WithContext(ctx), id)
}

func findInterview(tx *gorm.DB, id string) (*models.Interview, error) {
	var interview models.Interview
	err := tx.First(&interview, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInterviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return &interview, nil
}

// List returns interviews newest first.
func (r *InterviewRepository) List(ctx context.Context, filter models.InterviewFilter) ([]models.Interview, int, error) {
	query := r.DB.WithContext(ctx).Model(&models.Interview{})
	if filter.CandidateID != "" {
		query = query.Where("candidate_id = ?", filter.CandidateID)
	}
	if filter.InterviewerID != "" {
		query = query.Where("interviewer_id = ?", filter.InterviewerID)
	}
	if filter.JobID != "" {
		query = query.Where("job_id = ?", filter.JobID)
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
	var interviews []models.Interview
	err := query.Order("start_time DESC").Offset((page - 1) * limit).Limit(limit).Find(&interviews).Error
	if err != nil {
		return nil, 0, err
	}
	return interviews, int(total), nil
}

// Update applies the patch. Moving the slot or reviving a cancelled
// interview re-runs the overlap check under the candidate lock.
func (r *InterviewRepository) Update(ctx context.Context, id string, patch models.InterviewPatch) (*models.Interview, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.StartTime != nil || patch.EndTime != nil || patch.Status != nil {
		release, err := r.Locks.Acquire(ctx, candidateLockKey(current.CandidateID))
		if err != nil {
			return nil, fmt.Errorf("lock candidate schedule: %w", err)
		}
		defer release()
	}

	var updated *models.Interview
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		interview, err := findInterview(tx, id)
		if err != nil {
			return err
		}

		start, end := interview.StartTime, interview.EndTime
		if patch.StartTime != nil {
			start = *patch.StartTime
		}
		if patch.EndTime != nil {
			end = *patch.EndTime
		}
		start, end = start.UTC(), end.UTC()
		if !end.After(start) {
			return ErrInvalidTimeRange
		}

		status := interview.Status
		if patch.Status != nil {
			status = *patch.Status
		}

		if patch.TouchesSchedule(interview) && status != models.InterviewCancelled {
			if err := checkOverlap(tx, interview.CandidateID, interview.ID, start, end); err != nil {
				return err
			}
		}

		updates := map[string]any{
			"start_time": start,
			"end_time":   end,
			"status":     status,
		}
		if patch.Mode != nil {
			updates["mode"] = *patch.Mode
		}
		if patch.Location != nil {
			updates["location"] = *patch.Location
		}
		if patch.Notes != nil {
			updates["notes"] = *patch.Notes
		}
		if err := tx.Model(interview).Updates(updates).Error; err != nil {
			return err
		}

		updated, err = findInterview(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// pageBounds falls back to page 1 and 10 items for unset values.
func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}
