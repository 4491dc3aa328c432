package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"novusarc/placement/internal/metrics"
	"novusarc/placement/internal/models"

	"github.com/avast/retry-go"
	"gorm.io/gorm"
)

// Create retries when two creates race for the same order.
const (
	maxCreateAttempts = 3
	createRetryDelay  = 10 * time.Millisecond
)

// RoundRepository keeps each job's rounds ordered 1..N.
type RoundRepository struct {
	DB *gorm.DB
}

// OrderGap describes a job whose round orders are not 1..N.
type OrderGap struct {
	JobID  string `json:"jobId"`
	Orders []int  `json:"orders"`
}

// Create appends the round after the job's current last round. A unique
// violation means a concurrent create took the order or the name first, so
// the whole transaction is replayed against fresh state.
func (r *RoundRepository) Create(ctx context.Context, round *models.Round) (*models.Round, error) {
	err := retry.Do(
		func() error {
			return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				if err := ensureExists(tx, &models.Job{}, round.JobID, ErrJobNotFound); err != nil {
					return err
				}

				var count int64
				err := tx.Model(&models.Round{}).
					Where("job_id = ? AND name = ?", round.JobID, round.Name).
					Count(&count).Error
				if err != nil {
					return err
				}
				if count > 0 {
					return ErrDuplicateRoundName
				}

				maxOrder, err := currentMaxOrder(tx, round.JobID)
				if err != nil {
					return err
				}
				round.Order = maxOrder + 1
				return tx.Create(round).Error
			})
		},
		retry.Attempts(maxCreateAttempts),
		retry.Delay(createRetryDelay),
		retry.RetryIf(isUniqueViolation),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return round, nil
	}
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: %v", ErrOrderCollision, err)
	}
	return nil, err
}

func currentMaxOrder(tx *gorm.DB, jobID string) (int, error) {
	var maxOrder int
	err := tx.Model(&models.Round{}).
		Where("job_id = ?", jobID).
		Select("COALESCE(MAX(round_order), 0)").
		Scan(&maxOrder).Error
	return maxOrder, err
}

// GetByJob lists the job's rounds by ascending order.
func (r *RoundRepository) GetByJob(ctx context.Context, jobID string, filter models.RoundFilter) ([]models.Round, error) {
	db := r.DB.WithContext(ctx)
	if err := ensureExists(db, &models.Job{}, jobID, ErrJobNotFound); err != nil {
		return nil, err
	}

	query := db.Where("job_id = ?", jobID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	rounds := []models.Round{}
	if err := query.Order("round_order ASC").Find(&rounds).Error; err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *RoundRepository) GetByID(ctx context.Context, jobID, roundID string) (*models.Round, error) {
	return findRound(r.DB.WithContext(ctx), jobID, roundID)
}

func findRound(tx *gorm.DB, jobID, roundID string) (*models.Round, error) {
	var round models.Round
	err := tx.First(&round, "id = ? AND job_id = ?", roundID, jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &round, nil
}

// Update applies the patch. Order cannot be changed here.
func (r *RoundRepository) Update(ctx context.Context, jobID, roundID string, patch models.RoundPatch) (*models.Round, error) {
	var updated *models.Round
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		round, err := findRound(tx, jobID, roundID)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if patch.Name != nil && *patch.Name != round.Name {
			var count int64
			err := tx.Model(&models.Round{}).
				Where("job_id = ? AND name = ? AND id <> ?", jobID, *patch.Name, roundID).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrDuplicateRoundName
			}
			updates["name"] = *patch.Name
		}
		if patch.Status != nil {
			if !round.Status.CanTransitionTo(*patch.Status) {
				return fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, round.Status, *patch.Status)
			}
			updates["status"] = *patch.Status
		}
		if patch.Description != nil {
			updates["description"] = *patch.Description
		}
		if patch.Type != nil {
			updates["type"] = *patch.Type
		}
		if patch.Location != nil {
			updates["location"] = *patch.Location
		}
		if patch.ScheduledAt != nil {
			updates["scheduled_at"] = patch.ScheduledAt.UTC()
		}

		if len(updates) > 0 {
			if err := tx.Model(round).Updates(updates).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrDuplicateRoundName
				}
				return err
			}
		}

		updated, err = findRound(tx, jobID, roundID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the round and shifts every later round down by one, lowest
// first. The shifts run outside a transaction; if one fails the job is left
// with a gap and ErrRenumberIncomplete is returned. Repair closes the gap.
func (r *RoundRepository) Delete(ctx context.Context, jobID, roundID string) error {
	db := r.DB.WithContext(ctx)
	round, err := findRound(db, jobID, roundID)
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Round{}, "id = ?", round.ID).Error; err != nil {
		return err
	}

	var later []models.Round
	err = db.Where("job_id = ? AND round_order > ?", jobID, round.Order).
		Order("round_order ASC").
		Find(&later).Error
	if err != nil {
		return renumberFailed(jobID, err)
	}

	for _, next := range later {
		if err := ctx.Err(); err != nil {
			return renumberFailed(jobID, err)
		}
		err := db.Model(&models.Round{}).
			Where("id = ?", next.ID).
			Update("round_order", next.Order-1).Error
		if err != nil {
			return renumberFailed(jobID, err)
		}
	}
	return nil
}

func renumberFailed(jobID string, cause error) error {
	metrics.RenumberFaults.Inc()
	return fmt.Errorf("%w: job %s: %v", ErrRenumberIncomplete, jobID, cause)
}

// Reorder moves the listed rounds to their new orders in one transaction.
// Rounds are first parked on negative orders so that swaps never trip the
// (job_id, round_order) unique index mid-way.
func (r *RoundRepository) Reorder(ctx context.Context, jobID string, entries []models.RoundOrder) ([]models.Round, error) {
	if err := validateReorder(entries); err != nil {
		metrics.ReorderRollbacks.WithLabelValues("validation").Inc()
		return nil, err
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Job{}, jobID, ErrJobNotFound); err != nil {
			return err
		}

		ids := make([]string, len(entries))
		for i, entry := range entries {
			ids[i] = entry.RoundID
		}
		var owned int64
		if err := tx.Model(&models.Round{}).Where("job_id = ? AND id IN ?", jobID, ids).Count(&owned).Error; err != nil {
			return err
		}
		if int(owned) != len(ids) {
			return ErrRoundNotInJob
		}

		for i, entry := range entries {
			if err := setOrder(tx, jobID, entry.RoundID, -(i + 1)); err != nil {
				return err
			}
		}
		for _, entry := range entries {
			if err := setOrder(tx, jobID, entry.RoundID, entry.NewOrder); err != nil {
				return err
			}
		}

		orders, err := jobOrders(tx, jobID)
		if err != nil {
			return err
		}
		if !isContiguous(orders) {
			return fmt.Errorf("%w: got %v", ErrOrderGap, orders)
		}
		return nil
	})
	if err != nil {
		metrics.ReorderRollbacks.WithLabelValues(rollbackReason(err)).Inc()
		return nil, err
	}
	return r.GetByJob(ctx, jobID, models.RoundFilter{})
}

// Repair renumbers a job's rounds to 1..N keeping their relative order.
func (r *RoundRepository) Repair(ctx context.Context, jobID string) ([]models.Round, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &models.Job{}, jobID, ErrJobNotFound); err != nil {
			return err
		}

		var rounds []models.Round
		if err := tx.Where("job_id = ?", jobID).Order("round_order ASC, created_at ASC").Find(&rounds).Error; err != nil {
			return err
		}
		for i, round := range rounds {
			if err := setOrder(tx, jobID, round.ID, -(i + 1)); err != nil {
				return err
			}
		}
		for i, round := range rounds {
			if err := setOrder(tx, jobID, round.ID, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByJob(ctx, jobID, models.RoundFilter{})
}

// FindOrderGaps reports every job whose orders are not exactly 1..N.
func (r *RoundRepository) FindOrderGaps(ctx context.Context) ([]OrderGap, error) {
	var rows []struct {
		JobID      string
		RoundOrder int
	}
	err := r.DB.WithContext(ctx).Model(&models.Round{}).
		Select("job_id, round_order").
		Order("job_id ASC, round_order ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byJob := map[string][]int{}
	var jobIDs []string
	for _, row := range rows {
		if _, seen := byJob[row.JobID]; !seen {
			jobIDs = append(jobIDs, row.JobID)
		}
		byJob[row.JobID] = append(byJob[row.JobID], row.RoundOrder)
	}

	var gaps []OrderGap
	for _, jobID := range jobIDs {
		if orders := byJob[jobID]; !isContiguous(orders) {
			gaps = append(gaps, OrderGap{JobID: jobID, Orders: orders})
		}
	}
	return gaps, nil
}

func setOrder(tx *gorm.DB, jobID, roundID string, order int) error {
	err := tx.Model(&models.Round{}).
		Where("id = ? AND job_id = ?", roundID, jobID).
		Update("round_order", order).Error
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: order %d", ErrOrderCollision, order)
	}
	return err
}

func jobOrders(tx *gorm.DB, jobID string) ([]int, error) {
	var orders []int
	err := tx.Model(&models.Round{}).
		Where("job_id = ?", jobID).
		Order("round_order ASC").
		Pluck("round_order", &orders).Error
	return orders, err
}

// isContiguous reports whether orders, in any sequence, are exactly 1..N.
func isContiguous(orders []int) bool {
	sorted := append([]int(nil), orders...)
	sort.Ints(sorted)
	for i, order := range sorted {
		if order != i+1 {
			return false
		}
	}
	return true
}

func validateReorder(entries []models.RoundOrder) error {
	if len(entries) == 0 {
		return fmt.Errorf("%w: no rounds given", ErrInvalidReorder)
	}
	orders := make(map[int]bool, len(entries))
	ids := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.RoundID == "" {
			return fmt.Errorf("%w: missing round id", ErrInvalidReorder)
		}
		if entry.NewOrder < 1 {
			return fmt.Errorf("%w: order %d is not positive", ErrInvalidReorder, entry.NewOrder)
		}
		if orders[entry.NewOrder] {
			return fmt.Errorf("%w: order %d repeated", ErrInvalidReorder, entry.NewOrder)
		}
		if ids[entry.RoundID] {
			return fmt.Errorf("%w: round %s repeated", ErrInvalidReorder, entry.RoundID)
		}
		orders[entry.NewOrder] = true
		ids[entry.RoundID] = true
	}
	return nil
}

func rollbackReason(err error) string {
	switch {
	case errors.Is(err, ErrOrderCollision):
		return "collision"
	case errors.Is(err, ErrOrderGap):
		return "gap"
	case errors.Is(err, ErrRoundNotInJob), errors.Is(err, ErrJobNotFound):
		return "validation"
	default:
		return "error"
	}
}
