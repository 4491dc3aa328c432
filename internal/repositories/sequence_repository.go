package repositories

import (
	"context"
	"fmt"
	"time"

	"novusarc/placement/internal/metrics"

	"gorm.io/gorm"
)

// SequenceAllocator hands out per-name integers. Each call returns a value
// strictly greater than any value previously returned for that name.
type SequenceAllocator interface {
	Next(ctx context.Context, name string) (int64, error)
}

// TxSequenceAllocator is implemented by allocators that can take part in
// the caller's database transaction.
type TxSequenceAllocator interface {
	SequenceAllocator
	WithTx(tx *gorm.DB) SequenceAllocator
}

const upsertSequenceSQL = `INSERT INTO sequence_counters (name, value, created_at, updated_at)
VALUES (?, 1, ?, ?)
ON CONFLICT (name) DO UPDATE SET value = sequence_counters.value + 1, updated_at = excluded.updated_at
RETURNING value`

type SequenceRepository struct {
	DB *gorm.DB
}

// Next increments and reads the counter in one statement, creating it at 1.
func (r *SequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	now := time.Now().UTC()
	var value int64
	result := r.DB.WithContext(ctx).Raw(upsertSequenceSQL, name, now, now).Scan(&value)
	if result.Error != nil {
		metrics.SequenceAllocations.WithLabelValues("sql", "error").Inc()
		return 0, fmt.Errorf("%w: %s: %v", ErrSequenceAllocation, name, result.Error)
	}
	if value < 1 {
		metrics.SequenceAllocations.WithLabelValues("sql", "error").Inc()
		return 0, fmt.Errorf("%w: %s returned no value", ErrSequenceAllocation, name)
	}
	metrics.SequenceAllocations.WithLabelValues("sql", "ok").Inc()
	return value, nil
}

func (r *SequenceRepository) WithTx(tx *gorm.DB) SequenceAllocator {
	return &SequenceRepository{DB: tx}
}

// withSequence allocates a value for name and runs fn with it inside one
// transaction. Allocators that can join the transaction roll back together
// with fn; others allocate first.
func withSequence(ctx context.Context, db *gorm.DB, alloc SequenceAllocator, name string, fn func(tx *gorm.DB, n int64) error) error {
	if txAlloc, ok := alloc.(TxSequenceAllocator); ok {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			n, err := txAlloc.WithTx(tx).Next(ctx, name)
			if err != nil {
				return err
			}
			return fn(tx, n)
		})
	}

	n, err := alloc.Next(ctx, name)
	if err != nil {
		return err
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, n)
	})
}
