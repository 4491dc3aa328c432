package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoundType string

const (
	RoundTypeTest            RoundType = "test"
	RoundTypeInterview       RoundType = "interview"
	RoundTypeAssignment      RoundType = "assignment"
	RoundTypeGroupDiscussion RoundType = "group_discussion"
	RoundTypeHR              RoundType = "hr"
)

func (t RoundType) IsValid() bool {
	switch t {
	case RoundTypeTest, RoundTypeInterview, RoundTypeAssignment, RoundTypeGroupDiscussion, RoundTypeHR:
		return true
	}
	return false
}

// a round only moves out of active, never back
type RoundStatus string

const (
	RoundStatusActive    RoundStatus = "active"
	RoundStatusCompleted RoundStatus = "completed"
	RoundStatusSkipped   RoundStatus = "skipped"
)

func (s RoundStatus) IsValid() bool {
	switch s {
	case RoundStatusActive, RoundStatusCompleted, RoundStatusSkipped:
		return true
	}
	return false
}

// CanTransitionTo reports whether a round may move from s to next.
func (s RoundStatus) CanTransitionTo(next RoundStatus) bool {
	if s == next {
		return true
	}
	return s == RoundStatusActive && (next == RoundStatusCompleted || next == RoundStatusSkipped)
}

// Round is one stage of a job's hiring pipeline. Order is 1-based and,
// per job, always a permutation of 1..N.
type Round struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID       string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_rounds_job_order,priority:1;uniqueIndex:idx_rounds_job_name,priority:1" json:"jobId"`
	Name        string      `gorm:"type:varchar(200);not null;uniqueIndex:idx_rounds_job_name,priority:2" json:"roundName"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	Type        RoundType   `gorm:"type:varchar(32);not null" json:"type"`
	Status      RoundStatus `gorm:"type:varchar(16);not null;default:active" json:"status"`
	Order       int         `gorm:"column:round_order;not null;uniqueIndex:idx_rounds_job_order,priority:2" json:"order"`
	Location    string      `gorm:"type:varchar(255)" json:"roundLocation,omitempty"`
	ScheduledAt *time.Time  `json:"scheduledAt,omitempty"`
	CreatedBy   string      `gorm:"type:varchar(64)" json:"createdBy,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (r *Round) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RoundStatusActive
	}
	return nil
}

// RoundFilter narrows GetByJob results.
type RoundFilter struct {
	Status RoundStatus
	Type   RoundType
}

// RoundOrder is one entry of a reorder request.
type RoundOrder struct {
	RoundID  string `json:"roundId"`
	NewOrder int    `json:"newOrder"`
}

// RoundPatch lists the mutable round fields. Order only changes through
// create, delete and reorder.
type RoundPatch struct {
	Name        *string
	Description *string
	Type        *RoundType
	Status      *RoundStatus
	Location    *string
	ScheduledAt *time.Time
}
