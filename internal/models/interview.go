package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultInterviewDuration applies when a schedule request has no end time.
const DefaultInterviewDuration = time.Hour

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
	InterviewNoShow    InterviewStatus = "no_show"
)

func (s InterviewStatus) IsValid() bool {
	switch s {
	case InterviewScheduled, InterviewCompleted, InterviewCancelled, InterviewNoShow:
		return true
	}
	return false
}

type InterviewMode string

const (
	InterviewOnline  InterviewMode = "online"
	InterviewOffline InterviewMode = "offline"
)

func (m InterviewMode) IsValid() bool {
	return m == InterviewOnline || m == InterviewOffline
}

// Interview occupies the half-open window [StartTime, EndTime) of the
// candidate's calendar unless it is cancelled.
type Interview struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	ApplicationID string          `gorm:"type:varchar(36);not null;index" json:"applicationId"`
	JobID         string          `gorm:"type:varchar(36);index" json:"jobId,omitempty"`
	CandidateID   string          `gorm:"type:varchar(64);not null;index:idx_interviews_candidate_start,priority:1" json:"candidateId"`
	InterviewerID string          `gorm:"type:varchar(64);index" json:"interviewerId,omitempty"`
	StartTime     time.Time       `gorm:"not null;index:idx_interviews_candidate_start,priority:2" json:"startTime"`
	EndTime       time.Time       `gorm:"not null" json:"endTime"`
	Mode          InterviewMode   `gorm:"type:varchar(16);not null;default:online" json:"mode"`
	Location      string          `gorm:"type:varchar(255)" json:"location,omitempty"`
	Status        InterviewStatus `gorm:"type:varchar(16);not null;default:scheduled" json:"status"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = InterviewScheduled
	}
	if i.Mode == "" {
		i.Mode = InterviewOnline
	}
	return nil
}

type InterviewFilter struct {
	CandidateID   string
	InterviewerID string
	JobID         string
	Status        InterviewStatus
	Page          int
	Limit         int
}

type InterviewPatch struct {
	StartTime *time.Time
	EndTime   *time.Time
	Status    *InterviewStatus
	Mode      *InterviewMode
	Location  *string
	Notes     *string
}

// TouchesSchedule reports whether applying the patch to current can create
// a new overlap.
func (p InterviewPatch) TouchesSchedule(current *Interview) bool {
	if p.StartTime != nil || p.EndTime != nil {
		return true
	}
	return p.Status != nil && current.Status == InterviewCancelled && *p.Status != InterviewCancelled
}
