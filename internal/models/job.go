package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobCodePrefix prefixes the code minted from SequenceJob.
const JobCodePrefix = "JOB"

type JobType string

const (
	JobFullTime JobType = "full_time"
	JobPartTime JobType = "part_time"
	JobIntern   JobType = "intern"
	JobContract JobType = "contract"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobFullTime, JobPartTime, JobIntern, JobContract:
		return true
	}
	return false
}

type JobStatus string

const (
	JobDraft    JobStatus = "draft"
	JobOpen     JobStatus = "open"
	JobClosed   JobStatus = "closed"
	JobArchived JobStatus = "archived"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobDraft, JobOpen, JobClosed, JobArchived:
		return true
	}
	return false
}

type Job struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobCode     string    `gorm:"type:varchar(32);not null;uniqueIndex" json:"jobCode"`
	Title       string    `gorm:"type:varchar(200);not null;index:idx_jobs_company_title,priority:2" json:"title"`
	CompanyID   string    `gorm:"type:varchar(36);not null;index:idx_jobs_company_title,priority:1" json:"companyId"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Location    string    `gorm:"type:varchar(255)" json:"location,omitempty"`
	Type        JobType   `gorm:"type:varchar(16);not null;default:full_time" json:"type"`
	Status      JobStatus `gorm:"type:varchar(16);not null;default:open" json:"status"`
	PostedBy    string    `gorm:"type:varchar(64)" json:"postedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Type == "" {
		j.Type = JobFullTime
	}
	if j.Status == "" {
		j.Status = JobOpen
	}
	return nil
}

type JobFilter struct {
	CompanyID string
	Status    JobStatus
	Page      int
	Limit     int
}

// JobPatch holds the editable fields. JobCode and CompanyID never change.
type JobPatch struct {
	Title       *string
	Description *string
	Location    *string
	Type        *JobType
	Status      *JobStatus
}
