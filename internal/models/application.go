package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "applied"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
	ApplicationWithdrawn   ApplicationStatus = "withdrawn"
)

// Application links a student to a job. A student applies to a job once.
type Application struct {
	ID          string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	JobID       string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_job_student,priority:1" json:"jobId"`
	StudentID   string            `gorm:"type:varchar(64);not null;uniqueIndex:idx_applications_job_student,priority:2" json:"studentId"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:applied" json:"status"`
	ResumeURL   string            `gorm:"type:varchar(512)" json:"resumeUrl,omitempty"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter,omitempty"`
	AppliedAt   time.Time         `json:"appliedAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = ApplicationApplied
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	return nil
}
