package handlers

import (
	"context"

	"novusarc/placement/internal/models"
	"novusarc/placement/internal/repositories"
)

// RoundRepository captures the round pipeline operations required by handlers.
type RoundRepository interface {
	Create(ctx context.Context, round *models.Round) (*models.Round, error)
	GetByJob(ctx context.Context, jobID string, filter models.RoundFilter) ([]models.Round, error)
	GetByID(ctx context.Context, jobID, roundID string) (*models.Round, error)
	Update(ctx context.Context, jobID, roundID string, patch models.RoundPatch) (*models.Round, error)
	Delete(ctx context.Context, jobID, roundID string) error
	Reorder(ctx context.Context, jobID string, entries []models.RoundOrder) ([]models.Round, error)
	Repair(ctx context.Context, jobID string) ([]models.Round, error)
}

// InterviewRepository captures interview scheduling operations.
type InterviewRepository interface {
	Schedule(ctx context.Context, interview *models.Interview) (*models.Interview, error)
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	List(ctx context.Context, filter models.InterviewFilter) ([]models.Interview, int, error)
	Update(ctx context.Context, id string, patch models.InterviewPatch) (*models.Interview, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	GetByID(ctx context.Context, id string) (*models.Company, error)
	List(ctx context.Context, search string, page, limit int) ([]models.Company, int, error)
	Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error)
	SetActive(ctx context.Context, id string, active bool) (*models.Company, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, filter models.JobFilter) ([]models.Job, int, error)
	Update(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error)
	Close(ctx context.Context, id string) (*models.Job, error)
}

type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) (*models.Application, error)
	GetByID(ctx context.Context, id string) (*models.Application, error)
}

var (
	_ RoundRepository       = (*repositories.RoundRepository)(nil)
	_ InterviewRepository   = (*repositories.InterviewRepository)(nil)
	_ CompanyRepository     = (*repositories.CompanyRepository)(nil)
	_ JobRepository         = (*repositories.JobRepository)(nil)
	_ ApplicationRepository = (*repositories.ApplicationRepository)(nil)
)
