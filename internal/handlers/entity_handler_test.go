package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"novusarc/placement/internal/handlers"
	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/repositories"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func entityRouter(companies handlers.CompanyRepository, jobs handlers.JobRepository, apps handlers.ApplicationRepository) *chi.Mux {
	logger := zap.NewNop()
	ch := handlers.NewCompanyHandler(companies, logger)
	jh := handlers.NewJobHandler(jobs, logger)
	ah := handlers.NewApplicationHandler(apps, logger)

	r := newRouter()
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", ch.GetCompaniesHandler)
		r.With(middleware.ValidateRequest[*models.CreateCompanyRequest]()).Post("/", ch.CreateCompanyHandler)
		r.Get("/{id}", ch.GetCompanyHandler)
		r.With(middleware.ValidateRequest[*models.UpdateCompanyRequest]()).Put("/{id}", ch.UpdateCompanyHandler)
		r.Delete("/{id}", ch.DeleteCompanyHandler)
		r.Post("/{id}/restore", ch.RestoreCompanyHandler)
	})
	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jh.GetJobsHandler)
		r.With(middleware.ValidateRequest[*models.CreateJobRequest]()).Post("/create", jh.CreateJobHandler)
		r.Get("/{id}", jh.GetJobHandler)
		r.With(middleware.ValidateRequest[*models.UpdateJobRequest]()).Put("/{id}", jh.UpdateJobHandler)
		r.Post("/{id}/close", jh.CloseJobHandler)
	})
	r.Route("/api/applications", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.ApplyRequest]()).Post("/{jobId}/apply", ah.ApplyHandler)
		r.Get("/{id}", ah.GetApplicationHandler)
	})
	return r
}

func TestCreateCompany_Valid(t *testing.T) {
	companies := &fakeCompanyRepo{
		createFn: func(c *models.Company) (*models.Company, error) {
			if c.CompanyCode != "ACME" || c.CreatedBy != "admin" {
				t.Fatalf("unexpected company %+v", c)
			}
			c.ID = "c1"
			c.CompanyCodeNovusarc = "COMP_NOVSARC_0001"
			return c, nil
		},
	}
	rr := do(t, entityRouter(companies, nil, nil), http.MethodPost, "/api/companies",
		`{"name":"Acme Corp","companyCode":" acme "}`, middleware.ActorHeader, "admin")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var body map[string]any
	decodeData(t, rr, &body)
	if body["companyCode_novusarc"] != "COMP_NOVSARC_0001" {
		t.Fatalf("expected minted code in payload, got %v", body)
	}
}

func TestCreateCompany_Duplicates(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("%w: Acme Corp", repositories.ErrDuplicateCompanyName), "duplicate_company_name"},
		{fmt.Errorf("%w: ACME", repositories.ErrDuplicateCompanyCode), "duplicate_company_code"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			companies := &fakeCompanyRepo{
				createFn: func(*models.Company) (*models.Company, error) { return nil, tc.err },
			}
			rr := do(t, entityRouter(companies, nil, nil), http.MethodPost, "/api/companies",
				`{"name":"Acme Corp","companyCode":"ACME"}`)
			expectError(t, rr, http.StatusConflict, tc.code)
		})
	}
}

func TestGetCompanies_Search(t *testing.T) {
	companies := &fakeCompanyRepo{
		listFn: func(search string, page, limit int) ([]models.Company, int, error) {
			if search != "acme" || page != 1 || limit != 10 {
				t.Fatalf("unexpected args %q %d %d", search, page, limit)
			}
			return []models.Company{{ID: "c1", Name: "Acme Corp"}}, 1, nil
		},
	}
	rr := do(t, entityRouter(companies, nil, nil), http.MethodGet, "/api/companies?search=acme", "")
	var page models.PageResponse[models.Company]
	decodeData(t, rr, &page)
	if page.Total != 1 || page.Items[0].Name != "Acme Corp" || page.HasNext {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestGetCompany_NotFound(t *testing.T) {
	companies := &fakeCompanyRepo{
		getByIDFn: func(string) (*models.Company, error) { return nil, repositories.ErrCompanyNotFound },
	}
	rr := do(t, entityRouter(companies, nil, nil), http.MethodGet, "/api/companies/none", "")
	expectError(t, rr, http.StatusNotFound, "company_not_found")
}

func TestUpdateCompany_Valid(t *testing.T) {
	companies := &fakeCompanyRepo{
		updateFn: func(id string, patch models.CompanyPatch) (*models.Company, error) {
			if id != "c1" || patch.Name == nil || *patch.Name != "Acme Labs" || patch.Website != nil {
				t.Fatalf("unexpected patch for %s: %+v", id, patch)
			}
			return &models.Company{ID: id, Name: *patch.Name, Slug: models.Slugify(*patch.Name)}, nil
		},
	}
	rr := do(t, entityRouter(companies, nil, nil), http.MethodPut, "/api/companies/c1", `{"name":"  Acme Labs "}`)
	var company models.Company
	decodeData(t, rr, &company)
	if company.Slug != "acme-labs" {
		t.Fatalf("unexpected company %+v", company)
	}
}

func TestUpdateCompany_Rejects(t *testing.T) {
	companies := &fakeCompanyRepo{
		updateFn: func(string, models.CompanyPatch) (*models.Company, error) {
			return nil, repositories.ErrDuplicateCompanyName
		},
	}
	router := entityRouter(companies, nil, nil)

	expectError(t, do(t, router, http.MethodPut, "/api/companies/c1", `{}`), http.StatusBadRequest, "empty_update")
	expectError(t, do(t, router, http.MethodPut, "/api/companies/c1", `{"name":"  "}`), http.StatusBadRequest, "invalid_name")
	expectError(t, do(t, router, http.MethodPut, "/api/companies/c1", `{"name":"Globex"}`), http.StatusConflict, "duplicate_company_name")
}

func TestDeleteAndRestoreCompany(t *testing.T) {
	var calls []bool
	companies := &fakeCompanyRepo{
		setActiveFn: func(id string, active bool) (*models.Company, error) {
			if id == "none" {
				return nil, repositories.ErrCompanyNotFound
			}
			calls = append(calls, active)
			return &models.Company{ID: id, IsActive: active}, nil
		},
	}
	router := entityRouter(companies, nil, nil)

	rr := do(t, router, http.MethodDelete, "/api/companies/c1", "")
	env := decodeData(t, rr, nil)
	if env.Message != "Company deleted successfully" || len(env.Data) != 0 {
		t.Fatalf("unexpected delete envelope %+v", env)
	}

	rr = do(t, router, http.MethodPost, "/api/companies/c1/restore", "")
	var company models.Company
	decodeData(t, rr, &company)
	if !company.IsActive {
		t.Fatalf("expected restored company, got %+v", company)
	}
	if len(calls) != 2 || calls[0] || !calls[1] {
		t.Fatalf("expected deactivate then activate, got %v", calls)
	}

	expectError(t, do(t, router, http.MethodDelete, "/api/companies/none", ""), http.StatusNotFound, "company_not_found")
}

func TestCreateJob_CompanyMissing(t *testing.T) {
	jobs := &fakeJobRepo{
		createFn: func(*models.Job) (*models.Job, error) { return nil, repositories.ErrCompanyNotFound },
	}
	rr := do(t, entityRouter(nil, jobs, nil), http.MethodPost, "/api/jobs/create",
		`{"title":"SDE Intern","company":"c-missing"}`)
	expectError(t, rr, http.StatusNotFound, "company_not_found")
}

func TestCreateJob_Valid(t *testing.T) {
	jobs := &fakeJobRepo{
		createFn: func(j *models.Job) (*models.Job, error) {
			j.ID = "j1"
			j.JobCode = "JOB_0007"
			return j, nil
		},
	}
	rr := do(t, entityRouter(nil, jobs, nil), http.MethodPost, "/api/jobs/create",
		`{"title":"SDE Intern","company":"c1","type":"intern"}`, middleware.ActorHeader, "tpo-1")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var job models.Job
	decodeData(t, rr, &job)
	if job.JobCode != "JOB_0007" || job.PostedBy != "tpo-1" || job.Type != models.JobIntern {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestCreateJob_DuplicateTitle(t *testing.T) {
	jobs := &fakeJobRepo{
		createFn: func(*models.Job) (*models.Job, error) { return nil, repositories.ErrDuplicateJobTitle },
	}
	rr := do(t, entityRouter(nil, jobs, nil), http.MethodPost, "/api/jobs/create", `{"title":"SDE","company":"c1"}`)
	expectError(t, rr, http.StatusConflict, "duplicate_job_title")
}

func TestGetJobs_InvalidStatus(t *testing.T) {
	rr := do(t, entityRouter(nil, &fakeJobRepo{}, nil), http.MethodGet, "/api/jobs?status=hiring", "")
	expectError(t, rr, http.StatusBadRequest, "invalid_job_status")
}

func TestGetJob_OK(t *testing.T) {
	jobs := &fakeJobRepo{
		getByIDFn: func(id string) (*models.Job, error) { return &models.Job{ID: id, Title: "SDE"}, nil },
	}
	rr := do(t, entityRouter(nil, jobs, nil), http.MethodGet, "/api/jobs/j1", "")
	var job models.Job
	decodeData(t, rr, &job)
	if job.ID != "j1" {
		t.Fatalf("unexpected job %+v", job)
	}
}

func TestApply_StudentFromActor(t *testing.T) {
	apps := &fakeApplicationRepo{
		createFn: func(a *models.Application) (*models.Application, error) {
			if a.JobID != "j1" || a.StudentID != "stu-9" {
				t.Fatalf("unexpected application %+v", a)
			}
			a.ID = "app-1"
			return a, nil
		},
	}
	rr := do(t, entityRouter(nil, nil, apps), http.MethodPost, "/api/applications/j1/apply",
		`{"resumeUrl":"https://cdn.example/cv.pdf"}`, middleware.ActorHeader, "stu-9")
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestApply_MissingStudent(t *testing.T) {
	rr := do(t, entityRouter(nil, nil, &fakeApplicationRepo{}), http.MethodPost, "/api/applications/j1/apply", `{}`)
	expectError(t, rr, http.StatusBadRequest, "missing_student")
}

func TestApply_Duplicate(t *testing.T) {
	apps := &fakeApplicationRepo{
		createFn: func(*models.Application) (*models.Application, error) {
			return nil, repositories.ErrDuplicateApplication
		},
	}
	rr := do(t, entityRouter(nil, nil, apps), http.MethodPost, "/api/applications/j1/apply", `{"studentId":"stu-1"}`)
	expectError(t, rr, http.StatusConflict, "duplicate_application")
}

func TestGetApplication_NotFound(t *testing.T) {
	apps := &fakeApplicationRepo{
		getByIDFn: func(string) (*models.Application, error) { return nil, repositories.ErrApplicationNotFound },
	}
	rr := do(t, entityRouter(nil, nil, apps), http.MethodGet, "/api/applications/none", "")
	expectError(t, rr, http.StatusNotFound, "application_not_found")
}

func TestUpdateJob(t *testing.T) {
	jobs := &fakeJobRepo{
		updateFn: func(id string, patch models.JobPatch) (*models.Job, error) {
			if id == "taken" {
				return nil, repositories.ErrDuplicateJobTitle
			}
			if patch.Status == nil || *patch.Status != models.JobDraft || patch.Title != nil {
				t.Fatalf("unexpected patch %+v", patch)
			}
			return &models.Job{ID: id, Status: *patch.Status}, nil
		},
	}
	router := entityRouter(nil, jobs, nil)

	rr := do(t, router, http.MethodPut, "/api/jobs/j1", `{"status":"draft"}`)
	var job models.Job
	decodeData(t, rr, &job)
	if job.Status != models.JobDraft {
		t.Fatalf("unexpected job %+v", job)
	}

	expectError(t, do(t, router, http.MethodPut, "/api/jobs/j1", `{"type":"gig"}`), http.StatusBadRequest, "invalid_job_type")
	expectError(t, do(t, router, http.MethodPut, "/api/jobs/j1", `{}`), http.StatusBadRequest, "empty_update")
	expectError(t, do(t, router, http.MethodPut, "/api/jobs/taken", `{"title":"SDE"}`), http.StatusConflict, "duplicate_job_title")
}

func TestCloseJob(t *testing.T) {
	jobs := &fakeJobRepo{
		closeFn: func(id string) (*models.Job, error) {
			if id == "none" {
				return nil, repositories.ErrJobNotFound
			}
			return &models.Job{ID: id, Status: models.JobClosed}, nil
		},
	}
	router := entityRouter(nil, jobs, nil)

	rr := do(t, router, http.MethodPost, "/api/jobs/j1/close", "")
	var job models.Job
	decodeData(t, rr, &job)
	if job.Status != models.JobClosed {
		t.Fatalf("unexpected job %+v", job)
	}

	expectError(t, do(t, router, http.MethodPost, "/api/jobs/none/close", ""), http.StatusNotFound, "job_not_found")
}
