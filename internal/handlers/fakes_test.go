package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

var errNotImplemented = errors.New("not implemented")

type fakeRoundRepo struct {
	createFn   func(*models.Round) (*models.Round, error)
	getByJobFn func(string, models.RoundFilter) ([]models.Round, error)
	getByIDFn  func(string, string) (*models.Round, error)
	updateFn   func(string, string, models.RoundPatch) (*models.Round, error)
	deleteFn   func(string, string) error
	reorderFn  func(string, []models.RoundOrder) ([]models.Round, error)
	repairFn   func(string) ([]models.Round, error)
}

func (f *fakeRoundRepo) Create(_ context.Context, round *models.Round) (*models.Round, error) {
	if f.createFn != nil {
		return f.createFn(round)
	}
	return nil, errNotImplemented
}
func (f *fakeRoundRepo) GetByJob(_ context.Context, jobID string, filter models.RoundFilter) ([]models.Round, error) {
	if f.getByJobFn != nil {
		return f.getByJobFn(jobID, filter)
	}
	return nil, errNotImplemented
}
func (f *fakeRoundRepo) GetByID(_ context.Context, jobID, roundID string) (*models.Round, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(jobID, roundID)
	}
	return nil, errNotImplemented
}
func (f *fakeRoundRepo) Update(_ context.Context, jobID, roundID string, patch models.RoundPatch) (*models.Round, error) {
	if f.updateFn != nil {
		return f.updateFn(jobID, roundID, patch)
	}
	return nil, errNotImplemented
}
func (f *fakeRoundRepo) Delete(_ context.Context, jobID, roundID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(jobID, roundID)
	}
	return errNotImplemented
}
func (f *fakeRoundRepo) Reorder(_ context.Context, jobID string, entries []models.RoundOrder) ([]models.Round, error) {
	if f.reorderFn != nil {
		return f.reorderFn(jobID, entries)
	}
	return nil, errNotImplemented
}
func (f *fakeRoundRepo) Repair(_ context.Context, jobID string) ([]models.Round, error) {
	if f.repairFn != nil {
		return f.repairFn(jobID)
	}
	return nil, errNotImplemented
}

type fakeInterviewRepo struct {
	scheduleFn func(*models.Interview) (*models.Interview, error)
	getByIDFn  func(string) (*models.Interview, error)
	listFn     func(models.InterviewFilter) ([]models.Interview, int, error)
	updateFn   func(string, models.InterviewPatch) (*models.Interview, error)
}

func (f *fakeInterviewRepo) Schedule(_ context.Context, interview *models.Interview) (*models.Interview, error) {
	if f.scheduleFn != nil {
		return f.scheduleFn(interview)
	}
	return nil, errNotImplemented
}
func (f *fakeInterviewRepo) GetByID(_ context.Context, id string) (*models.Interview, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, errNotImplemented
}
func (f *fakeInterviewRepo) List(_ context.Context, filter models.InterviewFilter) ([]models.Interview, int, error) {
	if f.listFn != nil {
		return f.listFn(filter)
	}
	return nil, 0, errNotImplemented
}
func (f *fakeInterviewRepo) Update(_ context.Context, id string, patch models.InterviewPatch) (*models.Interview, error) {
	if f.updateFn != nil {
		return f.updateFn(id, patch)
	}
	return nil, errNotImplemented
}

type fakeCompanyRepo struct {
	createFn    func(*models.Company) (*models.Company, error)
	getByIDFn   func(string) (*models.Company, error)
	listFn      func(string, int, int) ([]models.Company, int, error)
	updateFn    func(string, models.CompanyPatch) (*models.Company, error)
	setActiveFn func(string, bool) (*models.Company, error)
}

func (f *fakeCompanyRepo) Create(_ context.Context, company *models.Company) (*models.Company, error) {
	if f.createFn != nil {
		return f.createFn(company)
	}
	return nil, errNotImplemented
}
func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*models.Company, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, errNotImplemented
}
func (f *fakeCompanyRepo) List(_ context.Context, search string, page, limit int) ([]models.Company, int, error) {
	if f.listFn != nil {
		return f.listFn(search, page, limit)
	}
	return nil, 0, errNotImplemented
}
func (f *fakeCompanyRepo) Update(_ context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	if f.updateFn != nil {
		return f.updateFn(id, patch)
	}
	return nil, errNotImplemented
}
func (f *fakeCompanyRepo) SetActive(_ context.Context, id string, active bool) (*models.Company, error) {
	if f.setActiveFn != nil {
		return f.setActiveFn(id, active)
	}
	return nil, errNotImplemented
}

type fakeJobRepo struct {
	createFn  func(*models.Job) (*models.Job, error)
	getByIDFn func(string) (*models.Job, error)
	listFn    func(models.JobFilter) ([]models.Job, int, error)
	updateFn  func(string, models.JobPatch) (*models.Job, error)
	closeFn   func(string) (*models.Job, error)
}

func (f *fakeJobRepo) Create(_ context.Context, job *models.Job) (*models.Job, error) {
	if f.createFn != nil {
		return f.createFn(job)
	}
	return nil, errNotImplemented
}
func (f *fakeJobRepo) GetByID(_ context.Context, id string) (*models.Job, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, errNotImplemented
}
func (f *fakeJobRepo) List(_ context.Context, filter models.JobFilter) ([]models.Job, int, error) {
	if f.listFn != nil {
		return f.listFn(filter)
	}
	return nil, 0, errNotImplemented
}
func (f *fakeJobRepo) Update(_ context.Context, id string, patch models.JobPatch) (*models.Job, error) {
	if f.updateFn != nil {
		return f.updateFn(id, patch)
	}
	return nil, errNotImplemented
}
func (f *fakeJobRepo) Close(_ context.Context, id string) (*models.Job, error) {
	if f.closeFn != nil {
		return f.closeFn(id)
	}
	return nil, errNotImplemented
}

type fakeApplicationRepo struct {
	createFn  func(*models.Application) (*models.Application, error)
	getByIDFn func(string) (*models.Application, error)
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *models.Application) (*models.Application, error) {
	if f.createFn != nil {
		return f.createFn(app)
	}
	return nil, errNotImplemented
}
func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*models.Application, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(id)
	}
	return nil, errNotImplemented
}

// helpers

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Actor("", zap.NewNop()))
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad JSON: %v\nbody=%s", err, rr.Body.String())
	}
	if !env.Success {
		t.Fatalf("expected success envelope, got %s", rr.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("bad data: %v\nbody=%s", err, rr.Body.String())
		}
	}
	return env
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad JSON: %v\nbody=%s", err, rr.Body.String())
	}
	return resp
}

func expectError(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
	if got := decodeError(t, rr); got.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, got.Code, got.Message)
	}
}
