package handlers

import (
	"net/http"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type JobHandler struct {
	repo   JobRepository
	logger *zap.Logger
}

func NewJobHandler(repo JobRepository, logger *zap.Logger) *JobHandler {
	return &JobHandler{repo: repo, logger: logger}
}

func (handler *JobHandler) CreateJobHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateJobRequest](request)

	job, err := handler.repo.Create(request.Context(), &models.Job{
		Title:       req.Title,
		CompanyID:   req.CompanyID,
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		Status:      req.Status,
		PostedBy:    middleware.ActorFrom(request.Context()),
	})
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("job created", zap.String("job_id", job.ID), zap.String("code", job.JobCode))
	utils.Success(writer, http.StatusCreated, "Job created successfully", job)
}

func (handler *JobHandler) GetJobsHandler(writer http.ResponseWriter, request *http.Request) {
	page, limit, errResp := parsePagination(request)
	if errResp != nil {
		utils.JSON(writer, http.StatusBadRequest, errResp)
		return
	}

	filter := models.JobFilter{
		CompanyID: request.URL.Query().Get("companyId"),
		Status:    models.JobStatus(request.URL.Query().Get("status")),
		Page:      page,
		Limit:     limit,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.JSONError(writer, http.StatusBadRequest, "invalid_job_status", "status must be one of draft, open, closed, archived")
		return
	}

	jobs, total, err := handler.repo.List(request.Context(), filter)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Jobs fetched successfully", models.NewPageResponse(jobs, page, limit, total))
}

func (handler *JobHandler) GetJobHandler(writer http.ResponseWriter, request *http.Request) {
	job, err := handler.repo.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Job fetched successfully", job)
}

func (handler *JobHandler) UpdateJobHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateJobRequest](request)
	id := chi.URLParam(request, "id")

	job, err := handler.repo.Update(request.Context(), id, req.Patch())
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("job updated", zap.String("job_id", id), zap.String("status", string(job.Status)))
	utils.Success(writer, http.StatusOK, "Job updated successfully", job)
}

func (handler *JobHandler) CloseJobHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	job, err := handler.repo.Close(request.Context(), id)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("job closed", zap.String("job_id", id))
	utils.Success(writer, http.StatusOK, "Job closed successfully", job)
}
