package handlers

import (
	"net/http"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	repo   ApplicationRepository
	logger *zap.Logger
}

func NewApplicationHandler(repo ApplicationRepository, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{repo: repo, logger: logger}
}

// ApplyHandler records an application for the job in the path. The student
// defaults to the caller when the body leaves it out.
func (handler *ApplicationHandler) ApplyHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.ApplyRequest](request)

	studentID := req.StudentID
	if studentID == "" {
		studentID = middleware.ActorFrom(request.Context())
	}
	if studentID == "" {
		utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
			Code:    "missing_student",
			Message: "studentId is required",
			Details: []models.ValidationErrorDetail{{Field: "studentId", Reason: "is required"}},
		})
		return
	}

	app, err := handler.repo.Create(request.Context(), &models.Application{
		JobID:       chi.URLParam(request, "jobId"),
		StudentID:   studentID,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("application submitted", zap.String("application_id", app.ID), zap.String("job_id", app.JobID))
	utils.Success(writer, http.StatusCreated, "Application submitted successfully", app)
}

func (handler *ApplicationHandler) GetApplicationHandler(writer http.ResponseWriter, request *http.Request) {
	app, err := handler.repo.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Application fetched successfully", app)
}
