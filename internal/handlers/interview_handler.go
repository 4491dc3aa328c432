package handlers

import (
	"net/http"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type InterviewHandler struct {
	repo   InterviewRepository
	logger *zap.Logger
}

func NewInterviewHandler(repo InterviewRepository, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{repo: repo, logger: logger}
}

func (handler *InterviewHandler) ScheduleInterviewHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.ScheduleInterviewRequest](request)

	interview, err := handler.repo.Schedule(request.Context(), req.Interview())
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("interview scheduled",
		zap.String("interview_id", interview.ID),
		zap.String("candidate_id", interview.CandidateID),
		zap.Time("start", interview.StartTime))
	utils.Success(writer, http.StatusCreated, "Interview scheduled successfully", interview)
}

func (handler *InterviewHandler) GetInterviewsHandler(writer http.ResponseWriter, request *http.Request) {
	page, limit, errResp := parsePagination(request)
	if errResp != nil {
		utils.JSON(writer, http.StatusBadRequest, errResp)
		return
	}

	query := request.URL.Query()
	filter := models.InterviewFilter{
		CandidateID:   query.Get("candidateId"),
		InterviewerID: query.Get("interviewerId"),
		JobID:         query.Get("jobId"),
		Status:        models.InterviewStatus(query.Get("status")),
		Page:          page,
		Limit:         limit,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.JSONError(writer, http.StatusBadRequest, "invalid_status", "status must be one of scheduled, completed, cancelled, no_show")
		return
	}

	interviews, total, err := handler.repo.List(request.Context(), filter)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Interviews fetched successfully", models.NewPageResponse(interviews, page, limit, total))
}

func (handler *InterviewHandler) GetInterviewHandler(writer http.ResponseWriter, request *http.Request) {
	interview, err := handler.repo.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Interview fetched successfully", interview)
}

// UpdateInterviewHandler applies a partial update. Time changes are checked
// against the candidate's other interviews just like a new booking.
func (handler *InterviewHandler) UpdateInterviewHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateInterviewRequest](request)
	id := chi.URLParam(request, "id")

	interview, err := handler.repo.Update(request.Context(), id, req.Patch())
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("interview updated", zap.String("interview_id", id), zap.String("status", string(interview.Status)))
	utils.Success(writer, http.StatusOK, "Interview updated successfully", interview)
}
