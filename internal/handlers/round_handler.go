package handlers

import (
	"net/http"
	"time"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RoundHandler struct {
	repo   RoundRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewRoundHandler(repo RoundRepository, logger *zap.Logger) *RoundHandler {
	return &RoundHandler{repo: repo, logger: logger, now: time.Now}
}

// WithClock replaces the clock used to reject past schedules.
func (handler *RoundHandler) WithClock(now func() time.Time) *RoundHandler {
	handler.now = now
	return handler
}

func (handler *RoundHandler) rejectPast(writer http.ResponseWriter, scheduledAt *time.Time) bool {
	if scheduledAt == nil || !scheduledAt.Before(handler.now()) {
		return false
	}
	utils.JSON(writer, http.StatusBadRequest, models.ErrorResponse{
		Code:    "scheduled_in_past",
		Message: "scheduledAt cannot be in the past",
		Details: []models.ValidationErrorDetail{{Field: "scheduledAt", Reason: "must not be in the past"}},
	})
	return true
}

func (handler *RoundHandler) CreateRoundHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateRoundRequest](request)
	if handler.rejectPast(writer, req.ScheduledAt) {
		return
	}

	round := &models.Round{
		JobID:       chi.URLParam(request, "jobId"),
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
		Status:      models.RoundStatusActive,
		Location:    req.Location,
		CreatedBy:   middleware.ActorFrom(request.Context()),
	}
	if req.ScheduledAt != nil {
		at := req.ScheduledAt.UTC()
		round.ScheduledAt = &at
	}

	created, err := handler.repo.Create(request.Context(), round)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("round created",
		zap.String("job_id", created.JobID),
		zap.String("round_id", created.ID),
		zap.Int("order", created.Order))
	utils.Success(writer, http.StatusCreated, "Round created successfully", created)
}

func (handler *RoundHandler) GetRoundsHandler(writer http.ResponseWriter, request *http.Request) {
	filter := models.RoundFilter{
		Status: models.RoundStatus(request.URL.Query().Get("status")),
		Type:   models.RoundType(request.URL.Query().Get("type")),
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		utils.JSONError(writer, http.StatusBadRequest, "invalid_round_status", "status must be one of active, completed, skipped")
		return
	}
	if filter.Type != "" && !filter.Type.IsValid() {
		utils.JSONError(writer, http.StatusBadRequest, "invalid_round_type", "type must be one of test, interview, assignment, group_discussion, hr")
		return
	}

	rounds, err := handler.repo.GetByJob(request.Context(), chi.URLParam(request, "jobId"), filter)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.SuccessList(writer, "Rounds fetched successfully", rounds)
}

func (handler *RoundHandler) GetRoundHandler(writer http.ResponseWriter, request *http.Request) {
	round, err := handler.repo.GetByID(request.Context(), chi.URLParam(request, "jobId"), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Round fetched successfully", round)
}

func (handler *RoundHandler) UpdateRoundHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateRoundRequest](request)
	if handler.rejectPast(writer, req.ScheduledAt) {
		return
	}

	round, err := handler.repo.Update(request.Context(), chi.URLParam(request, "jobId"), chi.URLParam(request, "id"), req.Patch())
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Round updated successfully", round)
}

func (handler *RoundHandler) DeleteRoundHandler(writer http.ResponseWriter, request *http.Request) {
	jobID := chi.URLParam(request, "jobId")
	roundID := chi.URLParam(request, "id")

	if err := handler.repo.Delete(request.Context(), jobID, roundID); err != nil {
		writeError(writer, handler.logger.With(zap.String("job_id", jobID), zap.String("round_id", roundID)), err)
		return
	}
	utils.Success(writer, http.StatusOK, "Round deleted successfully", nil)
}

func (handler *RoundHandler) ReorderRoundsHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.ReorderRoundsRequest](request)
	jobID := chi.URLParam(request, "jobId")

	rounds, err := handler.repo.Reorder(request.Context(), jobID, req.Rounds)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("rounds reordered", zap.String("job_id", jobID), zap.Int("moved", len(req.Rounds)))
	utils.SuccessList(writer, "Rounds reordered successfully", rounds)
}

func (handler *RoundHandler) RepairRoundsHandler(writer http.ResponseWriter, request *http.Request) {
	jobID := chi.URLParam(request, "jobId")

	rounds, err := handler.repo.Repair(request.Context(), jobID)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("round orders repaired", zap.String("job_id", jobID), zap.Int("rounds", len(rounds)))
	utils.SuccessList(writer, "Round orders repaired successfully", rounds)
}
