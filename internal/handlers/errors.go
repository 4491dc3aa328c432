package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"novusarc/placement/internal/locks"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/repositories"
	"novusarc/placement/internal/utils"

	"go.uber.org/zap"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// first match wins
var errorMappings = []errorMapping{
	{repositories.ErrCompanyNotFound, http.StatusNotFound, "company_not_found"},
	{repositories.ErrJobNotFound, http.StatusNotFound, "job_not_found"},
	{repositories.ErrApplicationNotFound, http.StatusNotFound, "application_not_found"},
	{repositories.ErrRoundNotFound, http.StatusNotFound, "round_not_found"},
	{repositories.ErrInterviewNotFound, http.StatusNotFound, "interview_not_found"},

	{repositories.ErrDuplicateCompanyName, http.StatusConflict, "duplicate_company_name"},
	{repositories.ErrDuplicateCompanyCode, http.StatusConflict, "duplicate_company_code"},
	{repositories.ErrDuplicateJobTitle, http.StatusConflict, "duplicate_job_title"},
	{repositories.ErrDuplicateApplication, http.StatusConflict, "duplicate_application"},
	{repositories.ErrDuplicateRoundName, http.StatusConflict, "duplicate_round_name"},
	{repositories.ErrOrderCollision, http.StatusConflict, "order_collision"},
	{repositories.ErrScheduleConflict, http.StatusConflict, "schedule_conflict"},

	{repositories.ErrInvalidReorder, http.StatusBadRequest, "invalid_reorder"},
	{repositories.ErrRoundNotInJob, http.StatusBadRequest, "round_not_in_job"},
	{repositories.ErrOrderGap, http.StatusBadRequest, "order_gap"},
	{repositories.ErrInvalidStatusTransition, http.StatusBadRequest, "invalid_status_transition"},
	{repositories.ErrInvalidTimeRange, http.StatusBadRequest, "invalid_time_range"},
}

// writeError maps repository errors onto status codes. Anything unmapped
// is a 500 and gets logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			utils.JSON(w, m.status, models.ErrorResponse{Code: m.code, Message: err.Error()})
			return
		}
	}

	var errResp *models.ErrorResponse
	if errors.As(err, &errResp) {
		utils.JSON(w, http.StatusBadRequest, *errResp)
		return
	}

	switch {
	case errors.Is(err, repositories.ErrRenumberIncomplete):
		logger.Error("round renumbering incomplete", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "renumber_incomplete",
			Message: "Round was deleted but the remaining rounds could not be renumbered; run repair for this job",
		})
	case errors.Is(err, locks.ErrNotAcquired):
		logger.Warn("schedule lock not acquired", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "schedule_busy",
			Message: "Could not lock the candidate's schedule, please retry",
		})
	default:
		logger.Error("request failed", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "Internal server error",
		})
	}
}

// parsePagination reads page and limit query parameters. limit is capped at 100.
func parsePagination(request *http.Request) (page, limit int, errResp *models.ErrorResponse) {
	page, limit = 1, 10

	if pageStr := request.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			return 0, 0, &models.ErrorResponse{
				Code:    "invalid_page",
				Message: "page must be a positive integer",
			}
		}
		page = p
	}

	if limitStr := request.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 || l > 100 {
			return 0, 0, &models.ErrorResponse{
				Code:    "invalid_limit",
				Message: "limit must be a positive integer between 1 and 100",
			}
		}
		limit = l
	}
	return page, limit, nil
}
