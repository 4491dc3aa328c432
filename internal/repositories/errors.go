package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrRoundNotFound       = errors.New("round not found")
	ErrInterviewNotFound   = errors.New("interview not found")

	ErrDuplicateCompanyName = errors.New("company with this name already exists")
	ErrDuplicateCompanyCode = errors.New("company code already in use")
	ErrDuplicateJobTitle    = errors.New("job with this title already exists for the company")
	ErrDuplicateApplication = errors.New("student has already applied to this job")
	ErrDuplicateRoundName   = errors.New("round with this name already exists for the job")
	ErrOrderCollision       = errors.New("round order is already taken")
	ErrScheduleConflict     = errors.New("candidate already has an interview in this time slot")

	ErrInvalidReorder          = errors.New("invalid reorder request")
	ErrRoundNotInJob           = errors.New("round does not belong to this job")
	ErrOrderGap                = errors.New("round orders would not be contiguous")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidTimeRange        = errors.New("end time must be after start time")

	ErrRenumberIncomplete = errors.New("round deleted but renumbering did not finish")
	ErrSequenceAllocation = errors.New("sequence allocation failed")
)

// isUniqueViolation recognises duplicate-key failures from either the
// translated gorm error or the raw driver message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
