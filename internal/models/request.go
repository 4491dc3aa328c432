package models

import (
	"fmt"
	"strings"
	"time"
)

func fieldError(code, field, reason string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: fmt.Sprintf("%s %s", field, reason),
		Details: []ValidationErrorDetail{{Field: field, Reason: reason}},
	}
}

type CreateRoundRequest struct {
	Name        string     `json:"roundName"`
	Description string     `json:"description"`
	Type        RoundType  `json:"type"`
	Location    string     `json:"roundLocation"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// implements the Validator interface
func (r *CreateRoundRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fieldError("missing_round_name", "roundName", "is required")
	}
	if r.Type == "" {
		return fieldError("missing_round_type", "type", "is required")
	}
	if !r.Type.IsValid() {
		return fieldError("invalid_round_type", "type", "must be one of test, interview, assignment, group_discussion, hr")
	}
	return nil
}

type UpdateRoundRequest struct {
	Name        *string      `json:"roundName"`
	Description *string      `json:"description"`
	Type        *RoundType   `json:"type"`
	Status      *RoundStatus `json:"status"`
	Location    *string      `json:"roundLocation"`
	ScheduledAt *time.Time   `json:"scheduledAt"`
}

func (r *UpdateRoundRequest) Validate() error {
	if r.Name == nil && r.Description == nil && r.Type == nil && r.Status == nil && r.Location == nil && r.ScheduledAt == nil {
		return &ErrorResponse{Code: "empty_update", Message: "at least one field must be provided"}
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return fieldError("invalid_round_name", "roundName", "must not be empty")
		}
		r.Name = &trimmed
	}
	if r.Type != nil && !r.Type.IsValid() {
		return fieldError("invalid_round_type", "type", "must be one of test, interview, assignment, group_discussion, hr")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fieldError("invalid_round_status", "status", "must be one of active, completed, skipped")
	}
	return nil
}

func (r *UpdateRoundRequest) Patch() RoundPatch {
	return RoundPatch{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Status:      r.Status,
		Location:    r.Location,
		ScheduledAt: r.ScheduledAt,
	}
}

type ReorderRoundsRequest struct {
	Rounds []RoundOrder `json:"rounds"`
}

// Validate rejects malformed reorder lists before anything touches storage.
func (r *ReorderRoundsRequest) Validate() error {
	if len(r.Rounds) == 0 {
		return fieldError("empty_reorder", "rounds", "must contain at least one entry")
	}
	seenOrders := make(map[int]bool, len(r.Rounds))
	seenIDs := make(map[string]bool, len(r.Rounds))
	for i, entry := range r.Rounds {
		field := fmt.Sprintf("rounds[%d]", i)
		if strings.TrimSpace(entry.RoundID) == "" {
			return fieldError("missing_round_id", field+".roundId", "is required")
		}
		if entry.NewOrder < 1 {
			return fieldError("invalid_order", field+".newOrder", "must be a positive integer")
		}
		if seenIDs[entry.RoundID] {
			return fieldError("duplicate_round_id", field+".roundId", "appears more than once")
		}
		if seenOrders[entry.NewOrder] {
			return fieldError("duplicate_order", field+".newOrder", "appears more than once")
		}
		seenIDs[entry.RoundID] = true
		seenOrders[entry.NewOrder] = true
	}
	return nil
}

type ScheduleInterviewRequest struct {
	ApplicationID string        `json:"applicationId"`
	JobID         string        `json:"jobId"`
	CandidateID   string        `json:"candidateId"`
	InterviewerID string        `json:"interviewerId"`
	StartTime     *time.Time    `json:"startTime"`
	EndTime       *time.Time    `json:"endTime"`
	Mode          InterviewMode `json:"mode"`
	Location      string        `json:"location"`
	Notes         string        `json:"notes"`
}

func (r *ScheduleInterviewRequest) Validate() error {
	if strings.TrimSpace(r.ApplicationID) == "" {
		return fieldError("missing_application", "applicationId", "is required")
	}
	if strings.TrimSpace(r.CandidateID) == "" {
		return fieldError("missing_candidate", "candidateId", "is required")
	}
	if r.StartTime == nil || r.StartTime.IsZero() {
		return fieldError("missing_start_time", "startTime", "is required")
	}
	if r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		return fieldError("invalid_time_range", "endTime", "must be after startTime")
	}
	if r.Mode == "" {
		r.Mode = InterviewOnline
	}
	if !r.Mode.IsValid() {
		return fieldError("invalid_mode", "mode", "must be online or offline")
	}
	return nil
}

// Interview builds the record to schedule, defaulting the end to one hour
// after the start.
func (r *ScheduleInterviewRequest) Interview() *Interview {
	start := r.StartTime.UTC()
	end := start.Add(DefaultInterviewDuration)
	if r.EndTime != nil {
		end = r.EndTime.UTC()
	}
	return &Interview{
		ApplicationID: r.ApplicationID,
		JobID:         r.JobID,
		CandidateID:   r.CandidateID,
		InterviewerID: r.InterviewerID,
		StartTime:     start,
		EndTime:       end,
		Mode:          r.Mode,
		Location:      r.Location,
		Status:        InterviewScheduled,
		Notes:         r.Notes,
	}
}

type UpdateInterviewRequest struct {
	StartTime *time.Time       `json:"startTime"`
	EndTime   *time.Time       `json:"endTime"`
	Status    *InterviewStatus `json:"status"`
	Mode      *InterviewMode   `json:"mode"`
	Location  *string          `json:"location"`
	Notes     *string          `json:"notes"`
}

func (r *UpdateInterviewRequest) Validate() error {
	if r.StartTime == nil && r.EndTime == nil && r.Status == nil && r.Mode == nil && r.Location == nil && r.Notes == nil {
		return &ErrorResponse{Code: "empty_update", Message: "at least one field must be provided"}
	}
	if r.StartTime != nil && r.EndTime != nil && !r.EndTime.After(*r.StartTime) {
		return fieldError("invalid_time_range", "endTime", "must be after startTime")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fieldError("invalid_status", "status", "must be one of scheduled, completed, cancelled, no_show")
	}
	if r.Mode != nil && !r.Mode.IsValid() {
		return fieldError("invalid_mode", "mode", "must be online or offline")
	}
	return nil
}

func (r *UpdateInterviewRequest) Patch() InterviewPatch {
	p := InterviewPatch{
		Status:   r.Status,
		Mode:     r.Mode,
		Location: r.Location,
		Notes:    r.Notes,
	}
	if r.StartTime != nil {
		start := r.StartTime.UTC()
		p.StartTime = &start
	}
	if r.EndTime != nil {
		end := r.EndTime.UTC()
		p.EndTime = &end
	}
	return p
}

type CreateCompanyRequest struct {
	Name        string `json:"name"`
	CompanyCode string `json:"companyCode"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

func (r *CreateCompanyRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.CompanyCode = strings.ToUpper(strings.TrimSpace(r.CompanyCode))
	if r.Name == "" {
		return fieldError("missing_name", "name", "is required")
	}
	if r.CompanyCode == "" {
		return fieldError("missing_company_code", "companyCode", "is required")
	}
	return nil
}

type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
}

func (r *UpdateCompanyRequest) Validate() error {
	if r.Name == nil && r.Website == nil && r.Description == nil {
		return &ErrorResponse{Code: "empty_update", Message: "at least one field must be provided"}
	}
	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		if trimmed == "" {
			return fieldError("invalid_name", "name", "must not be empty")
		}
		r.Name = &trimmed
	}
	return nil
}

func (r *UpdateCompanyRequest) Patch() CompanyPatch {
	return CompanyPatch{Name: r.Name, Website: r.Website, Description: r.Description}
}

type CreateJobRequest struct {
	Title       string    `json:"title"`
	CompanyID   string    `json:"company"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Type        JobType   `json:"type"`
	Status      JobStatus `json:"status"`
}

func (r *CreateJobRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return fieldError("missing_title", "title", "is required")
	}
	if strings.TrimSpace(r.CompanyID) == "" {
		return fieldError("missing_company", "company", "is required")
	}
	if r.Type != "" && !r.Type.IsValid() {
		return fieldError("invalid_job_type", "type", "must be one of full_time, part_time, intern, contract")
	}
	if r.Status != "" && !r.Status.IsValid() {
		return fieldError("invalid_job_status", "status", "must be one of draft, open, closed, archived")
	}
	return nil
}

type UpdateJobRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Type        *JobType   `json:"type"`
	Status      *JobStatus `json:"status"`
}

func (r *UpdateJobRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Location == nil && r.Type == nil && r.Status == nil {
		return &ErrorResponse{Code: "empty_update", Message: "at least one field must be provided"}
	}
	if r.Title != nil {
		trimmed := strings.TrimSpace(*r.Title)
		if trimmed == "" {
			return fieldError("invalid_title", "title", "must not be empty")
		}
		r.Title = &trimmed
	}
	if r.Type != nil && !r.Type.IsValid() {
		return fieldError("invalid_job_type", "type", "must be one of full_time, part_time, intern, contract")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fieldError("invalid_job_status", "status", "must be one of draft, open, closed, archived")
	}
	return nil
}

func (r *UpdateJobRequest) Patch() JobPatch {
	return JobPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Type:        r.Type,
		Status:      r.Status,
	}
}

type ApplyRequest struct {
	StudentID   string `json:"studentId"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

// StudentID may be left empty when the caller identity supplies it.
func (r *ApplyRequest) Validate() error {
	r.StudentID = strings.TrimSpace(r.StudentID)
	return nil
}
