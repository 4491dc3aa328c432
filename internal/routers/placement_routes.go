package routers

import (
	"novusarc/placement/internal/handlers"
	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"

	"github.com/go-chi/chi/v5"
)

func RoundRoutes(r *chi.Mux, roundHandler *handlers.RoundHandler) {
	r.Route("/api/jobs/{jobId}/rounds", func(r chi.Router) {
		r.Get("/", roundHandler.GetRoundsHandler)
		r.With(middleware.ValidateRequest[*models.CreateRoundRequest]()).Post("/create", roundHandler.CreateRoundHandler)
		r.With(middleware.ValidateRequest[*models.ReorderRoundsRequest]()).Put("/reorder", roundHandler.ReorderRoundsHandler)
		r.Post("/repair", roundHandler.RepairRoundsHandler)

		r.Get("/{id}", roundHandler.GetRoundHandler)
		r.With(middleware.ValidateRequest[*models.UpdateRoundRequest]()).Put("/{id}", roundHandler.UpdateRoundHandler)
		r.Delete("/{id}", roundHandler.DeleteRoundHandler)
	})
}

func InterviewRoutes(r *chi.Mux, interviewHandler *handlers.InterviewHandler) {
	r.Route("/api/interviews", func(r chi.Router) {
		r.Get("/", interviewHandler.GetInterviewsHandler)
		r.With(middleware.ValidateRequest[*models.ScheduleInterviewRequest]()).Post("/schedule", interviewHandler.ScheduleInterviewHandler)
		r.Get("/{id}", interviewHandler.GetInterviewHandler)
		r.With(middleware.ValidateRequest[*models.UpdateInterviewRequest]()).Patch("/{id}", interviewHandler.UpdateInterviewHandler)
	})
}

func CompanyRoutes(r *chi.Mux, companyHandler *handlers.CompanyHandler) {
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", companyHandler.GetCompaniesHandler)
		r.With(middleware.ValidateRequest[*models.CreateCompanyRequest]()).Post("/", companyHandler.CreateCompanyHandler)
		r.Get("/{id}", companyHandler.GetCompanyHandler)
		r.With(middleware.ValidateRequest[*models.UpdateCompanyRequest]()).Put("/{id}", companyHandler.UpdateCompanyHandler)
		r.Delete("/{id}", companyHandler.DeleteCompanyHandler)
		r.Post("/{id}/restore", companyHandler.RestoreCompanyHandler)
	})
}

func JobRoutes(r *chi.Mux, jobHandler *handlers.JobHandler) {
	r.Route("/api/jobs", func(r chi.Router) {
		r.Get("/", jobHandler.GetJobsHandler)
		r.With(middleware.ValidateRequest[*models.CreateJobRequest]()).Post("/create", jobHandler.CreateJobHandler)
		r.Get("/{id}", jobHandler.GetJobHandler)
		r.With(middleware.ValidateRequest[*models.UpdateJobRequest]()).Put("/{id}", jobHandler.UpdateJobHandler)
		r.Post("/{id}/close", jobHandler.CloseJobHandler)
	})
}

func ApplicationRoutes(r *chi.Mux, applicationHandler *handlers.ApplicationHandler) {
	r.Route("/api/applications", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.ApplyRequest]()).Post("/{jobId}/apply", applicationHandler.ApplyHandler)
		r.Get("/{id}", applicationHandler.GetApplicationHandler)
	})
}
