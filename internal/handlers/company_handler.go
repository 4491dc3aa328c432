package handlers

import (
	"net/http"

	"novusarc/placement/internal/middleware"
	"novusarc/placement/internal/models"
	"novusarc/placement/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	repo   CompanyRepository
	logger *zap.Logger
}

func NewCompanyHandler(repo CompanyRepository, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{repo: repo, logger: logger}
}

func (handler *CompanyHandler) CreateCompanyHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.CreateCompanyRequest](request)

	company, err := handler.repo.Create(request.Context(), &models.Company{
		Name:        req.Name,
		CompanyCode: req.CompanyCode,
		Website:     req.Website,
		Description: req.Description,
		IsActive:    true,
		CreatedBy:   middleware.ActorFrom(request.Context()),
	})
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("company created",
		zap.String("company_id", company.ID),
		zap.String("code", company.CompanyCodeNovusarc))
	utils.Success(writer, http.StatusCreated, "Company created successfully", company)
}

func (handler *CompanyHandler) GetCompaniesHandler(writer http.ResponseWriter, request *http.Request) {
	page, limit, errResp := parsePagination(request)
	if errResp != nil {
		utils.JSON(writer, http.StatusBadRequest, errResp)
		return
	}

	companies, total, err := handler.repo.List(request.Context(), request.URL.Query().Get("search"), page, limit)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Companies fetched successfully", models.NewPageResponse(companies, page, limit, total))
}

func (handler *CompanyHandler) GetCompanyHandler(writer http.ResponseWriter, request *http.Request) {
	company, err := handler.repo.GetByID(request.Context(), chi.URLParam(request, "id"))
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	utils.Success(writer, http.StatusOK, "Company fetched successfully", company)
}

// UpdateCompanyHandler edits name, website or description. Codes are fixed.
func (handler *CompanyHandler) UpdateCompanyHandler(writer http.ResponseWriter, request *http.Request) {
	req := middleware.GetValidatedRequest[*models.UpdateCompanyRequest](request)
	id := chi.URLParam(request, "id")

	company, err := handler.repo.Update(request.Context(), id, req.Patch())
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("company updated", zap.String("company_id", id))
	utils.Success(writer, http.StatusOK, "Company updated successfully", company)
}

// DeleteCompanyHandler deactivates the company. Its jobs and codes stay.
func (handler *CompanyHandler) DeleteCompanyHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	if _, err := handler.repo.SetActive(request.Context(), id, false); err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("company deactivated", zap.String("company_id", id))
	utils.Success(writer, http.StatusOK, "Company deleted successfully", nil)
}

func (handler *CompanyHandler) RestoreCompanyHandler(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")
	company, err := handler.repo.SetActive(request.Context(), id, true)
	if err != nil {
		writeError(writer, handler.logger, err)
		return
	}
	handler.logger.Info("company restored", zap.String("company_id", id))
	utils.Success(writer, http.StatusOK, "Company restored successfully", company)
}
