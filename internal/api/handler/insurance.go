package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/insurance"
)

type createPlanRequest struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DailyRate      float64 `json:"dailyRate"`
	CoverageAmount float64 `json:"coverageAmount"`
}

type planResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	DailyRate      float64 `json:"dailyRate"`
	CoverageAmount float64 `json:"coverageAmount"`
}

func newPlanResponse(p *insurance.Plan) planResponse {
	return planResponse{
		ID:             p.ID.String(),
		Name:           p.Name,
		Description:    p.Description,
		DailyRate:      p.DailyRate,
		CoverageAmount: p.CoverageAmount,
	}
}

// InsuranceHandler handles the insurance plan endpoints.
type InsuranceHandler struct {
	repo insurance.Repository
}

// NewInsuranceHandler creates a new InsuranceHandler.
func NewInsuranceHandler(repo insurance.Repository) *InsuranceHandler {
	return &InsuranceHandler{repo: repo}
}

// List handles GET /api/insurance-plans.
func (h *InsuranceHandler) List(w http.ResponseWriter, r *http.Request) {
	plans, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list insurance plans", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list insurance plans")
		return
	}

	items := make([]planResponse, 0, len(plans))
	for i := range plans {
		items = append(items, newPlanResponse(&plans[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /api/insurance-plans/{id}.
func (h *InsuranceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, insurance.ErrPlanNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Insurance plan not found")
			return
		}
		slog.Error("failed to get insurance plan", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to get insurance plan")
		return
	}

	response.Success(w, http.StatusOK, newPlanResponse(p))
}

// Create handles POST /api/admin/insurance-plans.
func (h *InsuranceHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	errs := validation.ValidateCreatePlanRequest(validation.CreatePlanRequest{
		Name:           req.Name,
		DailyRate:      req.DailyRate,
		CoverageAmount: req.CoverageAmount,
	})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	p := &insurance.Plan{
		Name:           strings.TrimSpace(req.Name),
		Description:    strings.TrimSpace(req.Description),
		DailyRate:      req.DailyRate,
		CoverageAmount: req.CoverageAmount,
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, insurance.ErrDuplicatePlanName) {
			response.Fail(w, http.StatusConflict, response.Error{Field: "name", Message: "insurance plan name already exists"})
			return
		}
		slog.Error("failed to create insurance plan", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create insurance plan")
		return
	}

	response.Success(w, http.StatusCreated, newPlanResponse(p))
}

// Delete handles DELETE /api/admin/insurance-plans/{id}.
func (h *InsuranceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, insurance.ErrPlanNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Insurance plan not found")
			return
		}
		slog.Error("failed to delete insurance plan", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to delete insurance plan")
		return
	}

	response.NoContent(w)
}
