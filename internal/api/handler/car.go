package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/car"
)

type createCarRequest struct {
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	PriceGroup   string  `json:"priceGroup"`
	LicensePlate string  `json:"licensePlate"`
	PricePerDay  float64 `json:"pricePerDay"`
}

type updateCarRequest struct {
	Make        *string  `json:"make"`
	Model       *string  `json:"model"`
	Year        *int     `json:"year"`
	Category    *string  `json:"category"`
	PriceGroup  *string  `json:"priceGroup"`
	PricePerDay *float64 `json:"pricePerDay"`
	Available   *bool    `json:"available"`
}

type carResponse struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Category     string  `json:"category"`
	PriceGroup   string  `json:"priceGroup"`
	LicensePlate string  `json:"licensePlate"`
	PricePerDay  float64 `json:"pricePerDay"`
	Available    bool    `json:"available"`
	CreatedAt    string  `json:"createdAt"`
}

func newCarResponse(c *car.Car) carResponse {
	return carResponse{
		ID:           c.ID.String(),
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Category:     c.Category,
		PriceGroup:   c.PriceGroup,
		LicensePlate: c.LicensePlate,
		PricePerDay:  c.PricePerDay,
		Available:    c.Available,
		CreatedAt:    c.CreatedAt.UTC().Format(timeFormat),
	}
}

// CarHandler handles the car fleet endpoints.
type CarHandler struct {
	repo car.Repository
}

// NewCarHandler creates a new CarHandler.
func NewCarHandler(repo car.Repository) *CarHandler {
	return &CarHandler{repo: repo}
}

// List handles GET /api/cars. Supports ?category= and ?available= filters.
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter car.ListFilter

	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		filter.Category = &category
	}
	if availableStr := r.URL.Query().Get("available"); availableStr != "" {
		available, err := strconv.ParseBool(availableStr)
		if err != nil {
			response.Fail(w, http.StatusBadRequest, response.Error{Field: "available", Message: "available must be a boolean"})
			return
		}
		filter.Available = &available
	}

	cars, err := h.repo.List(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list cars", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list cars")
		return
	}

	items := make([]carResponse, 0, len(cars))
	for i := range cars {
		items = append(items, newCarResponse(&cars[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// GetByID handles GET /api/cars/{id}.
func (h *CarHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, car.ErrCarNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Car not found")
			return
		}
		slog.Error("failed to get car", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to get car")
		return
	}

	response.Success(w, http.StatusOK, newCarResponse(c))
}

// Create handles POST /api/admin/cars.
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	errs := validation.ValidateCreateCarRequest(validation.CreateCarRequest{
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Category:     req.Category,
		PriceGroup:   req.PriceGroup,
		LicensePlate: req.LicensePlate,
		PricePerDay:  req.PricePerDay,
	})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	c := &car.Car{
		Make:         strings.TrimSpace(req.Make),
		Model:        strings.TrimSpace(req.Model),
		Year:         req.Year,
		Category:     req.Category,
		PriceGroup:   strings.TrimSpace(req.PriceGroup),
		LicensePlate: strings.TrimSpace(req.LicensePlate),
		PricePerDay:  req.PricePerDay,
		Available:    true,
	}

	if err := h.repo.Create(r.Context(), c); err != nil {
		if errors.Is(err, car.ErrDuplicatePlate) {
			response.Fail(w, http.StatusConflict, response.Error{Field: "licensePlate", Message: "license plate already exists"})
			return
		}
		slog.Error("failed to create car", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create car")
		return
	}

	response.Success(w, http.StatusCreated, newCarResponse(c))
}

// Update handles PATCH /api/admin/cars/{id}.
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	c, err := h.repo.Update(r.Context(), id, car.UpdateFields{
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Category:    req.Category,
		PriceGroup:  req.PriceGroup,
		PricePerDay: req.PricePerDay,
		Available:   req.Available,
	})
	if err != nil {
		if errors.Is(err, car.ErrCarNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Car not found")
			return
		}
		slog.Error("failed to update car", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to update car")
		return
	}

	response.Success(w, http.StatusOK, newCarResponse(c))
}

// Delete handles DELETE /api/admin/cars/{id}.
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, car.ErrCarNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Car not found")
			return
		}
		slog.Error("failed to delete car", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to delete car")
		return
	}

	response.NoContent(w)
}
