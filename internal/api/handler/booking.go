package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/middleware"
	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/auth"
	"github.com/onthegorentals/onthego/internal/booking"
	"github.com/onthegorentals/onthego/internal/car"
	"github.com/onthegorentals/onthego/internal/insurance"
)

type createBookingRequest struct {
	CarID           string `json:"carId"`
	InsurancePlanID string `json:"insurancePlanId"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
}

type bookingResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"userId"`
	UserEmail       string  `json:"userEmail"`
	CarID           string  `json:"carId"`
	InsurancePlanID *string `json:"insurancePlanId,omitempty"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	Status          string  `json:"status"`
	TotalPrice      float64 `json:"totalPrice"`
	CreatedAt       string  `json:"createdAt"`
}

func newBookingResponse(b *booking.Booking) bookingResponse {
	resp := bookingResponse{
		ID:         b.ID.String(),
		UserID:     b.UserPublicID.String(),
		UserEmail:  b.UserEmail,
		CarID:      b.CarID.String(),
		StartDate:  b.StartDate.Format(validation.DateLayout),
		EndDate:    b.EndDate.Format(validation.DateLayout),
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt.UTC().Format(timeFormat),
	}
	if b.InsurancePlanID != nil {
		id := b.InsurancePlanID.String()
		resp.InsurancePlanID = &id
	}
	return resp
}

// BookingHandler handles the booking endpoints.
type BookingHandler struct {
	bookingRepo   booking.Repository
	carRepo       car.Repository
	insuranceRepo insurance.Repository
	userRepo      auth.UserRepository
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingRepo booking.Repository, carRepo car.Repository, insuranceRepo insurance.Repository, userRepo auth.UserRepository) *BookingHandler {
	return &BookingHandler{
		bookingRepo:   bookingRepo,
		carRepo:       carRepo,
		insuranceRepo: insuranceRepo,
		userRepo:      userRepo,
	}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return
	}

	start, end, errs := validation.ValidateCreateBookingRequest(validation.CreateBookingRequest{
		CarID:           req.CarID,
		InsurancePlanID: req.InsurancePlanID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}, time.Now().UTC())
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return
	}

	u, err := h.userRepo.GetByPublicID(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to resolve booking user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	carID, _ := uuid.Parse(req.CarID) // already validated
	c, err := h.carRepo.GetByID(r.Context(), carID)
	if err != nil {
		if errors.Is(err, car.ErrCarNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Car not found")
			return
		}
		slog.Error("failed to get car", "error", err, "id", carID)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}
	if !c.Available {
		response.Fail(w, http.StatusConflict, response.Error{Field: "carId", Message: "car is not available for booking"})
		return
	}

	b := &booking.Booking{
		UserID:    u.ID,
		CarID:     c.ID,
		StartDate: start,
		EndDate:   end,
		Status:    booking.StatusPending,
	}

	dailyRate := c.PricePerDay
	if req.InsurancePlanID != "" {
		planID, _ := uuid.Parse(req.InsurancePlanID) // already validated
		plan, err := h.insuranceRepo.GetByID(r.Context(), planID)
		if err != nil {
			if errors.Is(err, insurance.ErrPlanNotFound) {
				response.FailMessage(w, http.StatusNotFound, "Insurance plan not found")
				return
			}
			slog.Error("failed to get insurance plan", "error", err, "id", planID)
			response.FailMessage(w, http.StatusInternalServerError, "Failed to create booking")
			return
		}
		b.InsurancePlanID = &plan.ID
		dailyRate += plan.DailyRate
	}

	b.TotalPrice = float64(b.Days()) * dailyRate

	if err := h.bookingRepo.Create(r.Context(), b); err != nil {
		if errors.Is(err, booking.ErrBookingOverlap) {
			response.Fail(w, http.StatusConflict, response.Error{Field: "startDate", Message: "car already booked for these dates"})
			return
		}
		slog.Error("failed to create booking", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	b.UserPublicID = u.PublicID
	b.UserEmail = u.Email

	response.Success(w, http.StatusCreated, newBookingResponse(b))
}

// ListMine handles GET /api/bookings.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
		return
	}

	u, err := h.userRepo.GetByPublicID(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to resolve booking user", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	bookings, err := h.bookingRepo.ListByUser(r.Context(), u.ID)
	if err != nil {
		slog.Error("failed to list bookings", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	h.writeList(w, bookings)
}

// ListAll handles GET /api/admin/bookings.
func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingRepo.List(r.Context())
	if err != nil {
		slog.Error("failed to list bookings", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list bookings")
		return
	}

	h.writeList(w, bookings)
}

// Cancel handles POST /api/bookings/{id}/cancel. Owners may cancel
// their own bookings; admins may cancel any. Cancelling a cancelled
// booking is a no-op.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.FailMessage(w, http.StatusUnauthorized, "Bearer token is required")
		return
	}

	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	isAdmin := identity.HasRole(auth.RoleAdmin) || identity.HasRole(auth.RoleSuperAdmin)
	if b.UserPublicID != identity.UserID && !isAdmin {
		response.FailMessage(w, http.StatusForbidden, "Insufficient permissions")
		return
	}

	if b.Status == booking.StatusCancelled {
		response.Success(w, http.StatusOK, newBookingResponse(b))
		return
	}

	updated, err := h.bookingRepo.UpdateStatus(r.Context(), b.ID, booking.StatusCancelled)
	if err != nil {
		slog.Error("failed to cancel booking", "error", err, "id", b.ID)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to cancel booking")
		return
	}

	response.Success(w, http.StatusOK, newBookingResponse(updated))
}

// Confirm handles POST /api/admin/bookings/{id}/confirm.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	b, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if b.Status == booking.StatusCancelled {
		response.FailMessage(w, http.StatusConflict, "Cannot confirm a cancelled booking")
		return
	}
	if b.Status == booking.StatusConfirmed {
		response.Success(w, http.StatusOK, newBookingResponse(b))
		return
	}

	updated, err := h.bookingRepo.UpdateStatus(r.Context(), b.ID, booking.StatusConfirmed)
	if err != nil {
		slog.Error("failed to confirm booking", "error", err, "id", b.ID)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to confirm booking")
		return
	}

	response.Success(w, http.StatusOK, newBookingResponse(updated))
}

func (h *BookingHandler) lookup(w http.ResponseWriter, r *http.Request) (*booking.Booking, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return nil, false
	}

	b, err := h.bookingRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			response.FailMessage(w, http.StatusNotFound, "Booking not found")
			return nil, false
		}
		slog.Error("failed to get booking", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to get booking")
		return nil, false
	}

	return b, true
}

func (h *BookingHandler) writeList(w http.ResponseWriter, bookings []booking.Booking) {
	items := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, newBookingResponse(&bookings[i]))
	}
	response.Success(w, http.StatusOK, items)
}
