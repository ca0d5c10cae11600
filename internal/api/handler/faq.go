package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onthegorentals/onthego/internal/api/response"
	"github.com/onthegorentals/onthego/internal/api/validation"
	"github.com/onthegorentals/onthego/internal/faq"
)

type faqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type faqResponse struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func newFAQResponse(f *faq.FAQ) faqResponse {
	return faqResponse{
		ID:       f.ID.String(),
		Question: f.Question,
		Answer:   f.Answer,
	}
}

// FAQHandler handles the help-center FAQ endpoints.
type FAQHandler struct {
	repo faq.Repository
}

// NewFAQHandler creates a new FAQHandler.
func NewFAQHandler(repo faq.Repository) *FAQHandler {
	return &FAQHandler{repo: repo}
}

// List handles GET /api/faqs.
func (h *FAQHandler) List(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list faqs", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to list FAQs")
		return
	}

	items := make([]faqResponse, 0, len(faqs))
	for i := range faqs {
		items = append(items, newFAQResponse(&faqs[i]))
	}

	response.Success(w, http.StatusOK, items)
}

// Create handles POST /api/admin/faqs.
func (h *FAQHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	f := &faq.FAQ{Question: req.Question, Answer: req.Answer}
	if err := h.repo.Create(r.Context(), f); err != nil {
		slog.Error("failed to create faq", "error", err)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to create FAQ")
		return
	}

	response.Success(w, http.StatusCreated, newFAQResponse(f))
}

// Update handles PUT /api/admin/faqs/{id}.
func (h *FAQHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	f := &faq.FAQ{ID: id, Question: req.Question, Answer: req.Answer}
	if err := h.repo.Update(r.Context(), f); err != nil {
		if errors.Is(err, faq.ErrFAQNotFound) {
			response.FailMessage(w, http.StatusNotFound, "FAQ not found")
			return
		}
		slog.Error("failed to update faq", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to update FAQ")
		return
	}

	response.Success(w, http.StatusOK, newFAQResponse(f))
}

// Delete handles DELETE /api/admin/faqs/{id}.
func (h *FAQHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Fail(w, http.StatusBadRequest, response.Error{Field: "id", Message: "id must be a valid UUID"})
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, faq.ErrFAQNotFound) {
			response.FailMessage(w, http.StatusNotFound, "FAQ not found")
			return
		}
		slog.Error("failed to delete faq", "error", err, "id", id)
		response.FailMessage(w, http.StatusInternalServerError, "Failed to delete FAQ")
		return
	}

	response.NoContent(w)
}

func (h *FAQHandler) decode(w http.ResponseWriter, r *http.Request) (*faqRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req faqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.FailMessage(w, http.StatusBadRequest, "Request body must be valid JSON")
		return nil, false
	}

	errs := validation.ValidateFAQRequest(validation.FAQRequest{
		Question: req.Question,
		Answer:   req.Answer,
	})
	if len(errs) > 0 {
		response.Fail(w, http.StatusBadRequest, fieldErrors(errs)...)
		return nil, false
	}

	return &req, true
}
