package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

type DoctorsRepository interface {
	List(ctx context.Context, specialization string) ([]domain.Doctor, error)
	GetByID(ctx context.Context, id int64) (domain.Doctor, error)
}

type doctors struct {
	repo   DoctorsRepository
	writer response.JSONResponseWriter
}

func NewDoctors(repo DoctorsRepository) *doctors {
	return &doctors{repo: repo}
}

func (h *doctors) List(w http.ResponseWriter, r *http.Request) {
	specialization := r.URL.Query().Get("specialization")

	list, err := h.repo.List(r.Context(), specialization)
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing doctors", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch doctors.")
		return
	}
	if list == nil {
		list = []domain.Doctor{}
	}

	h.writer.WriteSuccessResponse(w, list)
}

func (h *doctors) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "doctorID"), 10, 64)
	if err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid doctor id.")
		return
	}

	doctor, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writer.WriteErrorResponse(w, http.StatusNotFound, "Doctor not found.")
			return
		}
		slog.ErrorContext(r.Context(), "Fetching doctor", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch doctor.")
		return
	}

	h.writer.WriteSuccessResponse(w, doctor)
}
