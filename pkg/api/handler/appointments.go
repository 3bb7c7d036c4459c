package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

type AppointmentService interface {
	Book(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
}

type appointments struct {
	service AppointmentService
	writer  response.JSONResponseWriter
}

func NewAppointments(service AppointmentService) *appointments {
	return &appointments{service: service}
}

type appointmentRequest struct {
	UserID         string `json:"user_id"`
	DoctorID       int64  `json:"doctor_id,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Reason         string `json:"reason,omitempty"`
}

func (h *appointments) Create(w http.ResponseWriter, r *http.Request) {
	var req appointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID == "" || req.Date == "" || req.Time == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "user_id, date and time are required.")
		return
	}

	appt, err := h.service.Book(r.Context(), domain.Appointment{
		UserID:         req.UserID,
		DoctorID:       req.DoctorID,
		Specialization: req.Specialization,
		Date:           req.Date,
		Time:           req.Time,
		Reason:         req.Reason,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.writer.WriteErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Booking appointment", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create appointment.")
		return
	}

	h.writer.WriteJSONResponse(w, http.StatusCreated, appt)
}

func (h *appointments) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	appts, err := h.service.ListByUser(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing appointments", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch appointments.")
		return
	}
	if appts == nil {
		appts = []domain.Appointment{}
	}

	h.writer.WriteSuccessResponse(w, appts)
}
