package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nourivox/nourivox-backend/pkg/api/response"
	"github.com/nourivox/nourivox-backend/pkg/domain"
	"github.com/nourivox/nourivox-backend/pkg/logger"
)

type RemindersRepository interface {
	Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error)
	ListByUser(ctx context.Context, userID, fromDate string) ([]domain.Reminder, error)
}

type reminders struct {
	repo   RemindersRepository
	writer response.JSONResponseWriter
}

func NewReminders(repo RemindersRepository) *reminders {
	return &reminders{repo: repo}
}

type reminderRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Date    string `json:"date,omitempty"`
}

func (h *reminders) Create(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UserID == "" || req.Message == "" || req.Time == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "user_id, message and time are required.")
		return
	}

	reminder, err := h.repo.Create(r.Context(), domain.Reminder{
		UserID:    req.UserID,
		Message:   req.Message,
		Time:      req.Time,
		Date:      req.Date,
		Status:    domain.ReminderStatusActive,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Creating reminder", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create reminder.")
		return
	}

	h.writer.WriteJSONResponse(w, http.StatusCreated, reminder)
}

// ListByUser returns reminders dated today or later, plus undated daily ones.
func (h *reminders) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	today := time.Now().Format(time.DateOnly)

	list, err := h.repo.ListByUser(r.Context(), userID, today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Listing reminders", logger.Err(err))
		h.writer.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch reminders.")
		return
	}
	if list == nil {
		list = []domain.Reminder{}
	}

	h.writer.WriteSuccessResponse(w, list)
}
