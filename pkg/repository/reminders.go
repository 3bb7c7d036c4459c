package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type remindersRepository struct {
	db *sql.DB
}

func NewRemindersRepository(db *sql.DB) *remindersRepository {
	return &remindersRepository{db: db}
}

func (r *remindersRepository) Create(ctx context.Context, reminder domain.Reminder) (domain.Reminder, error) {
	const query = `
		INSERT INTO reminders (user_id, message, time, date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	date := sql.NullString{String: reminder.Date, Valid: reminder.Date != ""}

	if err := r.db.QueryRowContext(ctx, query,
		reminder.UserID, reminder.Message, reminder.Time, date, reminder.Status, reminder.CreatedAt,
	).Scan(&reminder.ID); err != nil {
		return domain.Reminder{}, fmt.Errorf("inserting reminder: %w", err)
	}

	return reminder, nil
}

// ListByUser returns reminders dated today or later plus undated daily
// reminders, ordered by time of day. Dates are ISO strings so the comparison
// against fromDate is lexicographic.
func (r *remindersRepository) ListByUser(ctx context.Context, userID, fromDate string) ([]domain.Reminder, error) {
	const query = `
		SELECT id, user_id, message, time, date, status, created_at
		FROM reminders
		WHERE user_id = $1 AND (date IS NULL OR date >= $2)
		ORDER BY time ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("fetching reminders: %w", err)
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		var reminder domain.Reminder
		var date sql.NullString
		if err := rows.Scan(&reminder.ID, &reminder.UserID, &reminder.Message,
			&reminder.Time, &date, &reminder.Status, &reminder.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning reminder: %w", err)
		}
		reminder.Date = date.String
		reminders = append(reminders, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reminders: %w", err)
	}

	return reminders, nil
}
