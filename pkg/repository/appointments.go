package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type appointmentsRepository struct {
	db *sql.DB
}

func NewAppointmentsRepository(db *sql.DB) *appointmentsRepository {
	return &appointmentsRepository{db: db}
}

func (r *appointmentsRepository) Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	const query = `
		INSERT INTO appointments (user_id, doctor_id, specialization, date, time, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	doctorID := sql.NullInt64{Int64: appt.DoctorID, Valid: appt.DoctorID != 0}

	if err := r.db.QueryRowContext(ctx, query,
		appt.UserID, doctorID, appt.Specialization, appt.Date, appt.Time, appt.Reason, appt.Status, appt.CreatedAt,
	).Scan(&appt.ID); err != nil {
		return domain.Appointment{}, fmt.Errorf("inserting appointment: %w", err)
	}

	return appt, nil
}

// ListByUser returns the user's appointments, most recent date first.
func (r *appointmentsRepository) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	const query = `
		SELECT id, user_id, doctor_id, specialization, date, time, reason, status, created_at
		FROM appointments
		WHERE user_id = $1
		ORDER BY date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching appointments: %w", err)
	}
	defer rows.Close()

	var appointments []domain.Appointment
	for rows.Next() {
		var appt domain.Appointment
		var doctorID sql.NullInt64
		if err := rows.Scan(&appt.ID, &appt.UserID, &doctorID, &appt.Specialization,
			&appt.Date, &appt.Time, &appt.Reason, &appt.Status, &appt.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		appt.DoctorID = doctorID.Int64
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointments: %w", err)
	}

	return appointments, nil
}
