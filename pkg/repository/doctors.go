package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type doctorsRepository struct {
	db *sql.DB
}

func NewDoctorsRepository(db *sql.DB) *doctorsRepository {
	return &doctorsRepository{db: db}
}

// List returns all doctors, or only those matching the specialization when
// it is non-empty.
func (r *doctorsRepository) List(ctx context.Context, specialization string) ([]domain.Doctor, error) {
	query := `
		SELECT id, name, specialization, contact, email
		FROM doctors
	`
	var args []any
	if specialization != "" {
		query += ` WHERE specialization = $1`
		args = append(args, specialization)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching doctors: %w", err)
	}
	defer rows.Close()

	var doctors []domain.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating doctors: %w", err)
	}

	return doctors, nil
}

func (r *doctorsRepository) GetByID(ctx context.Context, id int64) (domain.Doctor, error) {
	const query = `
		SELECT id, name, specialization, contact, email
		FROM doctors
		WHERE id = $1
	`

	doctor, err := scanDoctor(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Doctor{}, domain.ErrNotFound
		}
		return domain.Doctor{}, err
	}

	return doctor, nil
}

func scanDoctor(scan func(dest ...any) error) (domain.Doctor, error) {
	var doctor domain.Doctor
	var contact, email sql.NullString
	if err := scan(&doctor.ID, &doctor.Name, &doctor.Specialization, &contact, &email); err != nil {
		return domain.Doctor{}, fmt.Errorf("scanning doctor: %w", err)
	}
	doctor.Contact = contact.String
	doctor.Email = email.String
	return doctor, nil
}
