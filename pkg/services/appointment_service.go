package services

import (
	"context"
	"fmt"
	"time"

	"github.com/nourivox/nourivox-backend/pkg/domain"
)

type AppointmentsRepository interface {
	Create(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
}

type DoctorsRepository interface {
	List(ctx context.Context, specialization string) ([]domain.Doctor, error)
}

type appointmentService struct {
	appointmentsRepo AppointmentsRepository
	doctorsRepo      DoctorsRepository
}

func NewAppointmentService(
	appointmentsRepo AppointmentsRepository,
	doctorsRepo DoctorsRepository,
) *appointmentService {
	return &appointmentService{
		appointmentsRepo: appointmentsRepo,
		doctorsRepo:      doctorsRepo,
	}
}

// Book stores a pending appointment. When only a specialization is given, the
// first matching doctor is assigned; no match reports domain.ErrNotFound.
func (a *appointmentService) Book(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	if appt.DoctorID == 0 && appt.Specialization != "" {
		doctors, err := a.doctorsRepo.List(ctx, appt.Specialization)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("fetching doctors: %w", err)
		}
		if len(doctors) == 0 {
			return domain.Appointment{}, fmt.Errorf("no doctors found for specialization %q: %w",
				appt.Specialization, domain.ErrNotFound)
		}
		appt.DoctorID = doctors[0].ID
	}

	appt.Status = domain.AppointmentStatusPending
	appt.CreatedAt = time.Now()

	return a.appointmentsRepo.Create(ctx, appt)
}

func (a *appointmentService) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	return a.appointmentsRepo.ListByUser(ctx, userID)
}
