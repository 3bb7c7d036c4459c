package domain

import "time"

const AppointmentStatusPending = "pending"

type Appointment struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	DoctorID       int64     `json:"doctor_id,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	Reason         string    `json:"reason,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}
