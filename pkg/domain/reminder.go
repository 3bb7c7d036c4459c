package domain

import "time"

const ReminderStatusActive = "active"

type Reminder struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Date      string    `json:"date,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
