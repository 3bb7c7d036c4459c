package domain

type Doctor struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Contact        string `json:"contact,omitempty"`
	Email          string `json:"email,omitempty"`
}
