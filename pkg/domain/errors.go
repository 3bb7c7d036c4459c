package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrNotConfigured = errors.New("not configured")
)
