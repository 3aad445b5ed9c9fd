package domain

import "time"

// Chart is the scope within which bar ids are unique.
type Chart struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
