package store

import (
	"time"

	"github.com/google/uuid"
)

// CVSummary is the lightweight view of a stored CV used for dashboards.
type CVSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	IsPublic  bool      `json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
