package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a customer's rating of a business user. At most one exists per
// (reviewer, business user) pair.
type Review struct {
	ID             uuid.UUID
	BusinessUserID uuid.UUID
	ReviewerID     uuid.UUID
	Rating         int
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BaseInfo holds the public platform statistics.
type BaseInfo struct {
	ReviewCount          int64
	AverageRating        float64
	BusinessProfileCount int64
	OfferCount           int64
}
