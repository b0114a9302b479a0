package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain-specific errors for offer persistence.
var (
	ErrOfferNotFound       = errors.New("offer not found")
	ErrOfferDetailNotFound = errors.New("offer detail not found")
)

// Sortable offer fields.
const (
	OfferOrderUpdatedAt = "updated_at"
	OfferOrderMinPrice  = "min_price"
)

// OfferFilter narrows an offer list. Nil and empty fields do not filter.
type OfferFilter struct {
	CreatorID       *uuid.UUID
	MinPrice        *decimal.Decimal // Derived minimum price must be >= this value.
	MaxDeliveryTime *int             // Derived minimum delivery time must be <= this value.
	Search          string           // Case-insensitive match on title or description.
	Ordering        *Ordering
	Page            Page
}

// OfferRepository defines the persistence operations of the offer aggregate.
// Offers are always returned with their details loaded.
type OfferRepository interface {
	// Create persists the offer and all of its details.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves an offer with its details.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// List returns one page of offers matching filter, each with details and owner, and the total count.
	List(ctx context.Context, filter OfferFilter) ([]*entity.Offer, int64, error)

	// Update writes the offer's own fields and the fields of its existing details.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes the offer and its details.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDetailByID retrieves a single detail together with the owner id of its offer.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, uuid.UUID, error)

	// Count counts all offers.
	Count(ctx context.Context) (int64, error)
}
