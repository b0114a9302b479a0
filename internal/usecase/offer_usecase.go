package usecase

import (
	"context"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferUsecase defines the operations on the offer aggregate.
type OfferUsecase interface {
	CreateOffer(ctx context.Context, caller policy.Caller, input *CreateOfferInput) (*entity.Offer, error)
	ListOffers(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	UpdateOffer(ctx context.Context, caller policy.Caller, id uuid.UUID, input *UpdateOfferInput) (*entity.Offer, error)
	DeleteOffer(ctx context.Context, caller policy.Caller, id uuid.UUID) error
	GetOfferDetail(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)
}

// --- Input DTOs ---

// CreateOfferInput defines a new offer with its full set of tiers.
type CreateOfferInput struct {
	Title       string
	Description string
	Image       *FileUpload
	Details     []OfferDetailInput
}

// OfferDetailInput defines one tier of a new offer.
type OfferDetailInput struct {
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          entity.OfferType
}

// UpdateOfferInput defines a partial offer update. Nil fields are left unchanged.
type UpdateOfferInput struct {
	Title       *string
	Description *string
	Image       *FileUpload // Replaces the image when set.
	Details     []OfferDetailPatch
}

// OfferDetailPatch updates the existing tier named by OfferType.
type OfferDetailPatch struct {
	OfferType          entity.OfferType
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
	Features           *[]string
}
