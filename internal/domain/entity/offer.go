package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferType is the pricing tier of an offer detail.
type OfferType string

const (
	OfferTypeBasic    OfferType = "basic"
	OfferTypeStandard OfferType = "standard"
	OfferTypePremium  OfferType = "premium"
)

// RequiredOfferDetails is the number of tiers every offer is created with.
const RequiredOfferDetails = 3

// OfferTypes lists the tiers in display order.
func OfferTypes() []OfferType {
	return []OfferType{OfferTypeBasic, OfferTypeStandard, OfferTypePremium}
}

// String returns the string representation of the OfferType.
func (t OfferType) String() string {
	return string(t)
}

// IsValid checks if the OfferType is a valid value.
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	default:
		return false
	}
}

// Offer is a service published by a business user. It owns one detail per tier.
type Offer struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Owner, always a business user.
	Title       string
	Image       string // Content store key, empty when none.
	Description string
	Details     []*OfferDetail
	Owner       *User // Loaded for list views, may be nil.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfferDetail is one pricing tier of an offer.
type OfferDetail struct {
	ID                 uuid.UUID
	OfferID            uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          OfferType
}

// HasImage reports whether an image is stored for the offer.
func (o *Offer) HasImage() bool {
	return o != nil && o.Image != ""
}

// DetailByType returns the detail of the given tier, or nil.
func (o *Offer) DetailByType(offerType OfferType) *OfferDetail {
	for _, detail := range o.Details {
		if detail.OfferType == offerType {
			return detail
		}
	}

	return nil
}

// MinPrice returns the lowest price across the offer's details, nil when it has none.
func (o *Offer) MinPrice() *decimal.Decimal {
	return MinPrice(o.Details)
}

// MinDeliveryTime returns the shortest delivery time across the offer's details, nil when it has none.
func (o *Offer) MinDeliveryTime() *int {
	return MinDeliveryTime(o.Details)
}

// MinPrice returns the lowest price in details, nil for an empty set.
func MinPrice(details []*OfferDetail) *decimal.Decimal {
	var minimum *decimal.Decimal
	for _, detail := range details {
		if minimum == nil || detail.Price.LessThan(*minimum) {
			price := detail.Price
			minimum = &price
		}
	}

	return minimum
}

// MinDeliveryTime returns the shortest delivery time in details, nil for an empty set.
func MinDeliveryTime(details []*OfferDetail) *int {
	var minimum *int
	for _, detail := range details {
		if minimum == nil || detail.DeliveryTimeInDays < *minimum {
			days := detail.DeliveryTimeInDays
			minimum = &days
		}
	}

	return minimum
}
