package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the progress state of an order.
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Order is a purchase of one offer tier. The tier fields are a copy taken at
// creation time and are never refreshed from the offer.
type Order struct {
	ID                 uuid.UUID
	CustomerUserID     uuid.UUID
	BusinessUserID     uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
	OfferType          OfferType
	Status             OrderStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewOrderFromDetail snapshots detail into a new in-progress order.
func NewOrderFromDetail(detail *OfferDetail, businessUserID, customerUserID uuid.UUID) *Order {
	features := make([]string, len(detail.Features))
	copy(features, detail.Features)

	return &Order{
		CustomerUserID:     customerUserID,
		BusinessUserID:     businessUserID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           features,
		OfferType:          detail.OfferType,
		Status:             OrderStatusInProgress,
	}
}

// IsParticipant reports whether userID is the customer or the business user of the order.
func (o *Order) IsParticipant(userID uuid.UUID) bool {
	return o.CustomerUserID == userID || o.BusinessUserID == userID
}

// OrderEventType names an order lifecycle event.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
)
