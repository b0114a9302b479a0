package service

import (
	"context"
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderEvent is published after an order write has been committed.
type OrderEvent struct {
	RequestID      string                `json:"request_id,omitempty"` // For distributed tracing
	Type           entity.OrderEventType `json:"type"`
	OrderID        uuid.UUID             `json:"order_id"`
	CustomerUserID uuid.UUID             `json:"customer_user"`
	BusinessUserID uuid.UUID             `json:"business_user"`
	Status         entity.OrderStatus    `json:"status"`
	PreviousStatus entity.OrderStatus    `json:"previous_status,omitempty"`
	OccurredAt     time.Time             `json:"occurred_at"`
}

// NewOrderEvent builds an event describing the order's current state.
func NewOrderEvent(eventType entity.OrderEventType, order *entity.Order, previous entity.OrderStatus, now time.Time) *OrderEvent {
	return &OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		CustomerUserID: order.CustomerUserID,
		BusinessUserID: order.BusinessUserID,
		Status:         order.Status,
		PreviousStatus: previous,
		OccurredAt:     now,
	}
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
