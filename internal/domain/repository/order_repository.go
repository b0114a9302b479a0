package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderFilter narrows an order list.
type OrderFilter struct {
	ParticipantID *uuid.UUID // Only orders where this user is customer or business user; nil lists all.
	Page          Page
}

// OrderRepository defines the persistence operations for orders.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// List returns one page of orders, newest first, and the total count.
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)

	// UpdateStatus changes the status of an order and bumps its update timestamp.
	UpdateStatus(ctx context.Context, order *entity.Order) error

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountByBusinessUser counts the orders of a business user in the given status.
	CountByBusinessUser(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
