package usecase

import (
	"context"

	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// OrderUsecase defines the order lifecycle operations.
type OrderUsecase interface {
	// CreateOrder snapshots the offer detail into a new in-progress order of the caller.
	CreateOrder(ctx context.Context, caller policy.Caller, offerDetailID uuid.UUID) (*entity.Order, error)

	// ListOrders returns the orders the caller takes part in, or every order for staff.
	ListOrders(ctx context.Context, caller policy.Caller, page repository.Page) ([]*entity.Order, int64, error)

	// UpdateOrderStatus sets the status of an order of which the caller is the business user.
	UpdateOrderStatus(ctx context.Context, caller policy.Caller, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	DeleteOrder(ctx context.Context, caller policy.Caller, id uuid.UUID) error

	// CountOrders counts the orders of a business user in the given status.
	CountOrders(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error)
}
