package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	logger    *slog.Logger
	now       func() time.Time
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		publisher: params.Publisher,
		logger:    params.Logger,
		now:       time.Now,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder snapshots the chosen tier into a new order of the calling customer.
func (srv *orderService) CreateOrder(ctx context.Context, caller policy.Caller, offerDetailID uuid.UUID) (*entity.Order, error) {
	srv.log(ctx).Info("Creating order", slog.Any("customerID", caller.UserID), slog.Any("offerDetailID", offerDetailID))

	if err := policy.Check(caller, policy.OrderCreate, uuid.Nil); err != nil {
		return nil, err
	}

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		detail, ownerID, err := repoFactory.NewOfferRepository().FindDetailByID(ctx, offerDetailID)
		if err != nil {
			if errors.Is(err, repository.ErrOfferDetailNotFound) {
				return domainerrors.ErrOfferDetailNotFound
			}

			return errors.Wrap(err, "failed to find offer detail")
		}

		order = entity.NewOrderFromDetail(detail, ownerID, caller.UserID)
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.publish(ctx, entity.OrderEventCreated, order, "")

	return order, nil
}

// ListOrders returns the caller's orders. Staff see every order.
func (srv *orderService) ListOrders(ctx context.Context, caller policy.Caller, page repository.Page) ([]*entity.Order, int64, error) {
	filter := repository.OrderFilter{Page: page}
	if !caller.IsStaff {
		participant := caller.UserID
		filter.ParticipantID = &participant
	}

	var (
		orders []*entity.Order
		total  int64
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		orders, total, err = repoFactory.NewOrderRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to list orders")
	}

	return orders, total, nil
}

// UpdateOrderStatus lets the business user of an order change its status.
func (srv *orderService) UpdateOrderStatus(
	ctx context.Context,
	caller policy.Caller,
	id uuid.UUID,
	status entity.OrderStatus,
) (*entity.Order, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", id), slog.String("status", status.String()))

	var (
		order    *entity.Order
		previous entity.OrderStatus
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		found, err := findOrder(ctx, orderRepo, id)
		if err != nil {
			return err
		}
		if err := policy.Check(caller, policy.OrderUpdate, found.BusinessUserID); err != nil {
			return err
		}

		switch {
		case status == "":
			return domainerrors.NewValidationError("status", "This field is required.")
		case !status.IsValid():
			return domainerrors.NewValidationError("status", "\""+status.String()+"\" is not a valid choice.")
		}

		previous = found.Status
		found.Status = status
		if err := orderRepo.UpdateStatus(ctx, found); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to update order status")
		}
		order = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	if previous != order.Status {
		srv.publish(ctx, entity.OrderEventStatusChanged, order, previous)
	}

	return order, nil
}

// DeleteOrder removes an order. Only staff may delete.
func (srv *orderService) DeleteOrder(ctx context.Context, caller policy.Caller, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting order", slog.Any("orderID", id))

	if err := policy.Check(caller, policy.OrderDelete, uuid.Nil); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewOrderRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return errors.Wrap(err, "failed to delete order")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}

// CountOrders counts the orders of a business user in the given status.
func (srv *orderService) CountOrders(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	var count int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := repoFactory.NewUserRepository().FindByID(ctx, businessUserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrBusinessProfileNotFound
			}

			return errors.Wrap(err, "failed to find business user")
		}
		if user.ProfileType() != entity.ProfileTypeBusiness {
			return domainerrors.ErrBusinessProfileNotFound
		}

		count, err = repoFactory.NewOrderRepository().CountByBusinessUser(ctx, businessUserID, status)

		return err
	})
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// publish sends an order event after the write committed. Failures are logged, never returned.
func (srv *orderService) publish(ctx context.Context, eventType entity.OrderEventType, order *entity.Order, previous entity.OrderStatus) {
	event := service.NewOrderEvent(eventType, order, previous, srv.now().UTC())
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("event_type", string(eventType)),
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}

func findOrder(ctx context.Context, orderRepo repository.OrderRepository, id uuid.UUID) (*entity.Order, error) {
	order, err := orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}
