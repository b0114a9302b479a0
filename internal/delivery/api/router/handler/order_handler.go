package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coderr/config"
	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// OrderHandler serves orders and the per business user order counts.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	cfg     *config.Config
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		cfg:     params.Config,
		logger:  params.Logger,
	}
}

// CreateOrderRequest represents the request body for ordering an offer tier.
type CreateOrderRequest struct {
	OfferDetailID string `json:"offer_detail_id" validate:"required,uuid"`
}

// UpdateOrderRequest carries the new status of an order.
type UpdateOrderRequest struct {
	Status string `json:"status"`
}

// OrderResponse is the representation of an order.
type OrderResponse struct {
	ID                 uuid.UUID       `json:"id"`
	CustomerUser       uuid.UUID       `json:"customer_user"`
	BusinessUser       uuid.UUID       `json:"business_user"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// OrderCountResponse is the number of in-progress orders of a business user.
type OrderCountResponse struct {
	OrderCount int64 `json:"order_count"`
}

// CompletedOrderCountResponse is the number of completed orders of a business user.
type CompletedOrderCountResponse struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

// ListOrders handles GET /orders.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	pageReq, err := parsePage(c, h.cfg.Pagination)
	if err != nil {
		return err
	}

	orders, total, err := h.orderUC.ListOrders(c.Request().Context(), caller, pageReq.Window())
	if err != nil {
		return errors.WithStack(err)
	}
	if err := checkPageInRange(pageReq, total); err != nil {
		return err
	}

	items := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		items = append(items, newOrderResponse(order))
	}

	return response.Paginated(c, pageReq, total, items)
}

// CreateOrder handles POST /orders.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, policy.OrderCreate, uuid.Nil); err != nil {
		return errors.WithStack(err)
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), caller, uuid.MustParse(req.OfferDetailID))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newOrderResponse(order))
}

// GetOrder handles GET /orders/:id, which is not offered.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	return response.MethodNotAllowed(c)
}

// UpdateOrder handles PATCH /orders/:id.
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrOrderNotFound)
	if err != nil {
		return err
	}

	var req UpdateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateOrderStatus(c.Request().Context(), caller, id, entity.OrderStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOrderResponse(order))
}

// DeleteOrder handles DELETE /orders/:id.
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrOrderNotFound)
	if err != nil {
		return err
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), caller, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// OrderCount handles GET /order-count/:business_user_id.
func (h *OrderHandler) OrderCount(c echo.Context) error {
	count, err := h.countOrders(c, entity.OrderStatusInProgress)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, OrderCountResponse{OrderCount: count})
}

// CompletedOrderCount handles GET /completed-order-count/:business_user_id.
func (h *OrderHandler) CompletedOrderCount(c echo.Context) error {
	count, err := h.countOrders(c, entity.OrderStatusCompleted)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, CompletedOrderCountResponse{CompletedOrderCount: count})
}

func (h *OrderHandler) countOrders(c echo.Context, status entity.OrderStatus) (int64, error) {
	businessUserID, err := pathID(c, "business_user_id", domainerrors.ErrBusinessProfileNotFound)
	if err != nil {
		return 0, err
	}

	count, err := h.orderUC.CountOrders(c.Request().Context(), businessUserID, status)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

func newOrderResponse(order *entity.Order) OrderResponse {
	features := order.Features
	if features == nil {
		features = []string{}
	}

	return OrderResponse{
		ID:                 order.ID,
		CustomerUser:       order.CustomerUserID,
		BusinessUser:       order.BusinessUserID,
		Title:              order.Title,
		Revisions:          order.Revisions,
		DeliveryTimeInDays: order.DeliveryTimeInDays,
		Price:              order.Price,
		Features:           features,
		OfferType:          order.OfferType.String(),
		Status:             order.Status.String(),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
