package handler

import (
	"net/http"
	"testing"
	"time"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	mockUsecase "coderr/internal/mocks/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderTestEcho(t *testing.T, caller policy.Caller) (*echo.Echo, *mockUsecase.MockOrderUsecase) {
	orderUC := mockUsecase.NewMockOrderUsecase(t)
	h := NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Config: testConfig(), Logger: discardLogger()})

	e := newTestEcho()
	e.GET("/orders", h.ListOrders, asCaller(caller))
	e.POST("/orders", h.CreateOrder, asCaller(caller))
	e.GET("/orders/:id", h.GetOrder)
	e.PATCH("/orders/:id", h.UpdateOrder, asCaller(caller))
	e.DELETE("/orders/:id", h.DeleteOrder, asCaller(caller))
	e.GET("/order-count/:business_user_id", h.OrderCount, asCaller(caller))
	e.GET("/completed-order-count/:business_user_id", h.CompletedOrderCount, asCaller(caller))

	return e, orderUC
}

func sampleOrder(customerID, businessID uuid.UUID) *entity.Order {
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)

	return &entity.Order{
		ID:                 uuid.New(),
		CustomerUserID:     customerID,
		BusinessUserID:     businessID,
		Title:              "Standard",
		Revisions:          3,
		DeliveryTimeInDays: 5,
		Price:              decimal.RequireFromString("200.50"),
		Features:           []string{"Logo", "Card"},
		OfferType:          entity.OfferTypeStandard,
		Status:             entity.OrderStatusInProgress,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		caller := customer()
		detailID := uuid.New()
		order := sampleOrder(caller.UserID, uuid.New())
		e, orderUC := newOrderTestEcho(t, caller)
		orderUC.EXPECT().CreateOrder(mock.Anything, caller, detailID).Return(order, nil)

		rec := doRequest(e, http.MethodPost, "/orders", `{"offer_detail_id":"`+detailID.String()+`"}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		body := decodeJSON[OrderResponse](t, rec)
		assert.Equal(t, order.ID, body.ID)
		assert.Equal(t, caller.UserID, body.CustomerUser)
		assert.Equal(t, "in_progress", body.Status)
		assert.Equal(t, "standard", body.OfferType)
		assert.True(t, body.Price.Equal(decimal.RequireFromString("200.50")))
	})

	t.Run("business user is forbidden", func(t *testing.T) {
		e, _ := newOrderTestEcho(t, business())

		rec := doRequest(e, http.MethodPost, "/orders", `{"offer_detail_id":"`+uuid.NewString()+`"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing detail id", func(t *testing.T) {
		e, _ := newOrderTestEcho(t, customer())

		rec := doRequest(e, http.MethodPost, "/orders", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), "offer_detail_id")
	})

	t.Run("unknown detail", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, customer())
		orderUC.EXPECT().CreateOrder(mock.Anything, mock.Anything, mock.Anything).Return(nil, domainerrors.ErrOfferDetailNotFound)

		rec := doRequest(e, http.MethodPost, "/orders", `{"offer_detail_id":"`+uuid.NewString()+`"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	caller := customer()
	e, orderUC := newOrderTestEcho(t, caller)
	orderUC.EXPECT().ListOrders(mock.Anything, caller, repository.Page{Offset: 6, Limit: 6}).
		Return([]*entity.Order{sampleOrder(caller.UserID, uuid.New())}, 7, nil)

	rec := doRequest(e, http.MethodGet, "/orders?page=2", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decodeJSON[struct {
		Count    int64           `json:"count"`
		Next     *string         `json:"next"`
		Previous *string         `json:"previous"`
		Results  []OrderResponse `json:"results"`
	}](t, rec)
	assert.EqualValues(t, 7, page.Count)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.NotContains(t, *page.Previous, "page=")
	assert.Len(t, page.Results, 1)
}

func TestOrderHandler_GetOrder(t *testing.T) {
	e, _ := newOrderTestEcho(t, customer())

	rec := doRequest(e, http.MethodGet, "/orders/"+uuid.NewString(), "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, rec))
}

func TestOrderHandler_UpdateOrder(t *testing.T) {
	t.Run("status changed", func(t *testing.T) {
		caller := business()
		order := sampleOrder(uuid.New(), caller.UserID)
		order.Status = entity.OrderStatusCompleted
		e, orderUC := newOrderTestEcho(t, caller)
		orderUC.EXPECT().UpdateOrderStatus(mock.Anything, caller, order.ID, entity.OrderStatusCompleted).Return(order, nil)

		rec := doRequest(e, http.MethodPatch, "/orders/"+order.ID.String(), `{"status":"completed"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "completed", decodeJSON[OrderResponse](t, rec).Status)
	})

	t.Run("invalid status from usecase", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, business())
		orderUC.EXPECT().UpdateOrderStatus(mock.Anything, mock.Anything, mock.Anything, entity.OrderStatus("shipped")).
			Return(nil, domainerrors.NewValidationError("status", "\"shipped\" is not a valid choice."))

		rec := doRequest(e, http.MethodPatch, "/orders/"+uuid.NewString(), `{"status":"shipped"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), "status")
	})

	t.Run("malformed id", func(t *testing.T) {
		e, _ := newOrderTestEcho(t, business())

		rec := doRequest(e, http.MethodPatch, "/orders/nope", `{"status":"completed"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "ORDER_NOT_FOUND", errorCode(t, rec))
	})
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		caller := policy.Caller{UserID: uuid.New(), IsStaff: true}
		id := uuid.New()
		e, orderUC := newOrderTestEcho(t, caller)
		orderUC.EXPECT().DeleteOrder(mock.Anything, caller, id).Return(nil)

		rec := doRequest(e, http.MethodDelete, "/orders/"+id.String(), "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, customer())
		orderUC.EXPECT().DeleteOrder(mock.Anything, mock.Anything, mock.Anything).Return(domainerrors.ErrForbidden)

		rec := doRequest(e, http.MethodDelete, "/orders/"+uuid.NewString(), "")

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestOrderHandler_Counts(t *testing.T) {
	businessID := uuid.New()

	t.Run("in progress", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, customer())
		orderUC.EXPECT().CountOrders(mock.Anything, businessID, entity.OrderStatusInProgress).Return(4, nil)

		rec := doRequest(e, http.MethodGet, "/order-count/"+businessID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"order_count":4}`, rec.Body.String())
	})

	t.Run("completed", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, customer())
		orderUC.EXPECT().CountOrders(mock.Anything, businessID, entity.OrderStatusCompleted).Return(2, nil)

		rec := doRequest(e, http.MethodGet, "/completed-order-count/"+businessID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"completed_order_count":2}`, rec.Body.String())
	})

	t.Run("unknown business user", func(t *testing.T) {
		e, orderUC := newOrderTestEcho(t, customer())
		orderUC.EXPECT().CountOrders(mock.Anything, businessID, entity.OrderStatusInProgress).
			Return(0, domainerrors.ErrBusinessProfileNotFound)

		rec := doRequest(e, http.MethodGet, "/order-count/"+businessID.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		e, _ := newOrderTestEcho(t, customer())

		rec := doRequest(e, http.MethodGet, "/order-count/abc", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "BUSINESS_PROFILE_NOT_FOUND", errorCode(t, rec))
	})
}
