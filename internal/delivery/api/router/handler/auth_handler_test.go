package handler

import (
	"net/http"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	mockUsecase "coderr/internal/mocks/usecase"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthTestEcho(t *testing.T) (*echo.Echo, *mockUsecase.MockAuthUsecase) {
	authUC := mockUsecase.NewMockAuthUsecase(t)
	h := NewAuthHandler(AuthHandlerParams{AuthUC: authUC, Logger: discardLogger()})

	e := newTestEcho()
	e.POST("/registration", h.Register)
	e.POST("/login", h.Login)

	return e, authUC
}

func TestAuthHandler_Register(t *testing.T) {
	userID := uuid.New()

	t.Run("created", func(t *testing.T) {
		e, authUC := newAuthTestEcho(t)
		authUC.EXPECT().Register(mock.Anything, &usecase.RegisterInput{
			Username:         "anna",
			Email:            "anna@example.com",
			Password:         "Secret-123",
			RepeatedPassword: "Secret-123",
			Type:             entity.ProfileTypeBusiness,
		}).Return(&usecase.AuthOutput{Token: "tok", Username: "anna", Email: "anna@example.com", UserID: userID}, nil)

		rec := doRequest(e, http.MethodPost, "/registration",
			`{"username":"anna","email":"anna@example.com","password":"Secret-123","repeated_password":"Secret-123","type":"business"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := decodeJSON[AuthResponse](t, rec)
		assert.Equal(t, AuthResponse{Token: "tok", Username: "anna", Email: "anna@example.com", UserID: userID}, body)
	})

	t.Run("invalid fields never reach the usecase", func(t *testing.T) {
		e, _ := newAuthTestEcho(t)

		rec := doRequest(e, http.MethodPost, "/registration",
			`{"username":"anna","email":"not-an-email","password":"x","repeated_password":"x","type":"admin"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		fields := errorFields(t, rec)
		assert.Contains(t, fields, "email")
		assert.Contains(t, fields, "type")
	})

	t.Run("malformed body", func(t *testing.T) {
		e, _ := newAuthTestEcho(t)

		rec := doRequest(e, http.MethodPost, "/registration", `{"username":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), nonFieldErrors)
	})

	t.Run("usecase validation error", func(t *testing.T) {
		e, authUC := newAuthTestEcho(t)
		authUC.EXPECT().Register(mock.Anything, mock.Anything).
			Return(nil, domainerrors.NewValidationError("password", "Passwords do not match."))

		rec := doRequest(e, http.MethodPost, "/registration",
			`{"username":"anna","email":"anna@example.com","password":"a","repeated_password":"b","type":"customer"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), "password")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	userID := uuid.New()

	t.Run("ok", func(t *testing.T) {
		e, authUC := newAuthTestEcho(t)
		authUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{Username: "anna", Password: "Secret-123"}).
			Return(&usecase.AuthOutput{Token: "tok", Username: "anna", Email: "anna@example.com", UserID: userID}, nil)

		rec := doRequest(e, http.MethodPost, "/login", `{"username":"anna","password":"Secret-123"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tok", decodeJSON[AuthResponse](t, rec).Token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		e, authUC := newAuthTestEcho(t)
		authUC.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

		rec := doRequest(e, http.MethodPost, "/login", `{"username":"anna","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, rec))
	})

	t.Run("missing password", func(t *testing.T) {
		e, _ := newAuthTestEcho(t)

		rec := doRequest(e, http.MethodPost, "/login", `{"username":"anna"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorFields(t, rec), "password")
	})
}
