package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coderr/config"
	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/response"
	"coderr/internal/delivery/api/validator"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	mockService "coderr/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(discardLogger()).HandleHTTPError

	return e
}

func testConfig() *config.Config {
	return &config.Config{
		Pagination: &config.PaginationConfig{PageSize: 6, MaxPageSize: 100},
		Storage:    &config.StorageConfig{MediaPath: "/media"},
	}
}

// asCaller stands in for the auth middleware.
func asCaller(caller policy.Caller) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			middleware.SetCaller(c, caller)

			return next(c)
		}
	}
}

func customer() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Type: entity.ProfileTypeCustomer}
}

func business() policy.Caller {
	return policy.Caller{UserID: uuid.New(), Type: entity.ProfileTypeBusiness}
}

func newMediaStore(t *testing.T) *mockService.MockContentStore {
	store := mockService.NewMockContentStore(t)
	store.EXPECT().URL(mock.Anything).RunAndReturn(func(key string) string { return "/media/" + key }).Maybe()

	return store
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var body T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

// errorFields returns the field names of a validation error response.
func errorFields(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := decodeJSON[response.ErrorResponse](t, rec)
	require.NotNil(t, body.Error)
	fields, ok := body.Error.Details.(map[string]any)
	require.True(t, ok, "details are not a field map: %v", body.Error.Details)

	return fields
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeJSON[response.ErrorResponse](t, rec)
	require.NotNil(t, body.Error)

	return body.Error.Code
}

func TestParsePage(t *testing.T) {
	cfg := testConfig().Pagination

	tests := []struct {
		name    string
		query   string
		want    response.PageRequest
		wantErr bool
	}{
		{name: "defaults", query: "", want: response.PageRequest{Number: 1, Size: 6}},
		{name: "explicit page and size", query: "?page=3&page_size=10", want: response.PageRequest{Number: 3, Size: 10}},
		{name: "size capped", query: "?page_size=1000", want: response.PageRequest{Number: 1, Size: 100}},
		{name: "bad size falls back", query: "?page_size=abc", want: response.PageRequest{Number: 1, Size: 6}},
		{name: "zero size falls back", query: "?page_size=0", want: response.PageRequest{Number: 1, Size: 6}},
		{name: "non numeric page", query: "?page=abc", wantErr: true},
		{name: "page zero", query: "?page=0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/offers"+tt.query, nil), httptest.NewRecorder())

			got, err := parsePage(c, cfg)
			if tt.wantErr {
				require.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckPageInRange(t *testing.T) {
	assert.NoError(t, checkPageInRange(response.PageRequest{Number: 1, Size: 6}, 0))
	assert.NoError(t, checkPageInRange(response.PageRequest{Number: 2, Size: 6}, 7))
	assert.Error(t, checkPageInRange(response.PageRequest{Number: 2, Size: 6}, 6))
}

func TestOrderingParam(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/reviews?ordering=-rating", nil), httptest.NewRecorder())
	ordering, err := orderingParam(c, "updated_at", "rating")
	require.NoError(t, err)
	require.NotNil(t, ordering)
	assert.Equal(t, "rating", ordering.Field)
	assert.True(t, ordering.Descending)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/reviews", nil), httptest.NewRecorder())
	ordering, err = orderingParam(c, "updated_at", "rating")
	require.NoError(t, err)
	assert.Nil(t, ordering)

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/reviews?ordering=title", nil), httptest.NewRecorder())
	_, err = orderingParam(c, "updated_at", "rating")
	require.Error(t, err)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho()
	e.GET("/health", HealthCheck)

	rec := doRequest(e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
