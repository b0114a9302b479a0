package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "coderr/internal/delivery/context"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const callerKey = "caller"

// Accepted Authorization schemes.
var authSchemes = []string{"Bearer ", "Token "}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Logger *slog.Logger
}

// AuthMiddleware resolves the bearer token of a request to the calling user.
type AuthMiddleware struct {
	authUC usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{authUC: params.AuthUC, logger: params.Logger}
}

// Authenticate rejects requests without a valid token and stores the caller on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errors.WithStack(domainerrors.ErrUnauthenticated)
		}

		caller, err := m.authUC.Authenticate(c.Request().Context(), token)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Authentication failed", slog.String("path", c.Path()), slog.Any("error", err))

			return errors.WithStack(err)
		}
		SetCaller(c, *caller)

		return next(c)
	}
}

// SetCaller stores the authenticated caller on the request context.
func SetCaller(c echo.Context, caller policy.Caller) {
	c.Set(callerKey, caller)
}

// GetCaller returns the caller stored by Authenticate.
func GetCaller(c echo.Context) (policy.Caller, bool) {
	caller, ok := c.Get(callerKey).(policy.Caller)

	return caller, ok
}

func bearerToken(header string) (string, bool) {
	for _, scheme := range authSchemes {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			token := strings.TrimSpace(header[len(scheme):])

			return token, token != ""
		}
	}

	return "", false
}
