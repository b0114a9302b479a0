package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"coderr/config"
	deliverycontext "coderr/internal/delivery/context"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/errors"

	"github.com/labstack/echo/v4"
)

const defaultSlowRequestThreshold = time.Second

// AccessLogMiddleware writes one line per request. In debug mode every request
// is logged; otherwise only server errors and slow requests are.
type AccessLogMiddleware struct {
	logger        *slog.Logger
	debug         bool
	slowThreshold time.Duration
	now           func() time.Time
}

// NewAccessLogMiddleware creates the access log middleware from the HTTP settings.
func NewAccessLogMiddleware(logger *slog.Logger, cfg *config.Config) *AccessLogMiddleware {
	threshold := cfg.HTTP.SlowRequestThreshold
	if threshold <= 0 {
		threshold = defaultSlowRequestThreshold
	}

	return &AccessLogMiddleware{
		logger:        logger,
		debug:         cfg.Env.Debug,
		slowThreshold: threshold,
		now:           time.Now,
	}
}

// Handle processes request logging
func (m *AccessLogMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := m.now()
		err := next(c)
		latency := m.now().Sub(start)

		status := responseStatus(c, err)
		slow := latency >= m.slowThreshold
		if !m.debug && !slow && status < http.StatusInternalServerError {
			return err
		}

		m.logRequest(c, status, latency, slow, err)

		return err
	}
}

func (m *AccessLogMiddleware) logRequest(c echo.Context, status int, latency time.Duration, slow bool, err error) {
	req := c.Request()

	attrs := []slog.Attr{
		slog.String("path", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", latency),
		slog.Int64("bytes_out", c.Response().Size),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}
	if req.URL.RawQuery != "" {
		attrs = append(attrs, slog.String("query", req.URL.RawQuery))
	}
	if slow {
		attrs = append(attrs, slog.Bool("slow", true))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}

	level := slog.LevelInfo
	switch {
	case status >= http.StatusInternalServerError:
		level = slog.LevelError
	case status >= http.StatusBadRequest, slow:
		level = slog.LevelWarn
	}

	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).LogAttrs(req.Context(), level, "HTTP request", attrs...)
}

// responseStatus predicts the status the error handler will write, since the
// response is not committed yet when a handler returns an error.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
