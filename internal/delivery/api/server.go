package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"coderr/config"
	"coderr/internal/delivery"
	apimiddleware "coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/router"
	"coderr/internal/delivery/api/validator"
	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/delivery/middleware"
	"coderr/internal/domain/lifecycle"
	"coderr/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type apiServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for HTTP server, injected by Fx.
type ServerParams struct {
	fx.In

	Lc           fx.Lifecycle
	Cfg          *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams
}

// NewServer assembles the marketplace API and registers its shutdown hook.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	echoServer := newEcho(params.Cfg, params.Logger)
	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	srv := &apiServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}
	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newEcho(cfg *config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	e.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	e.HTTPErrorHandler = apimiddleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = validator.New()

	// "/offers/" and "/offers" resolve to the same route.
	e.Pre(echomiddleware.RemoveTrailingSlash())

	// Order matters: the request id must exist before anything logs.
	e.Use(
		middleware.NewRequestIDMiddleware(logger).Process,
		echomiddleware.RecoverWithConfig(recoverConfig(logger)),
		middleware.NewAccessLogMiddleware(logger, cfg).Handle,
		echomiddleware.CORSWithConfig(corsConfig(cfg.HTTP.AllowOrigins)),
		echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize),
	)

	return e
}

// recoverConfig reports panics through the request scoped logger and lets
// the error handler answer with a 500.
func recoverConfig(logger *slog.Logger) echomiddleware.RecoverConfig {
	cfg := echomiddleware.DefaultRecoverConfig
	cfg.DisablePrintStack = true
	cfg.LogErrorFunc = func(c echo.Context, err error, stack []byte) error {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), logger).Error("Handler panicked",
			slog.Any("error", err),
			slog.String("stack", string(stack)),
		)

		return err
	}

	return cfg
}

// corsConfig allows every origin unless origins are configured.
func corsConfig(origins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.DefaultCORSConfig
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{
		echo.HeaderOrigin,
		echo.HeaderContentType,
		echo.HeaderAccept,
		echo.HeaderAuthorization,
		echo.HeaderXRequestID,
	}
	cfg.ExposeHeaders = []string{echo.HeaderXRequestID}

	return cfg
}

func (s *apiServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting API HTTP server",
		slog.String("host_port", hostPort),
		slog.String("media_path", s.cfg.Storage.MediaPath),
	)
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *apiServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down API HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
