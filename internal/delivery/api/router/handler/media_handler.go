package handler

import (
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	deliverycontext "coderr/internal/delivery/context"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"
	"coderr/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MediaHandlerParams holds dependencies for MediaHandler, injected by Fx.
type MediaHandlerParams struct {
	fx.In

	Store  service.ContentStore
	Logger *slog.Logger
}

// MediaHandler streams uploaded files out of the content store.
type MediaHandler struct {
	store  service.ContentStore
	logger *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler.
func NewMediaHandler(params MediaHandlerParams) *MediaHandler {
	return &MediaHandler{
		store:  params.Store,
		logger: params.Logger,
	}
}

// ServeFile handles GET <media path>/*.
func (h *MediaHandler) ServeFile(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return errors.WithStack(domainerrors.ErrFileNotFound)
	}

	file, err := h.store.Open(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			return errors.WithStack(domainerrors.ErrFileNotFound)
		}

		return errors.Wrap(err, "failed to open stored file")
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Warn("Failed to close stored file", slog.String("key", key), slog.Any("error", closeErr))
		}
	}()

	header := c.Response().Header()
	if file.Size >= 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(file.Size, 10))
	}
	header.Set("Cache-Control", "public, max-age=31536000, immutable")
	header.Set(echo.HeaderXContentTypeOptions, "nosniff")
	if !servedInline(file.ContentType) {
		header.Set(echo.HeaderContentDisposition, "attachment; filename="+strconv.Quote(path.Base(key)))
	}

	return c.Stream(http.StatusOK, file.ContentType, file)
}

// servedInline reports whether a stored file may render in the browser.
// SVG can carry script, so only raster images qualify.
func servedInline(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return strings.HasPrefix(mediaType, "image/") && mediaType != "image/svg+xml"
}
