// Package handler contains the HTTP handlers for the application.
package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"coderr/config"
	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/response"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Error reported for page numbers that do not exist.
var errInvalidPage = domainerrors.ErrNotFound.WithDetails("Invalid page.")

// Validation key of errors that concern the request as a whole.
const nonFieldErrors = "non_field_errors"

// requireCaller returns the authenticated caller set by the auth middleware.
func requireCaller(c echo.Context) (policy.Caller, error) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		return policy.Caller{}, errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	return caller, nil
}

// pathID parses a uuid path parameter. Malformed ids are reported as notFound.
func pathID(c echo.Context, name string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.WithStack(notFound)
	}

	return id, nil
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.NewValidationError(nonFieldErrors, "Malformed request body.")
	}
	if err := c.Validate(req); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// parsePage reads page and page_size. A bad page_size falls back to the default.
func parsePage(c echo.Context, cfg *config.PaginationConfig) (response.PageRequest, error) {
	req := response.PageRequest{Number: 1, Size: cfg.PageSize}

	if raw := c.QueryParam(response.PageParam); raw != "" {
		number, err := strconv.Atoi(raw)
		if err != nil || number < 1 {
			return req, errors.WithStack(errInvalidPage)
		}
		req.Number = number
	}

	if raw := c.QueryParam(response.PageSizeParam); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			req.Size = min(size, cfg.MaxPageSize)
		}
	}

	return req, nil
}

// checkPageInRange rejects pages past the last one. The first page always exists.
func checkPageInRange(req response.PageRequest, total int64) error {
	if req.Number > 1 && int64(req.Window().Offset) >= total {
		return errors.WithStack(errInvalidPage)
	}

	return nil
}

// orderingParam maps the ordering query value onto one of the allowed fields.
// A leading "-" sorts descending.
func orderingParam(c echo.Context, allowed ...string) (*repository.Ordering, error) {
	raw := strings.TrimSpace(c.QueryParam("ordering"))
	if raw == "" {
		return nil, nil
	}

	field, descending := strings.CutPrefix(raw, "-")
	for _, candidate := range allowed {
		if field == candidate {
			return &repository.Ordering{Field: field, Descending: descending}, nil
		}
	}

	return nil, domainerrors.NewValidationError("ordering", "\""+raw+"\" is not a valid ordering.")
}

// uuidQuery parses an optional uuid query filter.
func uuidQuery(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.NewValidationError(name, "Must be a valid UUID.")
	}

	return &id, nil
}

// collectFieldErrors merges the field messages of err into validationErr.
func collectFieldErrors(validationErr *domainerrors.ValidationError, err error) {
	fieldErr, ok := errors.AsType[*domainerrors.ValidationError](err)
	if !ok {
		return
	}
	for field, messages := range fieldErr.FieldErrors() {
		for _, message := range messages {
			validationErr.Add(field, message)
		}
	}
}

// fileURL returns the public path of a stored file, nil when there is none.
func fileURL(store service.ContentStore, key string) *string {
	if key == "" {
		return nil
	}
	u := store.URL(key)

	return &u
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// formValue returns a multipart field, nil when the field was not sent.
func formValue(form *multipart.Form, key string) *string {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]

	return &value
}

// formFile opens the first file sent under key. The returned release func is never nil.
func formFile(form *multipart.Form, key string) (*usecase.FileUpload, func(), error) {
	release := func() {}

	headers := form.File[key]
	if len(headers) == 0 {
		return nil, release, nil
	}

	file, err := headers[0].Open()
	if err != nil {
		return nil, release, errors.Wrap(err, "failed to open uploaded file")
	}

	return &usecase.FileUpload{Name: headers[0].Filename, Content: file}, func() { _ = file.Close() }, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
