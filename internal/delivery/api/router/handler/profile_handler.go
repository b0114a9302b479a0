package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coderr/config"
	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Store     service.ContentStore
	Config    *config.Config
	Logger    *slog.Logger
}

// ProfileHandler serves user profiles.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	store     service.ContentStore
	cfg       *config.Config
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		store:     params.Store,
		cfg:       params.Config,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents a partial profile update. Absent fields stay unchanged.
type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email" validate:"omitnil,email"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

// ProfileResponse is the full representation of a profile.
type ProfileResponse struct {
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         *string   `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// BusinessProfileResponse is a business profile list item.
type BusinessProfileResponse struct {
	User         uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         *string   `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
}

// CustomerProfileResponse is a customer profile list item.
type CustomerProfileResponse struct {
	User       uuid.UUID  `json:"user"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	File       *string    `json:"file"`
	UploadedAt *time.Time `json:"uploaded_at"`
	Type       string     `json:"type"`
}

// GetProfile handles GET /profile/:user_id.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	userID, err := pathID(c, "user_id", domainerrors.ErrProfileNotFound)
	if err != nil {
		return err
	}

	user, err := h.profileUC.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.newProfileResponse(user))
}

// UpdateProfile handles PATCH /profile/:user_id with a JSON or multipart body.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "user_id", domainerrors.ErrProfileNotFound)
	if err != nil {
		return err
	}

	input, release, err := h.bindProfileUpdate(c)
	defer release()
	if err != nil {
		return err
	}

	user, err := h.profileUC.UpdateProfile(c.Request().Context(), caller, userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.newProfileResponse(user))
}

// ListBusinessProfiles handles GET /profile/business.
func (h *ProfileHandler) ListBusinessProfiles(c echo.Context) error {
	return h.listProfiles(c, entity.ProfileTypeBusiness, func(user *entity.User) any {
		return BusinessProfileResponse{
			User:         user.ID,
			Username:     user.Username,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			File:         fileURL(h.store, user.Profile.File),
			Location:     user.Profile.Location,
			Tel:          user.Profile.Tel,
			Description:  user.Profile.Description,
			WorkingHours: user.Profile.WorkingHours,
			Type:         user.Profile.Type.String(),
		}
	})
}

// ListCustomerProfiles handles GET /profile/customer.
func (h *ProfileHandler) ListCustomerProfiles(c echo.Context) error {
	return h.listProfiles(c, entity.ProfileTypeCustomer, func(user *entity.User) any {
		return CustomerProfileResponse{
			User:       user.ID,
			Username:   user.Username,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			File:       fileURL(h.store, user.Profile.File),
			UploadedAt: user.Profile.UploadedAt,
			Type:       user.Profile.Type.String(),
		}
	})
}

func (h *ProfileHandler) listProfiles(c echo.Context, profileType entity.ProfileType, present func(*entity.User) any) error {
	pageReq, err := parsePage(c, h.cfg.Pagination)
	if err != nil {
		return err
	}

	users, total, err := h.profileUC.ListProfiles(c.Request().Context(), profileType, pageReq.Window())
	if err != nil {
		return errors.WithStack(err)
	}
	if err := checkPageInRange(pageReq, total); err != nil {
		return err
	}

	results := make([]any, 0, len(users))
	for _, user := range users {
		results = append(results, present(user))
	}

	return response.Paginated(c, pageReq, total, results)
}

// bindProfileUpdate reads a JSON body, or a multipart form whose "file" part replaces the avatar.
func (h *ProfileHandler) bindProfileUpdate(c echo.Context) (*usecase.UpdateProfileInput, func(), error) {
	release := func() {}

	if !isMultipart(c) {
		var req UpdateProfileRequest
		if err := bindAndValidate(c, &req); err != nil {
			return nil, release, err
		}

		return &usecase.UpdateProfileInput{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			Location:     req.Location,
			Tel:          req.Tel,
			Description:  req.Description,
			WorkingHours: req.WorkingHours,
		}, release, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, release, domainerrors.NewValidationError(nonFieldErrors, "Malformed multipart form.")
	}
	req := UpdateProfileRequest{
		FirstName:    formValue(form, "first_name"),
		LastName:     formValue(form, "last_name"),
		Email:        formValue(form, "email"),
		Location:     formValue(form, "location"),
		Tel:          formValue(form, "tel"),
		Description:  formValue(form, "description"),
		WorkingHours: formValue(form, "working_hours"),
	}
	if err := c.Validate(&req); err != nil {
		return nil, release, errors.WithStack(err)
	}

	file, release, err := formFile(form, "file")
	if err != nil {
		return nil, release, err
	}

	return &usecase.UpdateProfileInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Location:     req.Location,
		Tel:          req.Tel,
		Description:  req.Description,
		WorkingHours: req.WorkingHours,
		File:         file,
	}, release, nil
}

func (h *ProfileHandler) newProfileResponse(user *entity.User) ProfileResponse {
	return ProfileResponse{
		User:         user.ID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		File:         fileURL(h.store, user.Profile.File),
		Location:     user.Profile.Location,
		Tel:          user.Profile.Tel,
		Description:  user.Profile.Description,
		WorkingHours: user.Profile.WorkingHours,
		Type:         user.Profile.Type.String(),
		Email:        user.Email,
		CreatedAt:    user.CreatedAt,
	}
}
