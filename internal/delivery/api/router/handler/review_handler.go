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
	"coderr/internal/domain/repository"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
	Config   *config.Config
	Logger   *slog.Logger
}

// ReviewHandler serves customer reviews of business users.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
	cfg      *config.Config
	logger   *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{
		reviewUC: params.ReviewUC,
		cfg:      params.Config,
		logger:   params.Logger,
	}
}

// CreateReviewRequest represents the request body for reviewing a business user.
type CreateReviewRequest struct {
	BusinessUser string `json:"business_user" validate:"required,uuid"`
	Rating       *int   `json:"rating" validate:"required"`
	Description  string `json:"description"`
}

// UpdateReviewRequest represents a partial review update.
type UpdateReviewRequest struct {
	BusinessUser *string `json:"business_user"`
	Rating       *int    `json:"rating"`
	Description  *string `json:"description"`
}

// ReviewResponse is the representation of a review.
type ReviewResponse struct {
	ID           uuid.UUID `json:"id"`
	BusinessUser uuid.UUID `json:"business_user"`
	Reviewer     uuid.UUID `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ListReviews handles GET /reviews.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	if _, err := requireCaller(c); err != nil {
		return err
	}
	pageReq, err := parsePage(c, h.cfg.Pagination)
	if err != nil {
		return err
	}
	filter, err := parseReviewFilter(c)
	if err != nil {
		return err
	}
	filter.Page = pageReq.Window()

	reviews, total, err := h.reviewUC.ListReviews(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := checkPageInRange(pageReq, total); err != nil {
		return err
	}

	items := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, newReviewResponse(review))
	}

	return response.Paginated(c, pageReq, total, items)
}

// CreateReview handles POST /reviews.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, policy.ReviewCreate, uuid.Nil); err != nil {
		return errors.WithStack(err)
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), caller, &usecase.CreateReviewInput{
		BusinessUserID: uuid.MustParse(req.BusinessUser),
		Rating:         *req.Rating,
		Description:    req.Description,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewResponse(review))
}

// GetReview handles GET /reviews/:id, which is not offered.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	return response.MethodNotAllowed(c)
}

// UpdateReview handles PATCH /reviews/:id.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrReviewNotFound)
	if err != nil {
		return err
	}

	var req UpdateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.UpdateReviewInput{
		Rating:      req.Rating,
		Description: req.Description,
	}
	if req.BusinessUser != nil {
		// An unparsable id can never match the stored one; the usecase rejects it
		// after the lookup and ownership checks.
		businessUserID, err := uuid.Parse(*req.BusinessUser)
		if err != nil {
			businessUserID = uuid.Nil
		}
		input.BusinessUserID = &businessUserID
	}

	review, err := h.reviewUC.UpdateReview(c.Request().Context(), caller, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewResponse(review))
}

// DeleteReview handles DELETE /reviews/:id.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrReviewNotFound)
	if err != nil {
		return err
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), caller, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

func parseReviewFilter(c echo.Context) (repository.ReviewFilter, error) {
	var filter repository.ReviewFilter
	validationErr := domainerrors.NewValidationErrors(nil)

	businessUserID, err := uuidQuery(c, "business_user_id")
	collectFieldErrors(validationErr, err)
	filter.BusinessUserID = businessUserID

	reviewerID, err := uuidQuery(c, "reviewer_id")
	collectFieldErrors(validationErr, err)
	filter.ReviewerID = reviewerID

	ordering, err := orderingParam(c, repository.ReviewOrderUpdatedAt, repository.ReviewOrderRating)
	collectFieldErrors(validationErr, err)
	filter.Ordering = ordering

	if len(validationErr.FieldErrors()) > 0 {
		return filter, validationErr
	}

	return filter, nil
}

func newReviewResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID,
		BusinessUser: review.BusinessUserID,
		Reviewer:     review.ReviewerID,
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}
