package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"coderr/config"
	"coderr/internal/delivery/api/response"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// OfferHandlerParams holds dependencies for OfferHandler, injected by Fx.
type OfferHandlerParams struct {
	fx.In

	OfferUC usecase.OfferUsecase
	Store   service.ContentStore
	Config  *config.Config
	Logger  *slog.Logger
}

// OfferHandler serves offers and their tiers.
type OfferHandler struct {
	offerUC usecase.OfferUsecase
	store   service.ContentStore
	cfg     *config.Config
	logger  *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler.
func NewOfferHandler(params OfferHandlerParams) *OfferHandler {
	return &OfferHandler{
		offerUC: params.OfferUC,
		store:   params.Store,
		cfg:     params.Config,
		logger:  params.Logger,
	}
}

// CreateOfferRequest represents the request body for creating an offer.
type CreateOfferRequest struct {
	Title       string               `json:"title" validate:"required"`
	Image       *string              `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailRequest `json:"details" validate:"required,dive"`
}

// OfferDetailRequest is one tier of a new offer.
type OfferDetailRequest struct {
	Title              string           `json:"title" validate:"required"`
	Revisions          *int             `json:"revisions" validate:"required"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days" validate:"required"`
	Price              *decimal.Decimal `json:"price" validate:"required"`
	Features           []string         `json:"features"`
	OfferType          string           `json:"offer_type" validate:"required"`
}

// UpdateOfferRequest represents a partial offer update.
type UpdateOfferRequest struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Details     []OfferDetailPatchRequest `json:"details"`
}

// OfferDetailPatchRequest updates the existing tier named by offer_type.
type OfferDetailPatchRequest struct {
	Title              *string          `json:"title"`
	Revisions          *int             `json:"revisions"`
	DeliveryTimeInDays *int             `json:"delivery_time_in_days"`
	Price              *decimal.Decimal `json:"price"`
	Features           *[]string        `json:"features"`
	OfferType          string           `json:"offer_type"`
}

// OfferDetailResponse is the representation of one tier.
type OfferDetailResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

// OfferDetailLink points at a tier from an offer list item.
type OfferDetailLink struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// OfferUserDetails names the owner of a listed offer.
type OfferUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferResponse is the full representation of an offer.
type OfferResponse struct {
	ID              uuid.UUID             `json:"id"`
	User            uuid.UUID             `json:"user"`
	Title           string                `json:"title"`
	Image           *string               `json:"image"`
	Description     string                `json:"description"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
	Details         []OfferDetailResponse `json:"details"`
	MinPrice        *decimal.Decimal      `json:"min_price"`
	MinDeliveryTime *int                  `json:"min_delivery_time"`
}

// OfferListItem is an offer as shown in the public list.
type OfferListItem struct {
	ID              uuid.UUID         `json:"id"`
	User            uuid.UUID         `json:"user"`
	Title           string            `json:"title"`
	Image           *string           `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailLink `json:"details"`
	MinPrice        *decimal.Decimal  `json:"min_price"`
	MinDeliveryTime *int              `json:"min_delivery_time"`
	UserDetails     *OfferUserDetails `json:"user_details"`
}

// CreateOffer handles POST /offers.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	if err := policy.Check(caller, policy.OfferCreate, uuid.Nil); err != nil {
		return errors.WithStack(err)
	}

	var req CreateOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Details:     make([]usecase.OfferDetailInput, 0, len(req.Details)),
	}
	for _, detail := range req.Details {
		input.Details = append(input.Details, usecase.OfferDetailInput{
			Title:              detail.Title,
			Revisions:          *detail.Revisions,
			DeliveryTimeInDays: *detail.DeliveryTimeInDays,
			Price:              *detail.Price,
			Features:           detail.Features,
			OfferType:          entity.OfferType(detail.OfferType),
		})
	}

	offer, err := h.offerUC.CreateOffer(c.Request().Context(), caller, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, h.newOfferResponse(offer))
}

// ListOffers handles GET /offers.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	pageReq, err := parsePage(c, h.cfg.Pagination)
	if err != nil {
		return err
	}
	filter, err := parseOfferFilter(c)
	if err != nil {
		return err
	}
	filter.Page = pageReq.Window()

	offers, total, err := h.offerUC.ListOffers(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := checkPageInRange(pageReq, total); err != nil {
		return err
	}

	items := make([]OfferListItem, 0, len(offers))
	for _, offer := range offers {
		items = append(items, h.newOfferListItem(offer))
	}

	return response.Paginated(c, pageReq, total, items)
}

// GetOffer handles GET /offers/:id.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := pathID(c, "id", domainerrors.ErrOfferNotFound)
	if err != nil {
		return err
	}

	offer, err := h.offerUC.GetOffer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.newOfferResponse(offer))
}

// UpdateOffer handles PATCH /offers/:id with a JSON or multipart body.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrOfferNotFound)
	if err != nil {
		return err
	}

	input, release, err := bindOfferUpdate(c)
	defer release()
	if err != nil {
		return err
	}

	offer, err := h.offerUC.UpdateOffer(c.Request().Context(), caller, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.newOfferResponse(offer))
}

// DeleteOffer handles DELETE /offers/:id.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	caller, err := requireCaller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", domainerrors.ErrOfferNotFound)
	if err != nil {
		return err
	}

	if err := h.offerUC.DeleteOffer(c.Request().Context(), caller, id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// GetOfferDetail handles GET /offerdetails/:id.
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	id, err := pathID(c, "id", domainerrors.ErrOfferDetailNotFound)
	if err != nil {
		return err
	}

	detail, err := h.offerUC.GetOfferDetail(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newOfferDetailResponse(detail))
}

// parseOfferFilter reads the list filters. Malformed values are reported per parameter.
func parseOfferFilter(c echo.Context) (repository.OfferFilter, error) {
	var filter repository.OfferFilter
	validationErr := domainerrors.NewValidationErrors(nil)

	creatorID, err := uuidQuery(c, "creator_id")
	collectFieldErrors(validationErr, err)
	filter.CreatorID = creatorID

	if raw := c.QueryParam("min_price"); raw != "" {
		minPrice, err := decimal.NewFromString(raw)
		if err != nil {
			validationErr.Add("min_price", "A valid number is required.")
		} else {
			filter.MinPrice = &minPrice
		}
	}

	if raw := c.QueryParam("max_delivery_time"); raw != "" {
		maxDelivery, err := strconv.Atoi(raw)
		if err != nil {
			validationErr.Add("max_delivery_time", "A valid integer is required.")
		} else {
			filter.MaxDeliveryTime = &maxDelivery
		}
	}

	filter.Search = strings.TrimSpace(c.QueryParam("search"))

	ordering, err := orderingParam(c, repository.OfferOrderUpdatedAt, repository.OfferOrderMinPrice)
	collectFieldErrors(validationErr, err)
	filter.Ordering = ordering

	if len(validationErr.FieldErrors()) > 0 {
		return filter, validationErr
	}

	return filter, nil
}

// bindOfferUpdate reads a JSON body, or a multipart form whose "image" part replaces the image.
// In a form, details are sent as a JSON encoded array.
func bindOfferUpdate(c echo.Context) (*usecase.UpdateOfferInput, func(), error) {
	release := func() {}

	if !isMultipart(c) {
		var req UpdateOfferRequest
		if err := bindAndValidate(c, &req); err != nil {
			return nil, release, err
		}

		return newUpdateOfferInput(&req), release, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, release, domainerrors.NewValidationError(nonFieldErrors, "Malformed multipart form.")
	}
	req := UpdateOfferRequest{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
	}
	if raw := formValue(form, "details"); raw != nil && *raw != "" {
		if err := json.Unmarshal([]byte(*raw), &req.Details); err != nil {
			return nil, release, domainerrors.NewValidationError("details", "Expected a JSON list of offer details.")
		}
	}

	image, release, err := formFile(form, "image")
	if err != nil {
		return nil, release, err
	}

	input := newUpdateOfferInput(&req)
	input.Image = image

	return input, release, nil
}

func newUpdateOfferInput(req *UpdateOfferRequest) *usecase.UpdateOfferInput {
	input := &usecase.UpdateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Details:     make([]usecase.OfferDetailPatch, 0, len(req.Details)),
	}
	for _, detail := range req.Details {
		input.Details = append(input.Details, usecase.OfferDetailPatch{
			OfferType:          entity.OfferType(detail.OfferType),
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           detail.Features,
		})
	}

	return input
}

func (h *OfferHandler) newOfferResponse(offer *entity.Offer) OfferResponse {
	details := make([]OfferDetailResponse, 0, len(offer.Details))
	for _, detail := range offer.Details {
		details = append(details, newOfferDetailResponse(detail))
	}

	return OfferResponse{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           fileURL(h.store, offer.Image),
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         details,
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
	}
}

func (h *OfferHandler) newOfferListItem(offer *entity.Offer) OfferListItem {
	links := make([]OfferDetailLink, 0, len(offer.Details))
	for _, detail := range offer.Details {
		links = append(links, OfferDetailLink{ID: detail.ID, URL: "/offerdetails/" + detail.ID.String() + "/"})
	}

	item := OfferListItem{
		ID:              offer.ID,
		User:            offer.UserID,
		Title:           offer.Title,
		Image:           fileURL(h.store, offer.Image),
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         links,
		MinPrice:        offer.MinPrice(),
		MinDeliveryTime: offer.MinDeliveryTime(),
	}
	if offer.Owner != nil {
		item.UserDetails = &OfferUserDetails{
			FirstName: offer.Owner.FirstName,
			LastName:  offer.Owner.LastName,
			Username:  offer.Owner.Username,
		}
	}

	return item
}

func newOfferDetailResponse(detail *entity.OfferDetail) OfferDetailResponse {
	features := detail.Features
	if features == nil {
		features = []string{}
	}

	return OfferDetailResponse{
		ID:                 detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           features,
		OfferType:          detail.OfferType.String(),
	}
}
