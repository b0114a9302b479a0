package handler

import (
	"net/http"

	"coderr/internal/delivery/api/response"
	"coderr/internal/errors"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BaseInfoHandlerParams holds dependencies for BaseInfoHandler, injected by Fx.
type BaseInfoHandlerParams struct {
	fx.In

	StatsUC usecase.StatsUsecase
}

// BaseInfoHandler serves the public platform statistics.
type BaseInfoHandler struct {
	statsUC usecase.StatsUsecase
}

// NewBaseInfoHandler is the constructor for BaseInfoHandler.
func NewBaseInfoHandler(params BaseInfoHandlerParams) *BaseInfoHandler {
	return &BaseInfoHandler{statsUC: params.StatsUC}
}

// BaseInfoResponse is the representation of the platform statistics.
type BaseInfoResponse struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

// GetBaseInfo handles GET /base-info.
func (h *BaseInfoHandler) GetBaseInfo(c echo.Context) error {
	info, err := h.statsUC.GetBaseInfo(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, BaseInfoResponse{
		ReviewCount:          info.ReviewCount,
		AverageRating:        info.AverageRating,
		BusinessProfileCount: info.BusinessProfileCount,
		OfferCount:           info.OfferCount,
	})
}
