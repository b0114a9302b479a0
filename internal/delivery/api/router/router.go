// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"strings"

	"coderr/config"
	"coderr/internal/delivery/api/middleware"
	"coderr/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	ProfileHandler  *handler.ProfileHandler
	OfferHandler    *handler.OfferHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	BaseInfoHandler *handler.BaseInfoHandler
	MediaHandler    *handler.MediaHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	profileHandler  *handler.ProfileHandler
	offerHandler    *handler.OfferHandler
	orderHandler    *handler.OrderHandler
	reviewHandler   *handler.ReviewHandler
	baseInfoHandler *handler.BaseInfoHandler
	mediaHandler    *handler.MediaHandler
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		profileHandler:  params.ProfileHandler,
		offerHandler:    params.OfferHandler,
		orderHandler:    params.OrderHandler,
		reviewHandler:   params.ReviewHandler,
		baseInfoHandler: params.BaseInfoHandler,
		mediaHandler:    params.MediaHandler,
		authMiddleware:  params.AuthMiddleware,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authentication is attached per route so that unmatched paths never reach it.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.authMiddleware.Authenticate

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	e.POST("/registration", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)

	// Profile routes
	e.GET("/profile/business", r.profileHandler.ListBusinessProfiles, auth)
	e.GET("/profile/customer", r.profileHandler.ListCustomerProfiles, auth)
	e.GET("/profile/:user_id", r.profileHandler.GetProfile, auth)
	e.PATCH("/profile/:user_id", r.profileHandler.UpdateProfile, auth)

	// Offer routes, the list is public
	e.GET("/offers", r.offerHandler.ListOffers)
	e.POST("/offers", r.offerHandler.CreateOffer, auth)
	e.GET("/offers/:id", r.offerHandler.GetOffer, auth)
	e.PATCH("/offers/:id", r.offerHandler.UpdateOffer, auth)
	e.DELETE("/offers/:id", r.offerHandler.DeleteOffer, auth)
	e.GET("/offerdetails/:id", r.offerHandler.GetOfferDetail, auth)

	// Order routes, single order reads are disabled for everyone
	e.GET("/orders", r.orderHandler.ListOrders, auth)
	e.POST("/orders", r.orderHandler.CreateOrder, auth)
	e.GET("/orders/:id", r.orderHandler.GetOrder)
	e.PATCH("/orders/:id", r.orderHandler.UpdateOrder, auth)
	e.DELETE("/orders/:id", r.orderHandler.DeleteOrder, auth)
	e.GET("/order-count/:business_user_id", r.orderHandler.OrderCount, auth)
	e.GET("/completed-order-count/:business_user_id", r.orderHandler.CompletedOrderCount, auth)

	// Review routes
	e.GET("/reviews", r.reviewHandler.ListReviews, auth)
	e.POST("/reviews", r.reviewHandler.CreateReview, auth)
	e.GET("/reviews/:id", r.reviewHandler.GetReview)
	e.PATCH("/reviews/:id", r.reviewHandler.UpdateReview, auth)
	e.DELETE("/reviews/:id", r.reviewHandler.DeleteReview, auth)

	// Public statistics
	e.GET("/base-info", r.baseInfoHandler.GetBaseInfo)

	// Stored files
	e.GET(mediaRoute(r.config.Storage.MediaPath), r.mediaHandler.ServeFile)
}

func mediaRoute(mediaPath string) string {
	return "/" + strings.Trim(mediaPath, "/") + "/*"
}
