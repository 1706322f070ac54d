// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CartHandler    *handler.CartHandler
	OfferHandler   *handler.OfferHandler
	OrderHandler   *handler.OrderHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	cartHandler    *handler.CartHandler
	offerHandler   *handler.OfferHandler
	orderHandler   *handler.OrderHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		cartHandler:    params.CartHandler,
		offerHandler:   params.OfferHandler,
		orderHandler:   params.OrderHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Everything below requires a valid access token
	cartGroup := api.Group("/cart", r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/sync", r.cartHandler.SyncCart)
		cartGroup.POST("/add", r.cartHandler.AddItem)
		cartGroup.PUT("/update", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/remove", r.cartHandler.RemoveItem)
		cartGroup.DELETE("/clear", r.cartHandler.ClearCart)
		cartGroup.POST("/validate", r.cartHandler.ValidateCart)
	}

	offersGroup := api.Group("/offers", r.authMiddleware.Authenticate)
	{
		offersGroup.POST("/apply", r.offerHandler.ApplyOffer)
	}

	paymentGroup := api.Group("/payment", r.authMiddleware.Authenticate)
	{
		paymentGroup.POST("/create", r.orderHandler.CreateOrder)
		paymentGroup.POST("/verify", r.orderHandler.VerifyPayment)
	}

	ordersGroup := api.Group("/orders", r.authMiddleware.Authenticate)
	{
		ordersGroup.POST("/confirm", r.orderHandler.ConfirmOrder)
		ordersGroup.GET("/track/:orderId", r.orderHandler.GetTracking)

		// Admin listing
		ordersGroup.GET("", r.orderHandler.ListOrders, r.authMiddleware.RequireRole(entity.RoleAdmin))
	}
}
