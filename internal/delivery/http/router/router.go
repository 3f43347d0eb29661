// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"atelier/internal/delivery/http/middleware"
	"atelier/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds all handlers and middleware, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	CatalogHandler *handler.CatalogHandler
	ReviewHandler  *handler.ReviewHandler
	CartHandler    *handler.CartHandler
	OrderHandler   *handler.OrderHandler
	AdminHandler   *handler.AdminHandler
	WebhookHandler *handler.WebhookHandler
	Session        *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	catalogHandler *handler.CatalogHandler
	reviewHandler  *handler.ReviewHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler
	webhookHandler *handler.WebhookHandler
	session        *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		catalogHandler: params.CatalogHandler,
		reviewHandler:  params.ReviewHandler,
		cartHandler:    params.CartHandler,
		orderHandler:   params.OrderHandler,
		adminHandler:   params.AdminHandler,
		webhookHandler: params.WebhookHandler,
		session:        params.Session,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	// Session resolution runs on every /api route; the guards below decide
	// which ones anonymous callers may reach.
	api.Use(r.session.Resolve)

	// Public routes
	api.POST("/register", r.authHandler.Register)
	api.POST("/login", r.authHandler.Login)
	api.POST("/logout", r.authHandler.Logout)
	api.GET("/verify-email", r.authHandler.VerifyEmail)
	api.GET("/products", r.catalogHandler.ListProducts)
	// The route param doubles as the product slug; echo needs one param name
	// per path segment and the reviews routes key on the numeric id.
	api.GET("/products/:id", r.catalogHandler.GetProduct)
	api.GET("/products/:id/reviews", r.reviewHandler.ListReviews)
	api.GET("/categories", r.catalogHandler.ListCategories)
	api.POST("/webhooks/payment", r.webhookHandler.HandlePaymentEvent)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(r.session.RequireAuthenticated)
	{
		authed.GET("/user", r.authHandler.Me)
		authed.PATCH("/user/profile", r.authHandler.UpdateProfile)
		authed.POST("/user/change-password", r.authHandler.ChangePassword)
		authed.POST("/user/request-verification", r.authHandler.RequestVerification)

		authed.GET("/cart", r.cartHandler.GetCart)
		authed.PUT("/cart", r.cartHandler.ReplaceCart)
		authed.DELETE("/cart", r.cartHandler.ClearCart)

		authed.POST("/checkout", r.orderHandler.Checkout)
		authed.GET("/orders", r.orderHandler.ListOwnOrders)

		authed.POST("/products/:id/reviews", r.reviewHandler.CreateReview)
		authed.PATCH("/reviews/:id", r.reviewHandler.UpdateReview)
		authed.DELETE("/reviews/:id", r.reviewHandler.DeleteReview)
	}

	// Designer-or-admin routes
	designer := api.Group("/designer")
	designer.Use(r.session.RequireDesignerOrAdmin)
	{
		designer.POST("/products", r.catalogHandler.CreateProduct)
		designer.PATCH("/products/:id", r.catalogHandler.UpdateProduct)
		designer.DELETE("/products/:id", r.catalogHandler.DeleteProduct)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(r.session.RequireAdmin)
	{
		admin.GET("/orders", r.orderHandler.ListAllOrders)
		admin.PATCH("/orders/:id/status", r.orderHandler.UpdateStatus)
		admin.PATCH("/orders/:id/payment", r.orderHandler.UpdatePaymentStatus)
		admin.DELETE("/orders/:id", r.orderHandler.DeleteOrder)

		admin.GET("/users", r.adminHandler.ListUsers)
		admin.GET("/users/:id", r.adminHandler.GetUser)
		admin.PATCH("/users/:id", r.adminHandler.UpdateUser)
		admin.DELETE("/users/:id/force-delete", r.adminHandler.ForceDeleteUser)

		admin.GET("/settings", r.adminHandler.ListSettings)
		admin.PUT("/settings", r.adminHandler.UpsertSettings)

		admin.POST("/categories", r.catalogHandler.CreateCategory)
		admin.PATCH("/categories/:id", r.catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", r.catalogHandler.DeleteCategory)
	}
}
