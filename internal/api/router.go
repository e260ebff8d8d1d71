package api

import (
	"net/http"

	"github.com/florimart/florimart/internal/api/handlers"
	"github.com/florimart/florimart/internal/api/middleware"
	"github.com/florimart/florimart/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	orderHandler := handlers.NewOrderHandler(services.Order, services.Access)
	flowerHandler := handlers.NewFlowerHandler(services.Flower, services.Access)
	sellerHandler := handlers.NewSellerHandler(services.Flower, services.Order, services.Access)
	userHandler := handlers.NewUserHandler(services.User)
	adminHandler := handlers.NewAdminHandler(services.Admin, services.User, services.Flower, services.Order, services.Access)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Post("/check-token", authHandler.CheckToken)
			})
		})

		// Public catalog routes
		r.Route("/flowers", func(r chi.Router) {
			r.Get("/", flowerHandler.List)
			r.Get("/types", flowerHandler.ListTypes)
			r.Get("/seasons", flowerHandler.ListSeasons)
			r.Get("/usages", flowerHandler.ListUsages)
			r.Get("/countries", flowerHandler.ListCountries)

			// Lookup table management (seller or admin)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Token))
				r.Post("/types", flowerHandler.CreateType)
				r.Delete("/types/{id}", flowerHandler.DeleteType)
				r.Post("/seasons", flowerHandler.CreateSeason)
				r.Delete("/seasons/{id}", flowerHandler.DeleteSeason)
				r.Post("/usages", flowerHandler.CreateUsage)
				r.Delete("/usages/{id}", flowerHandler.DeleteUsage)
				r.Post("/countries", flowerHandler.CreateCountry)
				r.Delete("/countries/{id}", flowerHandler.DeleteCountry)
			})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(services.Token))

			// Buyer order routes
			r.Route("/orders", func(r chi.Router) {
				r.Post("/", orderHandler.Create)
				r.Get("/", orderHandler.ListMine)
				r.Get("/{id}", orderHandler.Get)
			})

			// Seller routes
			r.Route("/seller", func(r chi.Router) {
				r.Post("/flowers", sellerHandler.AddFlower)
				r.Put("/flowers/{id}", sellerHandler.UpdateFlower)
				r.Delete("/flowers/{id}", sellerHandler.DeleteFlower)
				r.Get("/orders", sellerHandler.Orders)
				r.Put("/orders/status", sellerHandler.ToggleOrderStatus)
			})

			// Profile routes
			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)
				r.Put("/me", userHandler.UpdateMe)
				r.Put("/me/password", userHandler.UpdatePassword)
			})

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Post("/users", adminHandler.CreateUser)
				r.Get("/users", adminHandler.ListUsers)
				r.Put("/users/{id}", adminHandler.UpdateUser)
				r.Delete("/users/{id}", adminHandler.DeleteUser)
				r.Post("/flowers", adminHandler.AddFlower)
				r.Get("/orders", adminHandler.Orders)
			})
		})
	})

	return r
}
