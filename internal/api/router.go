// Package api wires the HTTP surface: router, middleware stack and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/papertrade/stock-trading-backend/internal/api/handlers"
	custommiddleware "github.com/papertrade/stock-trading-backend/internal/api/middleware"
	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/config"
	"github.com/papertrade/stock-trading-backend/internal/repository"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

// Services bundles the service dependencies of the router.
type Services struct {
	System     *service.SystemService
	User       *service.UserService
	Stock      *service.StockService
	Trade      *service.TradeService
	Portfolio  *service.PortfolioService
	Dashboard  *service.DashboardService
	Simulation *service.SimulationService
	Chat       *service.ChatService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, sessions *auth.SessionManager, userRepo *repository.UserRepository, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// Session resolution runs on every request; individual routes opt into
	// RequireUser.
	authMiddleware := custommiddleware.NewAuth(sessions, userRepo)
	r.Use(authMiddleware.WithUser)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svcs.User, sessions)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/stocks", func(r chi.Router) {
			stockHandler := handlers.NewStockHandler(svcs.Stock)
			r.Get("/", stockHandler.ListStocks)
			r.Get("/{ticker}", stockHandler.GetStock)

			// Catalog mutation requires a session.
			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.RequireUser)
				r.Post("/", stockHandler.CreateStock)
				r.Put("/{ticker}", stockHandler.UpdateStock)
				r.Delete("/{ticker}", stockHandler.DeleteStock)
			})
		})

		r.Route("/trades", func(r chi.Router) {
			r.Use(custommiddleware.RequireUser)
			tradeHandler := handlers.NewTradeHandler(svcs.Trade)
			r.Get("/", tradeHandler.ListTrades)
			r.Post("/", tradeHandler.CreateTrade)
			r.Get("/{uuid}", tradeHandler.GetTrade)
			r.Put("/{uuid}", tradeHandler.UpdateTrade)
			r.Delete("/{uuid}", tradeHandler.DeleteTrade)
		})

		portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio, svcs.Dashboard)
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireUser)
			r.Get("/portfolio", portfolioHandler.GetPortfolio)
			r.Get("/dashboard", portfolioHandler.GetDashboard)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.RequireUser)
			adminHandler := handlers.NewAdminHandler(svcs.Simulation)
			r.Post("/simulate/random", adminHandler.SimulateRandom)
			r.Post("/simulate/crash", adminHandler.SimulateCrash)
			r.Post("/simulate/rally", adminHandler.SimulateRally)
		})

		r.Route("/chat", func(r chi.Router) {
			chatHandler := handlers.NewChatHandler(svcs.Chat)
			r.Post("/", chatHandler.SendMessage)
			r.Get("/history", chatHandler.History)
			r.Post("/clear", chatHandler.Clear)
		})
	})

	return r
}
