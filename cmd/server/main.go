package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/papertrade/stock-trading-backend/internal/api"
	"github.com/papertrade/stock-trading-backend/internal/auth"
	"github.com/papertrade/stock-trading-backend/internal/config"
	"github.com/papertrade/stock-trading-backend/internal/database"
	"github.com/papertrade/stock-trading-backend/internal/repository"
	"github.com/papertrade/stock-trading-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Session tokens
	sessions, err := auth.NewSessionManager(cfg.Auth.SessionKey, cfg.Auth.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}
	if cfg.Auth.SessionKey == "" {
		log.Println("SESSION_KEY not set, using an ephemeral key; sessions will not survive restarts")
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	stockRepo := repository.NewStockRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	chatRepo := repository.NewChatRepository(db)

	// Assistant backend; nil keeps the chat endpoints on fallback replies
	var responder service.Responder
	if cfg.Gemini.APIKey != "" {
		gemini, err := service.NewGeminiResponder(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("Failed to initialize assistant: %v", err)
		}
		responder = gemini
		log.Printf("Assistant enabled with model %s", cfg.Gemini.Model)
	} else {
		log.Println("GEMINI_API_KEY not set, assistant will serve fallback responses")
	}

	// Create services
	systemService := service.NewSystemService(db)
	userService := service.NewUserService(userRepo)
	stockService := service.NewStockService(stockRepo)
	tradeService := service.NewTradeService(tradeRepo, stockRepo)
	portfolioService := service.NewPortfolioService(tradeRepo, stockRepo)
	dashboardService := service.NewDashboardService(portfolioService, stockRepo, tradeRepo)
	simulationService := service.NewSimulationService(stockRepo, rand.NewSource(time.Now().UnixNano()))
	chatService := service.NewChatService(chatRepo, stockRepo, tradeRepo, portfolioService, responder)

	// Optional scheduled market tick
	if cfg.Simulator.Schedule != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Simulator.Schedule, func() {
			if _, err := simulationService.SimulateRandom(cfg.Simulator.Volatility, 0); err != nil {
				log.Printf("Scheduled simulation failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid SIM_SCHEDULE: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Printf("Price simulation scheduled: %s", cfg.Simulator.Schedule)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		User:       userService,
		Stock:      stockService,
		Trade:      tradeService,
		Portfolio:  portfolioService,
		Dashboard:  dashboardService,
		Simulation: simulationService,
		Chat:       chatService,
	}, sessions, userRepo, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
