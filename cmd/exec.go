package cmd

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"seatwell/config"
	"seatwell/internal/handlers"
	"seatwell/internal/services"
	"seatwell/internal/store"
	"seatwell/monitoring"
	"seatwell/security"
	"seatwell/utils"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	marketStore, err := loadStore(cfg.FixturesPath)
	if err != nil {
		return err
	}

	// Redis backs ticket holds and rate limiting; both are off without it
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient, err = utils.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	} else {
		log.Println("REDIS_URL not set, ticket holds and rate limiting disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.RootCmd.AddCommand(newFixturesCommand(cfg))

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		logger := se.App.Logger()

		var monitor *monitoring.Monitor
		if cfg.EnableMetrics {
			monitor = monitoring.NewMonitor(marketStore, cfg.MetricsInterval, logger)
			go monitor.Run(ctx)
		}

		// Realtime fan-out
		hub := services.NewHub(monitor, logger)
		broadcaster := services.NewBroadcaster(monitor, logger)
		broadcaster.Add("websocket", hub)
		if cfg.PubNubEnabled() {
			broadcaster.Add("pubnub", services.NewPubNubPublisher(cfg))
		}

		var holdService *services.HoldService
		if redisClient != nil {
			holdService = services.NewHoldService(redisClient, cfg.TicketHoldTimeout)
		}

		// Initialize services
		authService := services.NewAuthService(marketStore, logger)
		gameService := services.NewGameService(marketStore, broadcaster, logger)
		ticketService := services.NewTicketService(marketStore, holdService, broadcaster, monitor, logger)
		transactionService := services.NewTransactionService(marketStore)
		adminService := services.NewAdminService(marketStore, cfg.Currency)
		contactService := services.NewContactService(logger)

		// Initialize handlers
		authHandler := handlers.NewAuthHandler(authService, logger)
		gameHandler := handlers.NewGameHandler(gameService, logger)
		ticketHandler := handlers.NewTicketHandler(ticketService, logger)
		transactionHandler := handlers.NewTransactionHandler(transactionService, logger)
		adminHandler := handlers.NewAdminHandler(adminService, contactService, logger)

		api := se.Router.Group("/api")
		if redisClient != nil {
			api.BindFunc(security.NewRateLimiter(redisClient, cfg.RateLimitPerMinute, logger).Middleware)
		}

		// Auth and user endpoints
		api.POST("/auth/login", authHandler.Login)
		api.GET("/users", authHandler.ListUsers)
		api.POST("/users", authHandler.Register)

		// Game endpoints
		api.GET("/games", gameHandler.ListGames)
		api.POST("/games", gameHandler.CreateGame)
		api.GET("/games/{id}", gameHandler.GetGame)
		api.PATCH("/games/{id}", gameHandler.UpdateGame)
		api.DELETE("/games/{id}", gameHandler.DeleteGame)

		// Ticket endpoints
		api.GET("/tickets", ticketHandler.ListTickets)
		api.POST("/tickets", ticketHandler.CreateTicket)
		api.GET("/tickets/game/{gameId}", ticketHandler.TicketsByGame)
		api.GET("/tickets/seller/{sellerId}", ticketHandler.TicketsBySeller)
		api.GET("/tickets/{id}", ticketHandler.GetTicket)
		api.PATCH("/tickets/{id}", ticketHandler.UpdateTicket)
		api.POST("/tickets/{id}/purchase", ticketHandler.PurchaseTicket)
		api.POST("/tickets/{id}/hold", ticketHandler.HoldTicket)
		api.DELETE("/tickets/{id}/hold", ticketHandler.ReleaseTicket)

		// Transaction endpoints
		api.GET("/transactions", transactionHandler.ListTransactions)
		api.GET("/transactions/{id}", transactionHandler.GetTransaction)

		// Admin and contact endpoints
		api.GET("/admin/stats", adminHandler.GetStats)
		api.POST("/contact", adminHandler.SubmitContact)

		// Market feed
		api.GET("/ws", apis.WrapStdHandler(hub))

		if cfg.EnableMetrics {
			se.Router.GET("/metrics", apis.WrapStdHandler(promhttp.Handler()))
		}

		// Health check
		se.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(e.Request.Context(), redisClient); err != nil {
					return e.JSON(http.StatusServiceUnavailable, map[string]string{
						"status": "unhealthy",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return se.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

// loadStore seeds the marketplace from path, or from the embedded fixtures
// when path is empty.
func loadStore(path string) (*store.Store, error) {
	if path == "" {
		return store.NewSeeded()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return store.NewFromFixtures(data)
}

// handleShutdown stops background collectors on SIGINT or SIGTERM
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
