package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/squirtledeb/oneplaygameupdatebot/bot"
	"github.com/squirtledeb/oneplaygameupdatebot/config"
	"github.com/squirtledeb/oneplaygameupdatebot/database"
	"github.com/squirtledeb/oneplaygameupdatebot/events"
	"github.com/squirtledeb/oneplaygameupdatebot/repository"
	"github.com/squirtledeb/oneplaygameupdatebot/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting game update bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus
	log.Println("Initializing event bus...")
	eventBus := events.NewBus()
	log.Println("Event bus initialized successfully")

	// Initialize unit of work factory
	log.Println("Initializing unit of work factory...")
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	log.Println("Unit of work factory initialized successfully")

	// Initialize services
	log.Println("Initializing services...")
	settingsService := service.NewGuildSettingsService(uowFactory)
	authorizer := service.NewAuthorizationGate(settingsService)
	registry := service.NewRequestRegistry()
	log.Println("Services initialized successfully")

	// Initialize Discord session and the transport the request service
	// publishes through
	log.Println("Initializing Discord bot...")
	session, err := bot.NewSession(cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	transport := bot.NewSessionTransport(session)
	requestService := service.NewUpdateRequestService(settingsService, authorizer, registry, transport, eventBus)

	discordBot, err := bot.New(session, settingsService, requestService, authorizer, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Keep-alive endpoint for hosting platforms that ping the process
	httpServer := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Discord Bot is running!")
		}),
	}
	go func() {
		log.Printf("Keep-alive server listening on port %d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Keep-alive server error: %v", err)
		}
	}()

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	// Close Discord bot connection
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down keep-alive server: %v", err)
	}

	// Close database connection
	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
