package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apython1998/ultistats/internal/api"
	"github.com/apython1998/ultistats/internal/config"
	"github.com/apython1998/ultistats/internal/database"
	"github.com/apython1998/ultistats/internal/logger"
	"github.com/apython1998/ultistats/internal/monitoring"
	"github.com/apython1998/ultistats/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init()

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply database migrations: %v", err)
	}

	// Set up services
	userService := services.NewUserService(db)
	teamService := services.NewTeamService(db)
	playerService := services.NewPlayerService(db)
	tournamentService := services.NewTournamentService(db)
	gameService := services.NewGameService(db)
	statService := services.NewStatService(db)

	// Set up and run the background token sweeper
	sweeper, err := monitoring.NewTokenSweeper(userService, cfg.TokenSweepInterval)
	if err != nil {
		log.Fatalf("Invalid token sweep interval: %v", err)
	}
	go sweeper.Run()

	// Set up router
	router := api.NewRouter(userService, teamService, playerService, tournamentService, gameService, statService)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
