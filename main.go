package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"sistema-fardamentos/app"
	"sistema-fardamentos/db"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			logger.Warn().Msg(".env file not found, using system environment variables")
		} else {
			logger.Info().Msg("Loaded environment variables from .env")
		}
	}

	// Initialize application
	if err := app.Initialize(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer db.CloseDB()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if len(port) > 0 && port[0] == ':' {
		port = port[1:]
	}
	addr := "0.0.0.0:" + port
	logger.Info().Msgf("🏫 Sistema de fardamentos listening on %s", addr)

	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
