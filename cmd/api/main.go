package main

import (
	"flag"
	"os"

	"github.com/yigit/classpoints/internal/pkg/logger"
	"github.com/yigit/classpoints/internal/server"
)

// @title Classpoints API
// @version 1.0
// @description Classroom attendance, points, store and seating API

// @host localhost:8080
// @BasePath /api
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Student session token

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the YAML config file")
	envPath := flag.String("env", ".env", "path to an optional dotenv file")
	flag.Parse()

	srv, err := server.NewServer(*configPath, *envPath)
	if err != nil {
		// Error details are logged within NewServer's setup functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
