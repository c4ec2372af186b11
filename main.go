package main

import (
	"github.com/arianafaustini/dial-tester/internal/config"
	"github.com/arianafaustini/dial-tester/internal/database"
	logger "github.com/arianafaustini/dial-tester/internal/logging"
	"github.com/arianafaustini/dial-tester/internal/repository"
	"github.com/arianafaustini/dial-tester/internal/router"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Local overrides; absence of a .env file is fine.
	_ = godotenv.Load()

	// Initialize Logger
	log, err := logger.Init(logger.DefaultOptions("."))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	db := database.Init(log)
	store := repository.NewStore(db)

	// Setup router, passing the logger and store to it
	r := router.Setup(log, store)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
