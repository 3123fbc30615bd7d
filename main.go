package main

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"cognicare-go/internal/config"
	"cognicare-go/internal/content"
	"cognicare-go/internal/database"
	"cognicare-go/internal/event"
	"cognicare-go/internal/handlers"
	logger "cognicare-go/internal/logging"
	"cognicare-go/internal/models"
	"cognicare-go/internal/report"
	"cognicare-go/internal/router"
	"cognicare-go/internal/store"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize the document store
	db, err := database.Init(context.Background(), log)
	if err != nil {
		log.Fatal("Failed to connect to document store", zap.Error(err))
	}
	docs := store.NewMongoStore(db)

	// Load level content at startup
	library, err := models.LoadContentLibrary(config.Conf.Content.Path)
	if err != nil {
		log.Fatal("Failed to load level content", zap.Error(err))
	}
	provider := content.NewLibraryProvider(library, rand.New(rand.NewSource(time.Now().UnixNano())))

	// Optional telemetry event publisher
	var publisher *event.Publisher
	if config.Conf.AMQP.URI != "" {
		publisher, err = event.NewPublisher(config.Conf.AMQP.URI, config.Conf.AMQP.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to event broker", zap.Error(err))
		}
		defer publisher.Close()
	} else {
		log.Info("Event broker not configured, telemetry events will not be published")
	}

	telemetry := store.NewTelemetryStore(docs, log)
	reports := report.NewService(docs, log)

	sessionHandler := handlers.NewSessionHandler(log, provider, telemetry, publisher)
	reportHandler := handlers.NewReportHandler(log, reports)
	identityHandler := handlers.NewIdentityHandler(log)

	r := router.Setup(log, sessionHandler, reportHandler, identityHandler)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
