package container

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joshua-takyi/rendez/internal/config"
	"github.com/joshua-takyi/rendez/internal/helpers"
	"github.com/joshua-takyi/rendez/internal/models"
	"github.com/joshua-takyi/rendez/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	MongoDBClient  *mongo.Client
	EventService   *services.EventService
	GeocodeService *services.GeocodeService
	ValidateToken  helpers.TokenValidator
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	validateToken helpers.TokenValidator,
) (*Container, error) {
	repo := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)
	events, err := repo.EventCollection()
	if err != nil {
		return nil, fmt.Errorf("failed to open events collection: %w", err)
	}

	if cfg.GoogleMapsAPIKey == "" {
		logger.Warn("GOOGLE_MAPS_API_KEY is not set; geocoding requests will be rejected by the provider")
	}

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		EventService:   services.NewEventService(events, logger),
		GeocodeService: services.NewGeocodeService(cfg.GoogleMapsAPIKey, http.DefaultClient),
		ValidateToken:  validateToken,
	}, nil
}
