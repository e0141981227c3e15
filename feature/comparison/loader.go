package comparison

import (
	"context"

	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new comparison feature.
func NewFeature(client storage.Client, bucket string, db DBProvider, cfg reconcile.Config, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, db, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "comparison"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Shutdown deletes the stored uploads and results.
func (f *Feature) Shutdown(ctx context.Context) error {
	return f.service.Clear(ctx)
}
