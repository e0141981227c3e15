package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"table-reconciler/core/config"
	"table-reconciler/core/database"
	"table-reconciler/core/loader"
	"table-reconciler/core/logger"
	"table-reconciler/core/middleware/auth"
	"table-reconciler/core/middleware/rayid"
	"table-reconciler/core/storage"

	"table-reconciler/feature/comparison"
	"table-reconciler/feature/integrity"
	"table-reconciler/feature/session"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the reconciliation server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// 3. Database session. The configured database is adopted when
		// reachable; clients can connect elsewhere through /api/connect.
		sessions := session.NewService(cfg.Database, cfg.Server.IdleTimeout(), logg)
		if db, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			sessions.Adopt(db)
			logg.Info("Connected to reference database",
				zap.String("host", cfg.Database.Host),
				zap.String("database", cfg.Database.Name))
		}
		go sessions.Run(ctx)

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			logg.Fatal("Failed to prepare storage bucket", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		// 6. Register Features
		comparisons := comparison.NewFeature(store, cfg.Storage.Bucket, sessions, cfg.Reconcile, logg)
		mgr := loader.NewManager()
		mgr.Register(session.NewFeature(sessions))
		mgr.Register(comparisons)
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Storage.Region, sessions, cfg.Database.Timeout(), logg))

		// RayID must be first to trace everything.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: []string{"/api/heartbeat"}}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		logg.Info("Shutting down server...")

		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cleanupCancel()
		if err := comparisons.Shutdown(cleanupCtx); err != nil {
			logg.Warn("Failed to clear stored uploads and results", zap.Error(err))
		}
		if err := sessions.Close(); err != nil {
			logg.Warn("Failed to close database session", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
