package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mods-merger/core/config"
	"mods-merger/core/loader"
	"mods-merger/core/logger"
	"mods-merger/core/middleware/auth"
	"mods-merger/core/middleware/rayid"
	"mods-merger/feature/merging"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mods-merger/docs/swagger"
)

// @title Mods Merger API
// @version 1.0
// @description API for merging mod assets against a vanilla reference.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the merge HTTP server",
	Long:  `Starts the HTTP server exposing merge runs and the audit history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		// 3. Merge service with optional storage and audit database
		svc, err := newService(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(merging.NewFeature(svc))

		// RayID first so every log line carries it
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

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
