package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ecemedico/ece/internal/config"
	"github.com/ecemedico/ece/internal/domain/appointment"
	"github.com/ecemedico/ece/internal/domain/laborder"
	"github.com/ecemedico/ece/internal/domain/patient"
	"github.com/ecemedico/ece/internal/domain/practitioner"
	"github.com/ecemedico/ece/internal/domain/prescription"
	"github.com/ecemedico/ece/internal/domain/user"
	"github.com/ecemedico/ece/internal/domain/visit"
	"github.com/ecemedico/ece/internal/platform/auth"
	"github.com/ecemedico/ece/internal/platform/db"
	"github.com/ecemedico/ece/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ece-server",
		Short: "ECE Médico clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", db.HealthHandler(pool))

	// Services
	patientSvc := patient.NewService(patient.NewRepo(pool))
	practitionerSvc := practitioner.NewService(practitioner.NewRepo(pool))
	visitSvc := visit.NewService(visit.NewRepo(pool), patientSvc)
	prescriptionSvc := prescription.NewService(prescription.NewRepo(pool), patientSvc, practitionerSvc)
	labSvc := laborder.NewService(laborder.NewRepo(pool), patientSvc, practitionerSvc)
	appointmentSvc := appointment.NewService(appointment.NewRepo(pool), patientSvc, practitionerSvc)
	userSvc := user.NewService(user.NewRepo(pool), []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTL)*time.Minute)

	userHandler := user.NewHandler(userSvc)

	// Login stays outside the authenticated group.
	public := e.Group("/api")
	userHandler.RegisterPublicRoutes(public)

	api := e.Group("/api")
	if cfg.IsDev() {
		logger.Warn().Msg("development mode: requests run as an admin dev user")
		api.Use(auth.DevAuthMiddleware())
	} else {
		api.Use(auth.JWTMiddleware([]byte(cfg.JWTSecret)))
	}

	patient.NewHandler(patientSvc).RegisterRoutes(api)
	practitioner.NewHandler(practitionerSvc).RegisterRoutes(api)
	visit.NewHandler(visitSvc).RegisterRoutes(api)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(api)
	laborder.NewHandler(labSvc).RegisterRoutes(api)
	appointment.NewHandler(appointmentSvc).RegisterRoutes(api)
	userHandler.RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
