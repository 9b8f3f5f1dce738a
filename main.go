package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jurnalku_backend/internals/configs"
	database "jurnalku_backend/internals/databases"
	ascore "jurnalku_backend/internals/features/evaluation/assessments/service"
	middlewares "jurnalku_backend/internals/middlewares"
	routes "jurnalku_backend/internals/route"
)

var (
	// Global flags
	logLevel string

	cfg    configs.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "jurnalku",
	Short: "Jurnalku - layanan evaluasi dan akreditasi jurnal",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = configs.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		var err error
		logger, err = configs.NewLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Jalankan HTTP admin API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug|info|warn|error (default: LOG_LEVEL)")
	serveCmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "jalankan AutoMigrate sebelum listen")
	rootCmd.AddCommand(serveCmd, dbMigrateCmd, migrateLegacyCmd, seedTemplateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB: connect + pool, dipakai semua subcommand.
func openDB() (*gorm.DB, error) {
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	policy, err := ascore.ParseTextScoringPolicy(cfg.TextScoringPolicy)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if autoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	middlewares.SetupMiddlewares(app, logger, middlewares.Options{
		Origins:        cfg.CorsOrigins,
		RatePerMinute:  cfg.RatePerMinute,
		RequestTimeout: 5 * time.Second,
	})
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	routes.SetupRoutes(app, db, routes.Options{Log: logger, TextPolicy: policy})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Port), zap.String("text_scoring", string(policy)))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}
