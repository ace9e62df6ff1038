package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/cyclecal/internal/api"
	"github.com/terraincognita07/cyclecal/internal/cli"
	"github.com/terraincognita07/cyclecal/internal/config"
	"github.com/terraincognita07/cyclecal/internal/db"
	"github.com/terraincognita07/cyclecal/internal/logging"
	"github.com/terraincognita07/cyclecal/internal/security"
	"github.com/terraincognita07/cyclecal/internal/services"
	"go.uber.org/zap"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

var configFile string

var rootCmd = &cobra.Command{
	Use:           "cyclecal",
	Short:         "Cycle tracking calendar server",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

var resetEmail string

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a temporary password for an account",
	RunE:  runResetPassword,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE:  runMigrate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)

	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "Account email")
	_ = resetPasswordCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(resetPasswordCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadRuntime() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Connect(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	applied, err := db.ApplyMigrations(database)
	if err != nil {
		return err
	}
	logger.Info("migrations up to date", zap.String("db", cfg.DBPath), zap.Strings("applied", applied))
	return nil
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	auth := services.NewAuthService(db.NewUserRepository(database))
	return cli.RunResetPassword(cmd.Context(), auth, cmd.OutOrStdout(), resetEmail)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	secretKey, err := resolveSecretKey(cfg.SecretKey, logger)
	if err != nil {
		return err
	}

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(db.NewRepositories(database), api.HandlerConfig{
		SecretKey:       []byte(secretKey),
		CookieSecure:    cfg.CookieSecure,
		Location:        cfg.Location,
		WeekStart:       cfg.WeekStart,
		ClassifierScope: cfg.ClassifierScope,
		HorizonCycles:   cfg.HorizonCycles,
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := api.NewApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("cyclecal listening",
		zap.String("addr", "0.0.0.0:"+cfg.Port),
		zap.String("db", cfg.DBPath),
		zap.String("tz", cfg.Location.String()),
		zap.String("classifier_scope", string(cfg.ClassifierScope)),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

// resolveSecretKey generates a throwaway key when none is configured, so
// sessions do not survive a restart in that mode.
func resolveSecretKey(configured string, logger *zap.Logger) (string, error) {
	secret := strings.TrimSpace(configured)
	if secret == "" {
		generated, err := security.GenerateSecret(security.DefaultSecretLength)
		if err != nil {
			return "", fmt.Errorf("generate secret key: %w", err)
		}
		logger.Warn("auth.secret_key is not set; using an ephemeral key, sessions end on restart")
		return generated, nil
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", errors.New("auth.secret_key uses an insecure placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("auth.secret_key must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}
