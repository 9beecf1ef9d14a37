package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/cmd/cli/commands"
	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/clients/calendarclient"
	"github.com/jakechorley/duty-rota/pkg/clients/gmailclient"
	"github.com/jakechorley/duty-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-rota/pkg/postgres"
	"github.com/jakechorley/duty-rota/pkg/utils/logging"
)

var (
	env   string
	app   = &commands.AppContext{}
	store *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "duty",
		Short: "Duty rota CLI - schedule residence hall night duty",
		Long:  `A CLI tool for turning availability surveys into fair two-person duty schedules, publishing them and notifying caretakers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if store != nil {
				store.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.ImportCalendarCmd(app))
	rootCmd.AddCommand(commands.NotifyCmd(app))
	rootCmd.AddCommand(commands.ViewCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, clients, and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Info("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}
	app.Logger.Debug("OAuth configuration loaded successfully")

	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	// calendar and gmail share the sheets client's token
	app.Logger.Info("Initializing calendar client")
	app.CalendarClient, err = calendarclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token())
	if err != nil {
		return fmt.Errorf("failed to create calendar client: %w", err)
	}
	app.Logger.Debug("Calendar client initialized successfully")

	app.Logger.Info("Initializing gmail client")
	app.GmailClient, err = gmailclient.NewClient(app.Ctx, oauthCfg, app.SheetsClient.Token(), app.Cfg.GmailSender)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}
	app.Logger.Debug("Gmail client initialized successfully")

	app.Logger.Info("Connecting to database")
	store, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.Database = store
	app.Logger.Info("Database initialized successfully")

	return nil
}
