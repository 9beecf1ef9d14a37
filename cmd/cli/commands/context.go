package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-rota/internal/config"
	"github.com/jakechorley/duty-rota/pkg/clients/calendarclient"
	"github.com/jakechorley/duty-rota/pkg/clients/gmailclient"
	"github.com/jakechorley/duty-rota/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-rota/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg            *config.Config
	SheetsClient   *sheetsclient.Client
	CalendarClient *calendarclient.Client
	GmailClient    *gmailclient.Client
	Database       db.Database
	Logger         *zap.Logger
	Ctx            context.Context
}
