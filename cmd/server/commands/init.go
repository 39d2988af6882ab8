package commands

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/internal/config"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/clients/gmailclient"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/clients/sheetsclient"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/coordinate"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/notify"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/slotcache"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store/pgstore"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store/sheetstore"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/utils/logging"
)

// InitApp sets up logger, config, clients, store, and coordinator.
func InitApp(app *AppContext, env string) error {
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

	app.Store, app.closeStore, err = initStore(app.Ctx, app.Cfg, app.Logger)
	if err != nil {
		return err
	}

	app.Logger.Info("Initializing gmail client", zap.String("sender", app.Cfg.GmailSender))
	gmail, err := gmailclient.NewClient(app.Ctx, app.Cfg.GoogleCredentialsFile, app.Cfg.GmailSender)
	if err != nil {
		return fmt.Errorf("failed to create gmail client: %w", err)
	}

	routing := notify.Routing{
		OperatorEmail:        app.Cfg.OperatorEmail,
		OperatorDomain:       app.Cfg.OperatorDomain,
		FoodCoordinatorEmail: app.Cfg.FoodCoordinatorEmail,
		FromName:             app.Cfg.FromName,
	}

	cache := slotcache.New(time.Duration(app.Cfg.CacheTTLMinutes) * time.Minute)
	app.Coordinator = coordinate.New(app.Store, cache, notify.NewGmailDispatcher(gmail), routing, app.Logger)
	app.Logger.Info("Coordinator initialized",
		zap.String("backend", app.Cfg.StoreBackend),
		zap.Int("cache_ttl_minutes", app.Cfg.CacheTTLMinutes))

	return nil
}

func initStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.SignupStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSheets:
		logger.Info("Initializing sheets store", zap.String("spreadsheet_id", cfg.SpreadsheetID))
		client, err := sheetsclient.NewClient(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		return sheetstore.New(client, cfg.SpreadsheetID, cfg.Tabs()), func() {}, nil

	case config.BackendPostgres:
		logger.Info("Initializing postgres store")
		pg, err := pgstore.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := pg.RunMigrations(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return pg, pg.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
