package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/internal/config"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/clients/sheetsclient"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store/sheetstore"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/utils/logging"
)

// InitSheetCmd creates the initSheet command. It provisions the spreadsheet
// tabs for the sheets backend: one tab per signup type with the canonical
// header row.
func InitSheetCmd(env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "initSheet",
		Short: "Create the spreadsheet tabs and header rows for the sheets backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *env == "" {
				return fmt.Errorf("--env is required")
			}

			logger, err := logging.InitLogger(*env)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer logger.Sync()

			cfg, err := config.LoadWithEnv(*env)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.StoreBackend != config.BackendSheets {
				return fmt.Errorf("initSheet only applies to the sheets backend, config uses %q", cfg.StoreBackend)
			}

			ctx := context.Background()
			client, err := sheetsclient.NewClient(ctx, cfg.GoogleCredentialsFile)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			header := make([]interface{}, len(sheetstore.Columns))
			for i, col := range sheetstore.Columns {
				header[i] = col
			}

			for signupType, tab := range cfg.Tabs() {
				logger.Info("Creating tab",
					zap.String("signup_type", string(signupType)),
					zap.String("tab", tab))

				if _, err := client.CreateSheet(cfg.SpreadsheetID, tab); err != nil {
					return fmt.Errorf("failed to create tab %q: %w", tab, err)
				}
				if err := client.AppendRow(cfg.SpreadsheetID, tab, header); err != nil {
					return fmt.Errorf("failed to write header for tab %q: %w", tab, err)
				}

				fmt.Printf("✓ Created tab %q\n", tab)
			}

			return nil
		},
	}
}
