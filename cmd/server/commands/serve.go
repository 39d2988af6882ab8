package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/internal/server"
)

// ServeCmd creates the serve command
func ServeCmd(app *AppContext, env *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the signup HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if *env == "" {
				return fmt.Errorf("--env is required")
			}
			if err := InitApp(app, *env); err != nil {
				return err
			}
			defer app.Close()
			defer app.Logger.Sync()

			srv := server.New(app.Coordinator, app.Logger)
			app.Logger.Info("Listening", zap.String("addr", app.Cfg.ListenAddr))
			return srv.Router().Run(app.Cfg.ListenAddr)
		},
	}
}
