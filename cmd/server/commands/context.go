package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/samuelmholley1/ukiahumc-signups/internal/config"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/coordinate"
	"github.com/samuelmholley1/ukiahumc-signups/pkg/store"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg         *config.Config
	Store       store.SignupStore
	Coordinator *coordinate.Coordinator
	Logger      *zap.Logger
	Ctx         context.Context

	// closeStore releases backend resources (pgx pool for the postgres
	// backend, nothing for sheets).
	closeStore func()
}

// Close releases any resources held by the store backend.
func (a *AppContext) Close() {
	if a.closeStore != nil {
		a.closeStore()
	}
}
