// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. TaskHub
// is a pure JSON API, so there are no templates or caches to warm; the hook
// exists so there is an obvious place to add that work later.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.StrictResourceOwnership {
		logger.Info("strict resource ownership enabled")
	}
	return nil
}
