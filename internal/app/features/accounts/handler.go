// internal/app/features/accounts/handler.go
package accounts

import (
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the accounts feature:
// registration, login, token refresh, and the current-user endpoint.
type Handler struct {
	DB   *mongo.Database
	Log  *zap.Logger
	Auth *auth.Manager
}

// NewHandler constructs an accounts Handler. Called from bootstrap
// BuildHandler once DB, logger, and auth manager exist.
func NewHandler(db *mongo.Database, logger *zap.Logger, authMgr *auth.Manager) *Handler {
	return &Handler{DB: db, Log: logger, Auth: authMgr}
}

const dbTimeout = 5 * time.Second
