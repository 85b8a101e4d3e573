// internal/app/features/tasks/handler.go
package tasks

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the tasks feature.
// Strict switches task mutations from member-wide to
// creator/owner/admin-only.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Strict bool
}

// NewHandler constructs a tasks Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, strict bool) *Handler {
	return &Handler{DB: db, Log: logger, Strict: strict}
}

const dbTimeout = 5 * time.Second
