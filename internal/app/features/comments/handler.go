// internal/app/features/comments/handler.go
package comments

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the comments feature.
// Strict limits comment mutations to the author and project
// owner/admins.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Strict bool
}

// NewHandler constructs a comments Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, strict bool) *Handler {
	return &Handler{DB: db, Log: logger, Strict: strict}
}

const dbTimeout = 5 * time.Second
