// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fetcher adapts the store to auth.UserFetcher so the middleware can
// re-read the user row on every authenticated request.
type Fetcher struct {
	store *Store
}

// NewFetcher builds a Fetcher over the users collection.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{store: New(db)}
}

func (f *Fetcher) FetchUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return f.store.GetByID(ctx, id)
}
