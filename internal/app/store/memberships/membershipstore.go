// internal/app/store/memberships/membershipstore.go
package membershipstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/taskhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:     db.Collection("memberships"),
		users: db.Collection("users"),
	}
}

var (
	errBadRole = errors.New(`role must be "ADMIN" or "MEMBER"`)

	// ErrDuplicateMembership is surfaced when (project, user) already
	// has a row; the unique index catches the concurrent case too.
	ErrDuplicateMembership = errors.New("user is already a member of this project")

	// ErrUserNotFound is returned when the target user id does not
	// resolve to a user record.
	ErrUserNotFound = errors.New("user not found")
)

// Add creates a membership after verifying the target user exists and
// the role is valid. Uniqueness of (project_id, user_id) is enforced by
// the index, so a concurrent duplicate add comes back as
// ErrDuplicateMembership rather than a second row.
func (s *Store) Add(ctx context.Context, projectID, userID primitive.ObjectID, role models.Role) (models.Membership, error) {
	if !role.Valid() {
		return models.Membership{}, errBadRole
	}

	if err := s.users.FindOne(ctx, bson.M{"_id": userID}).Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Membership{}, ErrUserNotFound
		}
		return models.Membership{}, err
	}

	now := time.Now().UTC()
	m := models.Membership{
		ID:        primitive.NewObjectID(),
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Membership{}, ErrDuplicateMembership
		}
		return models.Membership{}, err
	}
	return m, nil
}

// Exists checks if a membership exists for the given project and user.
func (s *Store) Exists(ctx context.Context, projectID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"project_id": projectID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RoleOf returns the user's role in the project and whether a
// membership exists at all.
func (s *Store) RoleOf(ctx context.Context, projectID, userID primitive.ObjectID) (models.Role, bool, error) {
	var m models.Membership
	err := s.c.FindOne(ctx, bson.M{"project_id": projectID, "user_id": userID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return m.Role, true, nil
}

// ListByProject returns all memberships for a project, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Membership, error) {
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var memberships []models.Membership
	if err := cur.All(ctx, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

// ProjectIDsForUser returns the ids of every project the user belongs to.
func (s *Store) ProjectIDsForUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var m models.Membership
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		ids = append(ids, m.ProjectID)
	}
	return ids, cur.Err()
}

// Remove deletes the membership for (projectID, userID). Returns
// mongo.ErrNoDocuments when there was nothing to remove.
func (s *Store) Remove(ctx context.Context, projectID, userID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"project_id": projectID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteByProject removes all memberships for a project. Returns the
// number of documents deleted.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// CountByProject returns the count of memberships for a project,
// optionally filtered by role. If role is empty, counts all.
func (s *Store) CountByProject(ctx context.Context, projectID primitive.ObjectID, role models.Role) (int64, error) {
	filter := bson.M{"project_id": projectID}
	if role != "" {
		filter["role"] = role
	}
	return s.c.CountDocuments(ctx, filter)
}
