// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/txn"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	db          *mongo.Database
	c           *mongo.Collection
	memberships *mongo.Collection
	tasks       *mongo.Collection
	comments    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:          db,
		c:           db.Collection("projects"),
		memberships: db.Collection("memberships"),
		tasks:       db.Collection("tasks"),
		comments:    db.Collection("comments"),
	}
}

// UpdateFields carries the mutable project fields. Nil pointers leave
// the stored value untouched. OwnerID is not here: ownership never
// changes after creation.
type UpdateFields struct {
	Name        *string
	Description *string
}

// Create inserts the project and the owner's ADMIN membership in one
// transaction, so a project is never visible without its owner row.
// Falls back to sequential writes on standalone servers.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	p.CreatedAt = now
	p.UpdatedAt = now

	ownerMembership := models.Membership{
		ID:        primitive.NewObjectID(),
		ProjectID: p.ID,
		UserID:    p.OwnerID,
		Role:      models.RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := txn.Run(ctx, s.db.Client(), func(ctx context.Context) error {
		if _, err := s.c.InsertOne(ctx, p); err != nil {
			return err
		}
		_, err := s.memberships.InsertOne(ctx, ownerMembership)
		return err
	})
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListForUser returns the projects the user holds a membership in,
// oldest first. Visibility follows memberships, not ownership, so an
// owner who somehow lost their membership row would not see the
// project here.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	cur, err := s.memberships.Find(ctx, bson.M{"user_id": userID})
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
	if err := cur.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Project{}, nil
	}

	pcur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer pcur.Close(ctx)

	projects := []models.Project{}
	if err := pcur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies the non-nil fields and returns the updated document.
// Returns mongo.ErrNoDocuments if the project is gone.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) (*models.Project, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if f.Name != nil {
		set["name"] = *f.Name
		set["name_ci"] = text.Fold(*f.Name)
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}

	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the project and everything under it: comments, tasks,
// memberships, then the project itself, in one transaction where the
// server supports it. Returns mongo.ErrNoDocuments if the project did
// not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db.Client(), func(ctx context.Context) error {
		if _, err := s.comments.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
			return err
		}
		if _, err := s.tasks.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
			return err
		}
		if _, err := s.memberships.DeleteMany(ctx, bson.M{"project_id": id}); err != nil {
			return err
		}
		res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}
		return nil
	})
}
