// internal/app/store/tasks/taskstore.go
package taskstore

import (
	"context"
	"time"

	"github.com/dalemusser/taskhub/internal/app/system/txn"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	db       *mongo.Database
	c        *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:       db,
		c:        db.Collection("tasks"),
		comments: db.Collection("comments"),
	}
}

// UpdateFields carries the mutable task fields. Nil pointers leave the
// stored value alone; the Clear flags distinguish "unset the field"
// from "leave it". ProjectID and CreatedBy are immutable and absent.
type UpdateFields struct {
	Title       *string
	Description *string
	Status      *models.Status
	Priority    *models.Priority

	AssignedTo    *primitive.ObjectID
	ClearAssignee bool

	DueDate      *time.Time
	ClearDueDate bool
}

// Insert creates a task. Empty status and priority fall back to the
// defaults TODO and MEDIUM.
func (s *Store) Insert(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	if t.Status == "" {
		t.Status = models.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = models.PriorityMedium
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// GetByID loads a task. Returns mongo.ErrNoDocuments if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByProject returns the project's tasks, oldest first.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{"project_id": projectID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tasks := []models.Task{}
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies the populated fields and returns the updated task.
// Returns mongo.ErrNoDocuments if the task is gone.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, f UpdateFields) (*models.Task, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if f.Title != nil {
		set["title"] = *f.Title
	}
	if f.Description != nil {
		set["description"] = *f.Description
	}
	if f.Status != nil {
		set["status"] = *f.Status
	}
	if f.Priority != nil {
		set["priority"] = *f.Priority
	}
	switch {
	case f.ClearAssignee:
		unset["assigned_to"] = ""
	case f.AssignedTo != nil:
		set["assigned_to"] = *f.AssignedTo
	}
	switch {
	case f.ClearDueDate:
		unset["due_date"] = ""
	case f.DueDate != nil:
		set["due_date"] = *f.DueDate
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes the task and its comments together. Returns
// mongo.ErrNoDocuments if the task did not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return txn.Run(ctx, s.db.Client(), func(ctx context.Context) error {
		if _, err := s.comments.DeleteMany(ctx, bson.M{"task_id": id}); err != nil {
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

// DeleteByProject removes all tasks in a project. Comments are the
// project store's concern during a project cascade.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
