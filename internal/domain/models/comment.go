// internal/domain/models/comment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is attached to a task. UserID (the author) and TaskID are
// immutable. ProjectID is denormalized from the task so membership
// checks and project-level cascades don't need a join through tasks.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	TaskID    primitive.ObjectID `bson:"task_id" json:"task_id"`
	ProjectID primitive.ObjectID `bson:"project_id" json:"project_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
