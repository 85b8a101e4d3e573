// internal/app/features/comments/types.go
package comments

import (
	"time"

	"github.com/dalemusser/taskhub/internal/app/features/shared"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type commentRequest struct {
	Content string `json:"content"`
}

type commentResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	User      shared.UserRef `json:"user"`
	TaskID    string         `json:"task_id"`
	ProjectID string         `json:"project_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func toCommentResponse(c *models.Comment, names map[primitive.ObjectID]string) commentResponse {
	return commentResponse{
		ID:        c.ID.Hex(),
		Content:   c.Content,
		User:      shared.UserRefFor(c.UserID, names),
		TaskID:    c.TaskID.Hex(),
		ProjectID: c.ProjectID.Hex(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func commentUserIDs(comments []models.Comment) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.UserID)
	}
	return ids
}
