// internal/app/features/tasks/types.go
package tasks

import (
	"encoding/json"
	"time"

	"github.com/dalemusser/taskhub/internal/app/features/shared"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// optionalString distinguishes an absent JSON field from an explicit
// null, which matters for PATCH: null clears, absent leaves alone.
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

type optionalTime struct {
	Set   bool
	Value *time.Time
}

func (o *optionalTime) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(b, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// taskRequest serves create, PUT, and PATCH. Any project field a
// client sends is simply not here: a task's project never changes.
type taskRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Status      *string        `json:"status"`
	Priority    *string        `json:"priority"`
	AssignedTo  optionalString `json:"assigned_to"`
	DueDate     optionalTime   `json:"due_date"`
}

type taskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	ProjectID   string          `json:"project_id"`
	CreatedBy   shared.UserRef  `json:"created_by"`
	AssignedTo  *shared.UserRef `json:"assigned_to"`
	DueDate     *time.Time      `json:"due_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toTaskResponse(t *models.Task, names map[primitive.ObjectID]string) taskResponse {
	resp := taskResponse{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		ProjectID:   t.ProjectID.Hex(),
		CreatedBy:   shared.UserRefFor(t.CreatedBy, names),
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		ref := shared.UserRefFor(*t.AssignedTo, names)
		resp.AssignedTo = &ref
	}
	return resp
}

// taskUserIDs collects the user ids a batch of tasks reference, for
// one NamesByID round trip.
func taskUserIDs(tasks []models.Task) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(tasks)*2)
	for _, t := range tasks {
		ids = append(ids, t.CreatedBy)
		if t.AssignedTo != nil {
			ids = append(ids, *t.AssignedTo)
		}
	}
	return ids
}
