// internal/app/features/projects/types.go
package projects

import (
	"time"

	"github.com/dalemusser/taskhub/internal/app/features/shared"
	"github.com/dalemusser/taskhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// updateProjectRequest serves both PUT and PATCH; PUT requires Name to
// be present, PATCH touches only the supplied fields.
type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// projectResponse is the summary shape used in lists.
type projectResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Owner       shared.UserRef `json:"owner"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// projectDetailResponse adds the embedded member list for single-project
// reads.
type projectDetailResponse struct {
	projectResponse
	Members []memberResponse `json:"members"`
}

type memberResponse struct {
	ID        string         `json:"id"`
	User      shared.UserRef `json:"user"`
	Role      models.Role    `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
}

func toProjectResponse(p *models.Project, names map[primitive.ObjectID]string) projectResponse {
	return projectResponse{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Owner:       shared.UserRefFor(p.OwnerID, names),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toMemberResponses(memberships []models.Membership, names map[primitive.ObjectID]string) []memberResponse {
	out := make([]memberResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, memberResponse{
			ID:        m.ID.Hex(),
			User:      shared.UserRefFor(m.UserID, names),
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}
