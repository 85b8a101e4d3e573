// Package shared holds response fragments used by more than one
// feature package.
package shared

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRef is the compact {id, name} form in which users appear inside
// other resources. Full user records never ride along on projects,
// memberships, or tasks.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRefFor builds a UserRef from a batch name lookup. An id missing
// from the map (a since-deleted account) still renders, with an empty
// name.
func UserRefFor(id primitive.ObjectID, names map[primitive.ObjectID]string) UserRef {
	return UserRef{ID: id.Hex(), Name: names[id]}
}
