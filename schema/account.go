package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles, one collection each.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a registered user or administrator credential document.
// The password hash is never serialized to JSON.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	FullName     string             `bson:"fullName" json:"fullName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
