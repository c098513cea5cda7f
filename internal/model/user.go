package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role classifies a portal account. Unknown values are rejected at the
// request boundary.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User represents a portal account. The password is stored only as a bcrypt
// hash and never serialized in responses.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"  json:"id"`
	Username     string        `bson:"username"       json:"username"`
	PasswordHash string        `bson:"password_hash"  json:"-"`
	Role         Role          `bson:"role"           json:"role"`
	CreatedAt    time.Time     `bson:"created_at"     json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"     json:"updatedAt"`
}
