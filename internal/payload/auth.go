package payload

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/krmu/lostfound-api/internal/model"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=student admin"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the reduced user projection returned on login.
type UserInfo struct {
	ID       bson.ObjectID `json:"id"`
	Username string        `json:"username"`
	Role     model.Role    `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
