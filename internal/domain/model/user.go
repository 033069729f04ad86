package model

import (
	"time"
)

const (
	RoleUser    = "user"
	RoleCreator = "creator"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the assignable roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleCreator || role == RoleAdmin
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PhotoURL       string    `json:"photoURL"`
	Bio            *string   `json:"bio,omitempty"`
	Role           string    `json:"role"`
	RolePreference *string   `json:"rolePreference,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserStats aggregates a user's participation across the platform.
type UserStats struct {
	Participated int `json:"participated"`
	Wins         int `json:"wins"`
}
