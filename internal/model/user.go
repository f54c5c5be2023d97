package model

import (
	"strconv"
	"time"
)

// User represents a user in the database.
type User struct {
	ID             int64
	Name           string
	Email          string
	AuthHash       string
	Department     string
	Position       string
	Phone          string
	JoinDate       time.Time
	Points         int
	Level          int
	CompletedTasks int
	PendingTasks   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LoginRequest represents a user login request. When the client sends
// encrypted credentials, Encrypted carries the RSA-OAEP ciphertext and
// the plaintext fields are empty.
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Encrypted string `json:"encrypted,omitempty"`
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name,omitempty"`
	Encrypted string `json:"encrypted,omitempty"`
}

// UpdateUserRequest carries a partial profile update. Empty fields are
// left untouched.
type UpdateUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Phone      string `json:"phone"`
}

// AuthData is the data payload of a successful login or registration.
// Clients persist UserID as their session token, so it is serialized as
// a string.
type AuthData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Token  string `json:"token,omitempty"`
}

// UserResponse represents user data safe for API responses (no auth hash).
type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	Phone          string `json:"phone,omitempty"`
	JoinDate       string `json:"joinDate,omitempty"`
	Points         int    `json:"points"`
	Level          int    `json:"level"`
	CompletedTasks int    `json:"completedTasks"`
	PendingTasks   int    `json:"pendingTasks"`
	CreatedAt      string `json:"createdAt,omitempty"`
	UpdatedAt      string `json:"updatedAt,omitempty"`
}

// Response converts a User into its API representation.
func (u *User) Response() UserResponse {
	resp := UserResponse{
		ID:             strconv.FormatInt(u.ID, 10),
		Name:           u.Name,
		Email:          u.Email,
		Department:     u.Department,
		Position:       u.Position,
		Phone:          u.Phone,
		Points:         u.Points,
		Level:          u.Level,
		CompletedTasks: u.CompletedTasks,
		PendingTasks:   u.PendingTasks,
	}
	if !u.JoinDate.IsZero() {
		resp.JoinDate = u.JoinDate.Format(time.RFC3339)
	}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	if !u.UpdatedAt.IsZero() {
		resp.UpdatedAt = u.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
