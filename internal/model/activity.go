package model

import "time"

// Activity is a governance task a user contributes to.
type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      string    `json:"userId,omitempty"`
	Points      int       `json:"points"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ActivityPage is a paginated activity listing.
type ActivityPage struct {
	Activities []Activity `json:"activities"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PerPage    int        `json:"per_page"`
}

// CreateActivityRequest is the payload for recording a new activity.
type CreateActivityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	Points      int    `json:"points"`
}
