package model

import "time"

// Reward is a catalog entry users can redeem points for.
type Reward struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        int       `json:"cost"`
	Icon        string    `json:"icon,omitempty"`
	Available   bool      `json:"available"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Redemption records a user spending points on a reward.
type Redemption struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RewardID  string    `json:"rewardId"`
	Code      string    `json:"redeemCode"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// RewardSuggestion is user feedback about an existing reward or a proposal
// for a new one. RewardID is empty for new-reward proposals.
type RewardSuggestion struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	RewardID       string    `json:"rewardId,omitempty"`
	SuggestionText string    `json:"suggestionText"`
	SuggestedValue string    `json:"suggestedValue,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Status         string    `json:"status"`
}

// CreateRewardRequest is the payload for adding a catalog entry.
type CreateRewardRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Icon        string `json:"icon"`
	Available   *bool  `json:"available"`
}

// RedeemRequest identifies the user redeeming a reward.
type RedeemRequest struct {
	UserID string `json:"user_id"`
}

// SuggestRequest is the payload for reward suggestions.
type SuggestRequest struct {
	UserID         string `json:"user_id"`
	Suggestion     string `json:"suggestion"`
	SuggestedValue string `json:"suggested_value"`
}

// RewardPage is a paginated reward listing.
type RewardPage struct {
	Rewards []Reward `json:"rewards"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}
