package repository

import (
	"context"
	"errors"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrRewardNotFound   = errors.New("reward not found")
	ErrActivityNotFound = errors.New("activity not found")
)

// UserRepository handles user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// RewardRepository handles reward catalog, redemption and suggestion persistence.
type RewardRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.Reward, int, error)
	GetByID(ctx context.Context, id string) (*model.Reward, error)
	Create(ctx context.Context, reward *model.Reward) error
	IncrementLikes(ctx context.Context, id string) (int, error)
	CreateRedemption(ctx context.Context, redemption *model.Redemption) error
	ListRedemptions(ctx context.Context, userID string) ([]model.Redemption, error)
	CreateSuggestion(ctx context.Context, suggestion *model.RewardSuggestion) error
}

// ActivityRepository handles activity persistence.
type ActivityRepository interface {
	List(ctx context.Context, page, perPage int, search string) ([]model.Activity, int, error)
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
	GetByID(ctx context.Context, id string) (*model.Activity, error)
	Create(ctx context.Context, activity *model.Activity) error
}

// ScoringRepository hands out scoring reference data and stores score
// entries and governance metrics.
type ScoringRepository interface {
	Criteria(ctx context.Context) ([]model.ScoringCriteria, error)
	Factors(ctx context.Context) ([]model.ScoringFactor, error)
	CreateEntry(ctx context.Context, entry *model.ScoreEntry) error
	ListEntries(ctx context.Context) ([]model.ScoreEntry, error)
	MetricsByDimension(ctx context.Context, dimension string) ([]model.GovernanceMetric, error)
	SaveMetric(ctx context.Context, metric *model.GovernanceMetric) error
}
