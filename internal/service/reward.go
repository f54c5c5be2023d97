package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/perfpulse/perfpulse-go/internal/crypto"
	"github.com/perfpulse/perfpulse-go/internal/model"
	"github.com/perfpulse/perfpulse-go/internal/repository"
)

var (
	ErrRewardNotFound     = errors.New("reward not found")
	ErrRewardUnavailable  = errors.New("reward not available")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// RewardService handles the reward catalog, redemptions and suggestions.
type RewardService struct {
	rewards repository.RewardRepository
	users   repository.UserRepository
}

// NewRewardService creates a new RewardService.
func NewRewardService(rewards repository.RewardRepository, users repository.UserRepository) *RewardService {
	return &RewardService{rewards: rewards, users: users}
}

// List returns a page of available rewards.
func (s *RewardService) List(ctx context.Context, page, perPage int) (model.RewardPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	rewards, total, err := s.rewards.List(ctx, page, perPage)
	if err != nil {
		return model.RewardPage{}, err
	}
	return model.RewardPage{Rewards: rewards, Total: total, Page: page, PerPage: perPage}, nil
}

// Get retrieves a single reward.
func (s *RewardService) Get(ctx context.Context, id string) (*model.Reward, error) {
	reward, err := s.rewards.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	return reward, nil
}

// Create adds a catalog entry.
func (s *RewardService) Create(ctx context.Context, req model.CreateRewardRequest) (*model.Reward, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	reward := &model.Reward{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Cost:        req.Cost,
		Icon:        req.Icon,
		Available:   available,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.rewards.Create(ctx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// Redeem spends a user's points on a reward and records a pending
// redemption. The deduction and the redemption record are not atomic
// across repositories; a failed redemption insert leaves the deduction
// in place.
func (s *RewardService) Redeem(ctx context.Context, rewardID, userID string) (*model.Redemption, error) {
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	reward, err := s.rewards.GetByID(ctx, rewardID)
	if err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}
	if !reward.Available {
		return nil, ErrRewardUnavailable
	}
	if user.Points < reward.Cost {
		return nil, ErrInsufficientPoints
	}

	code, err := crypto.RedemptionCode(2)
	if err != nil {
		return nil, err
	}

	user.Points -= reward.Cost
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	redemption := &model.Redemption{
		ID:        uuid.NewString(),
		UserID:    userID,
		RewardID:  rewardID,
		Code:      code,
		Timestamp: time.Now().UTC(),
		Status:    "pending",
	}
	if err := s.rewards.CreateRedemption(ctx, redemption); err != nil {
		return nil, err
	}
	return redemption, nil
}

// Redemptions lists redemptions, optionally filtered by user.
func (s *RewardService) Redemptions(ctx context.Context, userID string) ([]model.Redemption, error) {
	return s.rewards.ListRedemptions(ctx, userID)
}

// Like bumps a reward's like counter and returns the new value. Nothing
// prevents the same user liking twice; the counter is a plain integer.
func (s *RewardService) Like(ctx context.Context, id string) (int, error) {
	likes, err := s.rewards.IncrementLikes(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRewardNotFound) {
			return 0, ErrRewardNotFound
		}
		return 0, err
	}
	return likes, nil
}

// Suggest stores a suggestion about an existing reward (rewardID set) or a
// new-reward proposal (rewardID empty). Returns the suggestion ID.
func (s *RewardService) Suggest(ctx context.Context, rewardID string, req model.SuggestRequest) (string, error) {
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}
	suggestion := &model.RewardSuggestion{
		ID:             uuid.NewString(),
		UserID:         userID,
		RewardID:       rewardID,
		SuggestionText: req.Suggestion,
		SuggestedValue: req.SuggestedValue,
		Timestamp:      time.Now().UTC(),
		Status:         "pending",
	}
	if err := s.rewards.CreateSuggestion(ctx, suggestion); err != nil {
		return "", err
	}
	return suggestion.ID, nil
}
