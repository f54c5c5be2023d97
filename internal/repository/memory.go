package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

// MemoryUserRepository is an in-memory UserRepository. It backs the server
// when no database is reachable and doubles as the test fake. Process
// lifetime only; not safe for multi-instance deployment.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

// NewMemoryUserRepository creates an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{nextID: 1, users: make(map[int64]*model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.ID = r.nextID
	r.nextID++
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.JoinDate.IsZero() {
		user.JoinDate = now
	}

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrUserNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}

	user.UpdatedAt = time.Now().UTC()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

// MemoryRewardRepository is an in-memory RewardRepository.
type MemoryRewardRepository struct {
	mu          sync.Mutex
	rewards     []model.Reward
	redemptions []model.Redemption
	suggestions []model.RewardSuggestion
}

// NewMemoryRewardRepository creates a MemoryRewardRepository holding the
// given catalog.
func NewMemoryRewardRepository(seed []model.Reward) *MemoryRewardRepository {
	return &MemoryRewardRepository{rewards: append([]model.Reward(nil), seed...)}
}

func (r *MemoryRewardRepository) List(_ context.Context, page, perPage int) ([]model.Reward, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var available []model.Reward
	for _, rw := range r.rewards {
		if rw.Available {
			available = append(available, rw)
		}
	}
	sort.SliceStable(available, func(i, j int) bool {
		return available[i].CreatedAt.After(available[j].CreatedAt)
	})

	total := len(available)
	start := (page - 1) * perPage
	if start >= total {
		return nil, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return append([]model.Reward(nil), available[start:end]...), total, nil
}

func (r *MemoryRewardRepository) GetByID(_ context.Context, id string) (*model.Reward, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rw := range r.rewards {
		if rw.ID == id {
			copied := rw
			return &copied, nil
		}
	}
	return nil, ErrRewardNotFound
}

func (r *MemoryRewardRepository) Create(_ context.Context, reward *model.Reward) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reward.CreatedAt.IsZero() {
		reward.CreatedAt = time.Now().UTC()
	}
	r.rewards = append(r.rewards, *reward)
	return nil
}

func (r *MemoryRewardRepository) IncrementLikes(_ context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rewards {
		if r.rewards[i].ID == id {
			r.rewards[i].Likes++
			return r.rewards[i].Likes, nil
		}
	}
	return 0, ErrRewardNotFound
}

func (r *MemoryRewardRepository) CreateRedemption(_ context.Context, redemption *model.Redemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.redemptions = append(r.redemptions, *redemption)
	return nil
}

func (r *MemoryRewardRepository) ListRedemptions(_ context.Context, userID string) ([]model.Redemption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.Redemption
	for _, rd := range r.redemptions {
		if userID == "" || rd.UserID == userID {
			out = append(out, rd)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *MemoryRewardRepository) CreateSuggestion(_ context.Context, suggestion *model.RewardSuggestion) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.suggestions = append(r.suggestions, *suggestion)
	return nil
}

// MemoryActivityRepository is an in-memory ActivityRepository.
type MemoryActivityRepository struct {
	mu         sync.Mutex
	activities []model.Activity
}

// NewMemoryActivityRepository creates a MemoryActivityRepository holding
// the given activities.
func NewMemoryActivityRepository(seed []model.Activity) *MemoryActivityRepository {
	return &MemoryActivityRepository{activities: append([]model.Activity(nil), seed...)}
}

func (r *MemoryActivityRepository) List(_ context.Context, page, perPage int, search string) ([]model.Activity, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []model.Activity
	needle := strings.ToLower(search)
	for _, a := range r.activities {
		if search == "" ||
			strings.Contains(strings.ToLower(a.Title), needle) ||
			strings.Contains(strings.ToLower(a.Description), needle) {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	start := (page - 1) * perPage
	if start >= total {
		return nil, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return append([]model.Activity(nil), matched[start:end]...), total, nil
}

func (r *MemoryActivityRepository) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	items, _, err := r.List(ctx, 1, limit, "")
	return items, err
}

func (r *MemoryActivityRepository) GetByID(_ context.Context, id string) (*model.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.activities {
		if a.ID == id {
			copied := a
			return &copied, nil
		}
	}
	return nil, ErrActivityNotFound
}

func (r *MemoryActivityRepository) Create(_ context.Context, activity *model.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = now
	}
	activity.UpdatedAt = now
	r.activities = append(r.activities, *activity)
	return nil
}

// MemoryScoringRepository is an in-memory ScoringRepository seeded with the
// stock criteria and factor definitions.
type MemoryScoringRepository struct {
	mu       sync.Mutex
	criteria []model.ScoringCriteria
	factors  []model.ScoringFactor
	entries  []model.ScoreEntry
	metrics  []model.GovernanceMetric
}

// NewMemoryScoringRepository creates a MemoryScoringRepository with the
// given reference data.
func NewMemoryScoringRepository(criteria []model.ScoringCriteria, factors []model.ScoringFactor) *MemoryScoringRepository {
	return &MemoryScoringRepository{
		criteria: append([]model.ScoringCriteria(nil), criteria...),
		factors:  append([]model.ScoringFactor(nil), factors...),
	}
}

func (r *MemoryScoringRepository) Criteria(_ context.Context) ([]model.ScoringCriteria, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ScoringCriteria(nil), r.criteria...), nil
}

func (r *MemoryScoringRepository) Factors(_ context.Context) ([]model.ScoringFactor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ScoringFactor(nil), r.factors...), nil
}

func (r *MemoryScoringRepository) CreateEntry(_ context.Context, entry *model.ScoreEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *MemoryScoringRepository) ListEntries(_ context.Context) ([]model.ScoreEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ScoreEntry(nil), r.entries...), nil
}

func (r *MemoryScoringRepository) MetricsByDimension(_ context.Context, dimension string) ([]model.GovernanceMetric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []model.GovernanceMetric
	for _, m := range r.metrics {
		if m.Dimension == dimension {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryScoringRepository) SaveMetric(_ context.Context, metric *model.GovernanceMetric) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if metric.Timestamp.IsZero() {
		metric.Timestamp = time.Now().UTC()
	}
	for i := range r.metrics {
		if r.metrics[i].Dimension == metric.Dimension && r.metrics[i].MetricName == metric.MetricName {
			r.metrics[i].Value = metric.Value
			r.metrics[i].Timestamp = metric.Timestamp
			return nil
		}
	}
	r.metrics = append(r.metrics, *metric)
	return nil
}
