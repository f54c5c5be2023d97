package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

// MySQLRewardRepository handles reward persistence backed by MySQL.
type MySQLRewardRepository struct {
	db *sql.DB
}

// NewMySQLRewardRepository creates a new MySQLRewardRepository.
func NewMySQLRewardRepository(db *sql.DB) *MySQLRewardRepository {
	return &MySQLRewardRepository{db: db}
}

// List retrieves a page of available rewards ordered by newest first,
// along with the total count of available rewards.
func (r *MySQLRewardRepository) List(ctx context.Context, page, perPage int) ([]model.Reward, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rewards WHERE available = TRUE`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, name, description, cost, icon, available, likes, created_at
		FROM rewards WHERE available = TRUE
		ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		var rw model.Reward
		if err := rows.Scan(
			&rw.ID, &rw.Name, &rw.Description, &rw.Cost, &rw.Icon,
			&rw.Available, &rw.Likes, &rw.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		rewards = append(rewards, rw)
	}

	return rewards, total, rows.Err()
}

// GetByID retrieves a reward by ID.
func (r *MySQLRewardRepository) GetByID(ctx context.Context, id string) (*model.Reward, error) {
	query := `SELECT id, name, description, cost, icon, available, likes, created_at
		FROM rewards WHERE id = ?`

	reward := &model.Reward{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reward.ID, &reward.Name, &reward.Description, &reward.Cost,
		&reward.Icon, &reward.Available, &reward.Likes, &reward.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRewardNotFound
		}
		return nil, err
	}

	return reward, nil
}

// Create inserts a new reward catalog entry.
func (r *MySQLRewardRepository) Create(ctx context.Context, reward *model.Reward) error {
	query := `INSERT INTO rewards (id, name, description, cost, icon, available, likes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		reward.ID, reward.Name, reward.Description, reward.Cost,
		reward.Icon, reward.Available, reward.Likes,
	)
	return err
}

// IncrementLikes bumps a reward's like counter and returns the new value.
// Duplicate likes are not prevented; the counter is a plain integer.
func (r *MySQLRewardRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE rewards SET likes = likes + 1 WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, ErrRewardNotFound
	}

	var likes int
	if err := r.db.QueryRowContext(ctx,
		`SELECT likes FROM rewards WHERE id = ?`, id).Scan(&likes); err != nil {
		return 0, err
	}
	return likes, nil
}

// CreateRedemption records a pending redemption.
func (r *MySQLRewardRepository) CreateRedemption(ctx context.Context, redemption *model.Redemption) error {
	query := `INSERT INTO redemptions (id, user_id, reward_id, redeem_code, timestamp, status)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		redemption.ID, redemption.UserID, redemption.RewardID, redemption.Code,
		redemption.Timestamp, redemption.Status,
	)
	return err
}

// ListRedemptions retrieves redemptions newest first, optionally filtered by user.
func (r *MySQLRewardRepository) ListRedemptions(ctx context.Context, userID string) ([]model.Redemption, error) {
	query := `SELECT id, user_id, reward_id, redeem_code, timestamp, status FROM redemptions`
	args := []any{}
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += ` ORDER BY timestamp DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var redemptions []model.Redemption
	for rows.Next() {
		var rd model.Redemption
		if err := rows.Scan(&rd.ID, &rd.UserID, &rd.RewardID, &rd.Code, &rd.Timestamp, &rd.Status); err != nil {
			return nil, err
		}
		redemptions = append(redemptions, rd)
	}

	return redemptions, rows.Err()
}

// CreateSuggestion stores a reward suggestion.
func (r *MySQLRewardRepository) CreateSuggestion(ctx context.Context, suggestion *model.RewardSuggestion) error {
	query := `INSERT INTO reward_suggestions
		(id, user_id, reward_id, suggestion_text, suggested_value, timestamp, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		suggestion.ID, suggestion.UserID, nullIfEmpty(suggestion.RewardID),
		suggestion.SuggestionText, suggestion.SuggestedValue,
		suggestion.Timestamp, suggestion.Status,
	)
	return err
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
