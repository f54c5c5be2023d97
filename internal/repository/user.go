package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/perfpulse/perfpulse-go/internal/model"
)

// MySQLUserRepository handles user persistence backed by MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const userColumns = `id, name, email, auth_hash, department, position, phone,
	join_date, points, level, completed_tasks, pending_tasks, created_at, updated_at`

// Create inserts a new user and sets the generated ID on the user struct.
func (r *MySQLUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users
		(name, email, auth_hash, department, position, phone, join_date, points, level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.AuthHash, user.Department, user.Position,
		user.Phone, user.JoinDate, user.Points, user.Level,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves a user by their ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// Update persists changed profile fields.
func (r *MySQLUserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET name = ?, email = ?, auth_hash = ?, department = ?,
		position = ?, phone = ?, points = ?, level = ?,
		completed_tasks = ?, pending_tasks = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		user.Name, user.Email, user.AuthHash, user.Department, user.Position,
		user.Phone, user.Points, user.Level,
		user.CompletedTasks, user.PendingTasks, user.ID,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		// No-op updates also report zero rows; confirm the user exists.
		if _, err := r.GetByID(ctx, user.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.AuthHash, &user.Department,
		&user.Position, &user.Phone, &user.JoinDate, &user.Points, &user.Level,
		&user.CompletedTasks, &user.PendingTasks, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
