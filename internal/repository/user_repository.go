package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"auralearn/internal/domain"
	"auralearn/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx over
// the local SQLite store.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

// CreateUser inserts a new user. The email is normalized before the
// duplicate check; a UNIQUE index backs the check at the store level.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	user.Email = domain.NormalizeEmail(user.Email)

	existing, err := r.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check for existing user: %w", err)
	}
	if existing != nil {
		return domain.NewDuplicateEmailError(user.Email)
	}

	query := `INSERT INTO users (id, name, email, password_hash, role, created_at)
	          VALUES (:id, :name, :email, :password_hash, :role, :created_at)`

	_, err = r.db.NamedExecContext(ctx, query, toModelUser(user))
	if err != nil {
		// The pre-check races with a concurrent insert only across
		// processes; the UNIQUE index is the backstop.
		if isUniqueViolation(err) {
			return domain.NewDuplicateEmailError(user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by normalized email. It returns
// (nil, nil) when no record exists.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE email = ?`

	err := r.db.GetContext(ctx, &user, query, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&user)
}

// GetUserByID retrieves a user by their internal ID. It returns
// (nil, nil) when no record exists.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var user models.User
	query := `SELECT * FROM users WHERE id = ?`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&user)
}

// ListUsers returns a snapshot of all users ordered by creation time.
func (r *sqlxUserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var rows []models.User
	query := `SELECT * FROM users ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		user, err := toDomainUser(&rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// toModelUser converts a domain user to its persistence shape.
func toModelUser(user *domain.User) *models.User {
	return &models.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// toDomainUser converts a persisted row back to a domain user.
func toDomainUser(user *models.User) (*domain.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for user %s: %w", user.ID, err)
	}
	return &domain.User{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         domain.Role(user.Role),
		CreatedAt:    createdAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
