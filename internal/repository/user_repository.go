package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"unicatalog/internal/entity"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

var (
	ErrUserNotFound = &UserRepositoryError{"user not found"}
	ErrEmailTaken   = &UserRepositoryError{"email already registered"}
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// NormalizeEmail trims and lower-cases an address. Every query goes through
// it so that uniqueness is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1)
	`, NormalizeEmail(email)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}

// EmailTakenByOther reports whether email belongs to any user other than
// excludeID.
func (r *UserRepository) EmailTakenByOther(ctx context.Context, email string, excludeID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = $1 AND id <> $2)
	`, NormalizeEmail(email), excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email ownership: %w", err)
	}
	return exists, nil
}

// Create inserts a user with an already hashed password.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (entity.User, error) {
	u := entity.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, role_name, created_at
	`, u.Name, u.Email, u.PasswordHash).Scan(&u.ID, &u.RoleName, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.User{}, ErrEmailTaken
		}
		return entity.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

// CreateWithRole is used by the admin CLI to seed privileged accounts.
func (r *UserRepository) CreateWithRole(ctx context.Context, name, email, passwordHash, role string) (entity.User, error) {
	u := entity.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		RoleName:     role,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password, role_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, u.PasswordHash, u.RoleName).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.User{}, ErrEmailTaken
		}
		return entity.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

// FindByEmail returns the user including the password hash, for login.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, LOWER(email), password, role_name, created_at
		FROM users
		WHERE LOWER(email) = $1
	`, NormalizeEmail(email)).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.RoleName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, ErrUserNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, email, role_name, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.RoleName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, ErrUserNotFound
	}
	if err != nil {
		return entity.User{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return u, nil
}

// List returns every user, newest first. The password column is never read.
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, role_name, created_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.RoleName, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// UpdateAccount changes name and email only.
func (r *UserRepository) UpdateAccount(ctx context.Context, id int, name, email string) (entity.User, error) {
	var u entity.User
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, name, email, role_name, created_at
	`, strings.TrimSpace(name), NormalizeEmail(email), id).Scan(&u.ID, &u.Name, &u.Email, &u.RoleName, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.User{}, ErrUserNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return entity.User{}, ErrEmailTaken
		}
		return entity.User{}, fmt.Errorf("update user %d: %w", id, err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type UserRepositoryError struct {
	Message string
}

func (e *UserRepositoryError) Error() string {
	return "user repository error: " + e.Message
}
