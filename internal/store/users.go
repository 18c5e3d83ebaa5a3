package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tunestack/internal/models"
)

// UserPatch describes a partial profile update. Nil fields are left
// unchanged.
type UserPatch struct {
	Name           *string
	ProfilePicture *string
}

// CreateUser registers a new account and returns it.
func (s *Store) CreateUser(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("email, password and name are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	user.UpdatedAt = user.CreatedAt

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		user.ID, user.Email, hash, user.Name, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return &user, nil
}

// AuthenticateUser validates credentials and returns the account. A bcrypt
// compare runs even when the email is unknown to keep timing uniform.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	var (
		user    models.User
		hash    []byte
		picture sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, profile_picture, created_at, updated_at
		FROM users
		WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &hash, &user.Name, &picture, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user.ProfilePicture = ptr(picture)
	return &user, nil
}

// UserByID returns the account with the given id.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var (
		user    models.User
		picture sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, profile_picture, created_at, updated_at
		FROM users
		WHERE id = $1`, id).
		Scan(&user.ID, &user.Email, &user.Name, &picture, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	user.ProfilePicture = ptr(picture)
	return &user, nil
}

// UpdateUser applies a partial profile update and refreshes updated_at.
func (s *Store) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = COALESCE($1, name),
		    profile_picture = COALESCE($2, profile_picture),
		    updated_at = $3
		WHERE id = $4`,
		nullable(patch.Name), nullable(patch.ProfilePicture), time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}
	return s.UserByID(ctx, id)
}
