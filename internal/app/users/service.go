package users

import (
	"context"

	"tunestack/internal/models"
	"tunestack/internal/store"
)

// Store describes the persistence operations required by the user service.
type Store interface {
	CreateUser(ctx context.Context, email, password, name string) (*models.User, error)
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch store.UserPatch) (*models.User, error)
}

// TokenIssuer mints signed identity tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service exposes account workflows. Register and Login both return a token
// alongside the account, so a fresh signup is signed in immediately.
type Service interface {
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch store.UserPatch) (*models.User, error)
}

type service struct {
	store  Store
	tokens TokenIssuer
}

// New wires a Service backed by the provided Store and token issuer.
func New(store Store, tokens TokenIssuer) Service {
	return &service{store: store, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	user, err := s.store.CreateUser(ctx, email, password, name)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	user, err := s.store.AuthenticateUser(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UserByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, patch store.UserPatch) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.UpdateUser(ctx, userID, patch)
}
