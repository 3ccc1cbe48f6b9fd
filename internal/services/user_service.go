package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/identity"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
)

// IdentityProvider resolves users against the external directory.
// Implementations return identity.ErrUserNotFound for unknown users.
type IdentityProvider interface {
	GetUserByID(ctx context.Context, id int64) (*identity.User, error)
	GetUserByName(ctx context.Context, name string) (*identity.User, error)
}

// UserService maps external identities onto local shadow users, creating the
// local row the first time an identity is seen.
type UserService struct {
	provider IdentityProvider
	store    UserStore
}

func NewUserService(provider IdentityProvider, store UserStore) *UserService {
	return &UserService{provider: provider, store: store}
}

// FindOrCreateByID returns the local user for externalID. The identity
// provider is only consulted when no local row exists yet.
func (s *UserService) FindOrCreateByID(ctx context.Context, externalID int64) (*models.User, error) {
	user, err := s.store.FindByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	remote, err := checkRemote(s.provider.GetUserByID(ctx, externalID))
	if err != nil {
		return nil, err
	}

	// The provider's id is authoritative, even if it differs from the one asked for.
	user = &models.User{ExternalUserID: remote.ID}
	err = s.store.Insert(ctx, user)
	if err == nil {
		slog.Info("local user created", "external_user_id", user.ExternalUserID, "user_id", user.ID)
		return user, nil
	}
	if !errors.Is(err, ErrConflict) {
		return nil, err
	}

	// Lost a creation race; the winner's row is the answer.
	user, err = s.store.FindByExternalID(ctx, remote.ID)
	if errors.Is(err, ErrNotFound) {
		slog.Error("user vanished after conflict", "external_user_id", remote.ID, "error", ErrInconsistentStore)
		return nil, fmt.Errorf("%w: external id %d", ErrInconsistentStore, remote.ID)
	}
	return user, err
}

// FindOrCreateByName resolves name through the identity provider on every
// call, since local rows are not indexed by name.
func (s *UserService) FindOrCreateByName(ctx context.Context, name string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidUserName
	}

	remote, err := checkRemote(s.provider.GetUserByName(ctx, name))
	if err != nil {
		return nil, err
	}
	return s.FindOrCreateByID(ctx, remote.ID)
}

// checkRemote rejects provider replies without an id. Storing them would map
// every such caller onto the same local row.
func checkRemote(remote *identity.User, err error) (*identity.User, error) {
	if err != nil {
		return nil, providerError(err)
	}
	if remote == nil || remote.ID == 0 {
		return nil, providerError(errMissingRemoteID)
	}
	return remote, nil
}

func providerError(err error) error {
	if errors.Is(err, identity.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
}
