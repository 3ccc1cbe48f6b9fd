package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"gorm.io/gorm"
)

// UserStore is the local table of shadow users, unique on ExternalUserID.
type UserStore interface {
	// FindByExternalID returns ErrNotFound when no row matches.
	FindByExternalID(ctx context.Context, externalID int64) (*models.User, error)
	// Insert returns ErrConflict when the external id is already taken.
	Insert(ctx context.Context, user *models.User) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByExternalID(ctx context.Context, externalID int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("external_user_id = ?", externalID).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) Insert(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if err = translate(err); errors.Is(err, ErrConflict) {
			return err
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}
