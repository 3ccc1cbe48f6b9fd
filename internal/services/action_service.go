package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionService struct {
	db *gorm.DB
}

func NewActionService(db *gorm.DB) *ActionService {
	return &ActionService{db: db}
}

// Create stores an action owned by owner (nil for system rows).
func (s *ActionService) Create(ctx context.Context, owner *models.User, req *dto.ActionRequest) (*models.Action, error) {
	action := models.Action{}
	if err := s.apply(ctx, &action, req); err != nil {
		return nil, err
	}
	if owner != nil {
		action.UserID = &owner.ID
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		objects := action.ActionObjects
		action.ActionObjects = nil
		if err := tx.Omit("Disaster", "User", "ActionObjects").Create(&action).Error; err != nil {
			return err
		}
		if len(objects) == 0 {
			return nil
		}
		return tx.Model(&action).Association("ActionObjects").Append(objects)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create action: %w", translate(err))
	}
	return s.Get(ctx, action.ID)
}

func (s *ActionService) Update(ctx context.Context, id uuid.UUID, req *dto.ActionRequest) (*models.Action, error) {
	action, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, action, req); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		objects := action.ActionObjects
		action.ActionObjects = nil
		if err := tx.Omit("Disaster", "User", "ActionObjects").Save(action).Error; err != nil {
			return err
		}
		return tx.Model(action).Association("ActionObjects").Replace(objects)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update action: %w", translate(err))
	}
	return s.Get(ctx, id)
}

func (s *ActionService) apply(ctx context.Context, action *models.Action, req *dto.ActionRequest) error {
	actionType := models.ActionType(strings.ToUpper(strings.TrimSpace(req.ActionType)))
	if actionType == "" {
		return invalid("action_type", "is required")
	}
	if !actionType.Valid() {
		return invalid("action_type", "must be SEEK, OFFER or KNOWLEDGE")
	}
	if err := validateCoordinates(req.Lat, req.Lon); err != nil {
		return err
	}

	if req.DisasterID != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Disaster{}).Where("id = ?", *req.DisasterID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return invalid("disaster_id", "unknown disaster")
		}
	}

	objects := make([]models.ActionObject, 0, len(req.ActionObjectIDs))
	if len(req.ActionObjectIDs) > 0 {
		if err := s.db.WithContext(ctx).Where("id IN ?", req.ActionObjectIDs).Find(&objects).Error; err != nil {
			return err
		}
		if len(objects) != len(uniqueIDs(req.ActionObjectIDs)) {
			return invalid("action_object_ids", "contains unknown action objects")
		}
	}

	action.ActionType = actionType
	action.Description = req.Description
	action.Lat = *req.Lat
	action.Lon = *req.Lon
	action.IsExpired = req.IsExpired
	action.DisasterID = req.DisasterID
	action.ActionObjects = objects
	return nil
}

func (s *ActionService) Get(ctx context.Context, id uuid.UUID) (*models.Action, error) {
	var action models.Action
	err := s.db.WithContext(ctx).
		Preload("ActionObjects").
		Preload("ActionObjects.Category").
		First(&action, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &action, nil
}

func (s *ActionService) List(ctx context.Context, limit, offset int) ([]models.Action, int64, error) {
	return s.list(ctx, nil, limit, offset)
}

// ListByDisaster returns the actions attached to one disaster.
func (s *ActionService) ListByDisaster(ctx context.Context, disasterID uuid.UUID, limit, offset int) ([]models.Action, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Disaster{}).Where("id = ?", disasterID).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, ErrNotFound
	}
	return s.list(ctx, &disasterID, limit, offset)
}

func (s *ActionService) list(ctx context.Context, disasterID *uuid.UUID, limit, offset int) ([]models.Action, int64, error) {
	var actions []models.Action
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Action{})
	if disasterID != nil {
		query = query.Where("disaster_id = ?", *disasterID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Preload("ActionObjects").
		Preload("ActionObjects.Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&actions).Error
	if err != nil {
		return nil, 0, err
	}
	return actions, total, nil
}

func (s *ActionService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM action_action_objects WHERE action_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Action{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

