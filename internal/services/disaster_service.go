package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DisasterService struct {
	db *gorm.DB
}

func NewDisasterService(db *gorm.DB) *DisasterService {
	return &DisasterService{db: db}
}

func (s *DisasterService) CreateType(ctx context.Context, req *dto.DisasterTypeRequest) (*models.DisasterType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	disasterType := models.DisasterType{Name: name}
	if err := s.db.WithContext(ctx).Create(&disasterType).Error; err != nil {
		if err = translate(err); errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create disaster type: %w", err)
	}
	return &disasterType, nil
}

func (s *DisasterService) UpdateType(ctx context.Context, id uuid.UUID, req *dto.DisasterTypeRequest) (*models.DisasterType, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	disasterType, err := s.GetType(ctx, id)
	if err != nil {
		return nil, err
	}
	disasterType.Name = name
	if err := s.db.WithContext(ctx).Save(disasterType).Error; err != nil {
		if err = translate(err); errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update disaster type: %w", err)
	}
	return disasterType, nil
}

func (s *DisasterService) GetType(ctx context.Context, id uuid.UUID) (*models.DisasterType, error) {
	var disasterType models.DisasterType
	if err := s.db.WithContext(ctx).First(&disasterType, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &disasterType, nil
}

func (s *DisasterService) GetTypeByName(ctx context.Context, name string) (*models.DisasterType, error) {
	var disasterType models.DisasterType
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&disasterType).Error; err != nil {
		return nil, translate(err)
	}
	return &disasterType, nil
}

func (s *DisasterService) ListTypes(ctx context.Context, limit, offset int) ([]models.DisasterType, int64, error) {
	var types []models.DisasterType
	var total int64

	query := s.db.WithContext(ctx).Model(&models.DisasterType{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&types).Error; err != nil {
		return nil, 0, err
	}
	return types, total, nil
}

func (s *DisasterService) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Disaster{}).Where("disaster_type_id = ?", id).Update("disaster_type_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.DisasterType{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Create stores a new disaster reported by owner. owner may be nil for
// system-created rows such as the demo data.
func (s *DisasterService) Create(ctx context.Context, owner *models.User, req *dto.DisasterRequest) (*models.Disaster, error) {
	disaster := models.Disaster{}
	if err := s.apply(ctx, &disaster, req); err != nil {
		return nil, err
	}
	if owner != nil {
		disaster.UserID = &owner.ID
	}

	if err := s.db.WithContext(ctx).Omit("DisasterType", "User").Create(&disaster).Error; err != nil {
		return nil, fmt.Errorf("failed to create disaster: %w", translate(err))
	}
	return s.Get(ctx, disaster.ID)
}

func (s *DisasterService) Update(ctx context.Context, id uuid.UUID, req *dto.DisasterRequest) (*models.Disaster, error) {
	disaster, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, disaster, req); err != nil {
		return nil, err
	}
	disaster.DisasterType = nil
	if err := s.db.WithContext(ctx).Omit("DisasterType", "User").Save(disaster).Error; err != nil {
		return nil, fmt.Errorf("failed to update disaster: %w", translate(err))
	}
	return s.Get(ctx, id)
}

func (s *DisasterService) apply(ctx context.Context, disaster *models.Disaster, req *dto.DisasterRequest) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return invalid("title", "is required")
	}
	if err := validateCoordinates(req.Lat, req.Lon); err != nil {
		return err
	}
	if req.DisasterTypeID != nil {
		if _, err := s.GetType(ctx, *req.DisasterTypeID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalid("disaster_type_id", "unknown disaster type")
			}
			return err
		}
	}

	disaster.Title = title
	disaster.Description = req.Description
	disaster.Lat = *req.Lat
	disaster.Lon = *req.Lon
	disaster.IsExpired = req.IsExpired
	disaster.DisasterTypeID = req.DisasterTypeID
	return nil
}

func (s *DisasterService) Get(ctx context.Context, id uuid.UUID) (*models.Disaster, error) {
	var disaster models.Disaster
	if err := s.db.WithContext(ctx).Preload("DisasterType").First(&disaster, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &disaster, nil
}

// List returns disasters newest first. A non-nil expired filters on IsExpired.
func (s *DisasterService) List(ctx context.Context, expired *bool, limit, offset int) ([]models.Disaster, int64, error) {
	var disasters []models.Disaster
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Disaster{})
	if expired != nil {
		query = query.Where("is_expired = ?", *expired)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("DisasterType").Order("created_at DESC").Limit(limit).Offset(offset).Find(&disasters).Error; err != nil {
		return nil, 0, err
	}
	return disasters, total, nil
}

// Delete removes the disaster and detaches its actions.
func (s *DisasterService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Action{}).Where("disaster_id = ?", id).Update("disaster_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Disaster{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func validateCoordinates(lat, lon *float64) error {
	if lat == nil {
		return invalid("lat", "is required")
	}
	if lon == nil {
		return invalid("lon", "is required")
	}
	if *lat < -90 || *lat > 90 {
		return invalid("lat", "must be between -90 and 90")
	}
	if *lon < -180 || *lon > 180 {
		return invalid("lon", "must be between -180 and 180")
	}
	return nil
}
