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

// CategoryService manages object categories and the action objects filed
// under them.
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	category := models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", translate(err))
	}
	return &category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("name", "is required")
	}

	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", translate(err))
	}
	return category, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context, limit, offset int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	query := s.db.WithContext(ctx).Model(&models.Category{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&categories).Error; err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ActionObject{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (s *CategoryService) CreateActionObject(ctx context.Context, req *dto.ActionObjectRequest) (*models.ActionObject, error) {
	object := models.ActionObject{}
	if err := s.applyActionObject(ctx, &object, req); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("Category").Create(&object).Error; err != nil {
		return nil, fmt.Errorf("failed to create action object: %w", translate(err))
	}
	return s.GetActionObject(ctx, object.ID)
}

func (s *CategoryService) UpdateActionObject(ctx context.Context, id uuid.UUID, req *dto.ActionObjectRequest) (*models.ActionObject, error) {
	object, err := s.GetActionObject(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyActionObject(ctx, object, req); err != nil {
		return nil, err
	}
	object.Category = nil
	if err := s.db.WithContext(ctx).Omit("Category").Save(object).Error; err != nil {
		return nil, fmt.Errorf("failed to update action object: %w", translate(err))
	}
	return s.GetActionObject(ctx, id)
}

func (s *CategoryService) applyActionObject(ctx context.Context, object *models.ActionObject, req *dto.ActionObjectRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return invalid("name", "is required")
	}
	if req.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return invalid("category_id", "unknown category")
			}
			return err
		}
	}
	object.Name = name
	object.CategoryID = req.CategoryID
	return nil
}

func (s *CategoryService) GetActionObject(ctx context.Context, id uuid.UUID) (*models.ActionObject, error) {
	var object models.ActionObject
	if err := s.db.WithContext(ctx).Preload("Category").First(&object, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &object, nil
}

// ListActionObjects lists objects, optionally restricted to one category.
func (s *CategoryService) ListActionObjects(ctx context.Context, categoryID *uuid.UUID, limit, offset int) ([]models.ActionObject, int64, error) {
	var objects []models.ActionObject
	var total int64

	query := s.db.WithContext(ctx).Model(&models.ActionObject{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Preload("Category").Order("name ASC").Limit(limit).Offset(offset).Find(&objects).Error; err != nil {
		return nil, 0, err
	}
	return objects, total, nil
}

func (s *CategoryService) DeleteActionObject(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM action_action_objects WHERE action_object_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ActionObject{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
