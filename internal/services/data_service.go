package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"gorm.io/gorm"
)

// DataService populates an empty database with a small demo data set.
type DataService struct {
	db *gorm.DB
}

func NewDataService(db *gorm.DB) *DataService {
	return &DataService{db: db}
}

type seedAction struct {
	disaster int
	kind     models.ActionType
	lat, lon float64
	objects  []string
}

var (
	seedCategories = []string{"Nahrung", "Waffen", "Erste-Hilfe", "Hilfsmittel", "Baumittel", "Anziehsachen"}

	seedDisasterTypes = []string{"Zombie-Angriff", "Erdbeben", "Überschwemmung", "Stromausfall"}

	// object name -> category name
	seedObjects = [][2]string{
		{"Schmerzmittel", "Erste-Hilfe"},
		{"Holz", "Baumittel"},
		{"Generator", "Hilfsmittel"},
		{"Verbandszeug", "Erste-Hilfe"},
		{"Rollstuhl", "Hilfsmittel"},
		{"Standardessen", "Nahrung"},
		{"Wasser", "Nahrung"},
		{"Supplemente", "Erste-Hilfe"},
		{"Zelt", "Hilfsmittel"},
		{"Betten", "Hilfsmittel"},
		{"Jacken", "Anziehsachen"},
		{"Schrottflinte", "Waffen"},
	}

	seedDisasters = []struct {
		title, disasterType string
		lat, lon            float64
	}{
		{"Berlin Erdbeben", "Erdbeben", 23, 23},
		{"New York Zombie-Angriff", "Zombie-Angriff", 45, 45},
		{"London Brexit", "Stromausfall", 34, 34},
	}

	seedActions = []seedAction{
		{0, models.ActionSeek, 23, 23, []string{"Schmerzmittel", "Holz", "Rollstuhl"}},
		{0, models.ActionOffer, 23, 23, []string{"Schrottflinte", "Standardessen", "Generator", "Rollstuhl"}},
		{1, models.ActionSeek, 45, 45, []string{"Generator", "Supplemente", "Zelt"}},
		{1, models.ActionSeek, 45, 45, []string{"Holz", "Betten", "Zelt"}},
		{1, models.ActionSeek, 45, 45, []string{"Generator", "Betten", "Zelt"}},
		{2, models.ActionKnowledge, 34.03, 34.03, nil},
		{2, models.ActionKnowledge, 34, 34.03, nil},
		{2, models.ActionKnowledge, 34.03, 34.05, nil},
		{2, models.ActionKnowledge, 34.03, 34, nil},
		{2, models.ActionKnowledge, 34.03, 34.033, nil},
		{2, models.ActionKnowledge, 34.00, 34.07, nil},
		{2, models.ActionKnowledge, 34.04, 34.03, nil},
		{2, models.ActionKnowledge, 34.03, 34.05, nil},
		{2, models.ActionKnowledge, 34.03, 34.02, nil},
		{2, models.ActionKnowledge, 34.03, 34.01, nil},
	}
)

// Seed inserts the demo data set when no action exists yet. It reports
// whether anything was written.
func (s *DataService) Seed(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Action{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count actions: %w", err)
	}
	if count > 0 {
		slog.Info("demo data skipped, database already has actions", "actions", count)
		return false, nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make(map[string]*models.Category, len(seedCategories))
		for _, name := range seedCategories {
			category := &models.Category{Name: name}
			if err := tx.Create(category).Error; err != nil {
				return err
			}
			categories[name] = category
		}

		types := make(map[string]*models.DisasterType, len(seedDisasterTypes))
		for _, name := range seedDisasterTypes {
			disasterType := &models.DisasterType{Name: name}
			// Types may exist without actions; reuse them.
			if err := tx.Where("name = ?", name).FirstOrCreate(disasterType).Error; err != nil {
				return err
			}
			types[name] = disasterType
		}

		objects := make(map[string]models.ActionObject, len(seedObjects))
		for _, o := range seedObjects {
			object := models.ActionObject{Name: o[0], CategoryID: &categories[o[1]].ID}
			if err := tx.Create(&object).Error; err != nil {
				return err
			}
			objects[o[0]] = object
		}

		disasters := make([]models.Disaster, len(seedDisasters))
		for i, d := range seedDisasters {
			disasters[i] = models.Disaster{
				Title:          d.title,
				Lat:            d.lat,
				Lon:            d.lon,
				DisasterTypeID: &types[d.disasterType].ID,
			}
			if err := tx.Create(&disasters[i]).Error; err != nil {
				return err
			}
		}

		for _, a := range seedActions {
			action := models.Action{
				ActionType: a.kind,
				Lat:        a.lat,
				Lon:        a.lon,
				DisasterID: &disasters[a.disaster].ID,
			}
			for _, name := range a.objects {
				action.ActionObjects = append(action.ActionObjects, objects[name])
			}
			if err := tx.Create(&action).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed demo data: %w", err)
	}

	slog.Info("demo data created",
		"categories", len(seedCategories),
		"disaster_types", len(seedDisasterTypes),
		"action_objects", len(seedObjects),
		"disasters", len(seedDisasters),
		"actions", len(seedActions),
	)
	return true, nil
}
