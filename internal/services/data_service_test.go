package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	db := dbtest.New(t)
	svc := NewDataService(db)
	ctx := context.Background()

	seeded, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	counts := map[any]int64{
		&models.Category{}:     6,
		&models.DisasterType{}: 4,
		&models.ActionObject{}: 12,
		&models.Disaster{}:     3,
		&models.Action{}:       15,
	}
	for model, want := range counts {
		var got int64
		require.NoError(t, db.Model(model).Count(&got).Error)
		assert.Equal(t, want, got, "%T", model)
	}

	var berlin models.Disaster
	require.NoError(t, db.Preload("DisasterType").Where("title = ?", "Berlin Erdbeben").First(&berlin).Error)
	assert.Equal(t, "Erdbeben", berlin.DisasterType.Name)

	actions, total, err := NewActionService(db).ListByDisaster(ctx, berlin.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	objects := 0
	for _, a := range actions {
		objects += len(a.ActionObjects)
	}
	assert.Equal(t, 7, objects)

	seeded, err = svc.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	var actionCount int64
	require.NoError(t, db.Model(&models.Action{}).Count(&actionCount).Error)
	assert.Equal(t, int64(15), actionCount)
}

func TestSeedReusesExistingDisasterTypes(t *testing.T) {
	db := dbtest.New(t)
	require.NoError(t, db.Create(&models.DisasterType{Name: "Erdbeben"}).Error)

	seeded, err := NewDataService(db).Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, seeded)

	var count int64
	require.NoError(t, db.Model(&models.DisasterType{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
