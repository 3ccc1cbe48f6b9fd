package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/database/dbtest"
	"github.com/ahmetcoskunkizilkaya/disaster-service/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	svc := NewCategoryService(dbtest.New(t))
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, &dto.CategoryRequest{Name: " "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	food, err := svc.CreateCategory(ctx, &dto.CategoryRequest{Name: "Food"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, &dto.CategoryRequest{Name: "Clothing"})
	require.NoError(t, err)

	list, total, err := svc.ListCategories(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, "Clothing", list[0].Name)

	renamed, err := svc.UpdateCategory(ctx, food.ID, &dto.CategoryRequest{Name: "Nutrition"})
	require.NoError(t, err)
	assert.Equal(t, "Nutrition", renamed.Name)

	water, err := svc.CreateActionObject(ctx, &dto.ActionObjectRequest{Name: "Water", CategoryID: &food.ID})
	require.NoError(t, err)
	require.NotNil(t, water.Category)
	assert.Equal(t, "Nutrition", water.Category.Name)

	require.NoError(t, svc.DeleteCategory(ctx, food.ID))
	require.ErrorIs(t, svc.DeleteCategory(ctx, food.ID), ErrNotFound)

	orphan, err := svc.GetActionObject(ctx, water.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.CategoryID)
}

func TestActionObjects(t *testing.T) {
	svc := NewCategoryService(dbtest.New(t))
	ctx := context.Background()

	tools, err := svc.CreateCategory(ctx, &dto.CategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	missing := uuid.New()
	_, err = svc.CreateActionObject(ctx, &dto.ActionObjectRequest{Name: "Saw", CategoryID: &missing})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category_id", verr.Field)

	saw, err := svc.CreateActionObject(ctx, &dto.ActionObjectRequest{Name: "Saw", CategoryID: &tools.ID})
	require.NoError(t, err)
	_, err = svc.CreateActionObject(ctx, &dto.ActionObjectRequest{Name: "Blanket"})
	require.NoError(t, err)

	all, total, err := svc.ListActionObjects(ctx, nil, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	inTools, total, err := svc.ListActionObjects(ctx, &tools.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, saw.ID, inTools[0].ID)

	updated, err := svc.UpdateActionObject(ctx, saw.ID, &dto.ActionObjectRequest{Name: "Chainsaw", CategoryID: &tools.ID})
	require.NoError(t, err)
	assert.Equal(t, "Chainsaw", updated.Name)

	require.NoError(t, svc.DeleteActionObject(ctx, saw.ID))
	_, err = svc.GetActionObject(ctx, saw.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDisasterTypes(t *testing.T) {
	svc := NewDisasterService(dbtest.New(t))
	ctx := context.Background()

	quake, err := svc.CreateType(ctx, &dto.DisasterTypeRequest{Name: "Earthquake"})
	require.NoError(t, err)

	_, err = svc.CreateType(ctx, &dto.DisasterTypeRequest{Name: "Earthquake"})
	require.ErrorIs(t, err, ErrConflict)

	byName, err := svc.GetTypeByName(ctx, "Earthquake")
	require.NoError(t, err)
	assert.Equal(t, quake.ID, byName.ID)

	_, err = svc.GetTypeByName(ctx, "Meteor")
	require.ErrorIs(t, err, ErrNotFound)

	flood, err := svc.CreateType(ctx, &dto.DisasterTypeRequest{Name: "Flood"})
	require.NoError(t, err)
	_, err = svc.UpdateType(ctx, flood.ID, &dto.DisasterTypeRequest{Name: "Earthquake"})
	require.ErrorIs(t, err, ErrConflict)

	types, total, err := svc.ListTypes(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, types, 2)

	require.NoError(t, svc.DeleteType(ctx, flood.ID))
	require.ErrorIs(t, svc.DeleteType(ctx, flood.ID), ErrNotFound)
}
