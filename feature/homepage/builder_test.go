package homepage

import (
	"context"
	"testing"

	"relation-manager/core/reconcile"
	"relation-manager/feature/homepage/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Content(t *testing.T) {
	db := setupTestDB(t)
	builder := NewBuilder(db)
	hp := &models.Homepage{ID: 1}

	built, err := builder.Build(context.Background(), hp, RelationContent,
		reconcile.InputElement{Key: "article-2", Position: 4}, &models.Article{ID: 2})
	require.NoError(t, err)

	row, ok := built.(*models.HomepageContent)
	require.True(t, ok)
	assert.Equal(t, uint(1), row.HomepageID)
	assert.Equal(t, uint(2), row.ContentID)
	assert.Equal(t, 4, row.Position)
	assert.Empty(t, row.ID, "content rows are not saved by the builder")

	var count int64
	require.NoError(t, db.Model(&models.HomepageContent{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestBuilder_ContentDropsNonArticles(t *testing.T) {
	builder := NewBuilder(setupTestDB(t))

	built, err := builder.Build(context.Background(), &models.Homepage{ID: 1}, RelationContent,
		reconcile.InputElement{Key: "alert-1"}, &models.Alert{ID: 1})
	require.NoError(t, err)
	assert.Nil(t, built)
}

func TestBuilder_AlertPersists(t *testing.T) {
	db := setupTestDB(t)
	builder := NewBuilder(db)
	hp := &models.Homepage{ID: 1}

	built, err := builder.Build(context.Background(), hp, RelationAlert,
		reconcile.InputElement{Key: "alert-1"}, &models.Alert{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "alert-1", reconcile.FormOf(built).ID)
	require.NotNil(t, hp.AlertID)

	var stored models.Homepage
	require.NoError(t, db.First(&stored, 1).Error)
	require.NotNil(t, stored.AlertID)
	assert.Equal(t, uint(1), *stored.AlertID)
}

func TestBuilder_Errors(t *testing.T) {
	builder := NewBuilder(setupTestDB(t))

	_, err := builder.Build(context.Background(), &models.Homepage{ID: 1}, "sidebar",
		reconcile.InputElement{Key: "article-1"}, &models.Article{ID: 1})
	assert.ErrorContains(t, err, "sidebar")

	_, err = builder.Build(context.Background(), fakeOwner{}, RelationContent,
		reconcile.InputElement{Key: "article-1"}, &models.Article{ID: 1})
	assert.Error(t, err)
}

type fakeOwner struct{}

func (fakeOwner) OwnerType() string { return models.OwnerTypeHomepage }
