package homepage

import (
	"fmt"
	"strings"
	"testing"

	"relation-manager/core/database"
	"relation-manager/core/reconcile"
	"relation-manager/feature/homepage/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite DB with the homepage schema and
// two articles, one alert and one empty homepage (id 1).
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver: "sqlite",
		Name:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))

	require.NoError(t, db.Create(&models.Article{ID: 1, Slug: "budget-vote", Headline: "Council passes budget"}).Error)
	require.NoError(t, db.Create(&models.Article{ID: 2, Slug: "storm-watch", Headline: "Storm expected Friday"}).Error)
	require.NoError(t, db.Create(&models.Alert{ID: 1, Headline: "Freeway closed"}).Error)
	require.NoError(t, db.Create(&models.Homepage{ID: 1, Title: "Main"}).Error)

	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	svc, err := NewService(db, zap.NewNop(), reconcile.Config{CacheTTLSeconds: 60})
	require.NoError(t, err)
	return svc
}
