package homepage

import (
	"context"
	"errors"
	"fmt"

	"relation-manager/core/reconcile"
	"relation-manager/feature/homepage/models"

	"gorm.io/gorm"
)

// Registry resolves "<type>-<id>" object keys against the database.
type Registry struct {
	db *gorm.DB
}

// NewRegistry creates a gorm-backed object registry.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// Resolve implements reconcile.Registry. Malformed keys, unknown types and
// missing rows all report reconcile.ErrNotFound.
func (r *Registry) Resolve(ctx context.Context, key string) (reconcile.Entity, error) {
	objType, id, ok := models.ParseObjectKey(key)
	if !ok {
		return nil, reconcile.ErrNotFound
	}

	switch objType {
	case models.TypeArticle:
		return find[models.Article](ctx, r.db, id)
	case models.TypeAlert:
		return find[models.Alert](ctx, r.db, id)
	default:
		return nil, reconcile.ErrNotFound
	}
}

// find loads one row of T by primary key.
func find[T any, PT interface {
	*T
	reconcile.Entity
}](ctx context.Context, db *gorm.DB, id uint) (reconcile.Entity, error) {
	var row T
	err := db.WithContext(ctx).First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reconcile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %T %d: %w", row, id, err)
	}
	return PT(&row), nil
}
