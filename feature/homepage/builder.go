package homepage

import (
	"context"
	"fmt"

	"relation-manager/core/reconcile"
	"relation-manager/feature/homepage/models"

	"gorm.io/gorm"
)

// Builder turns resolved payload elements into homepage relation content.
type Builder struct {
	db *gorm.DB
}

// NewBuilder creates a Builder that persists singular assignments through db.
func NewBuilder(db *gorm.DB) *Builder {
	return &Builder{db: db}
}

// Build implements reconcile.Builder.
//
// For "content" it returns a new, unsaved HomepageContent row pointing at the
// article; the engine decides whether to commit it. For "alert" it assigns and
// persists the alert directly.
func (b *Builder) Build(ctx context.Context, owner reconcile.Owner, name string, input reconcile.InputElement, target reconcile.Entity) (reconcile.Entity, error) {
	hp, err := asHomepage(owner)
	if err != nil {
		return nil, err
	}

	switch name {
	case RelationContent:
		article, ok := target.(*models.Article)
		if !ok {
			// Only articles can be placed; other keys are dropped.
			return nil, nil
		}
		return &models.HomepageContent{
			HomepageID:  hp.ID,
			ContentType: models.TypeArticle,
			ContentID:   article.ID,
			Position:    input.Position,
		}, nil

	case RelationAlert:
		alert, ok := target.(*models.Alert)
		if !ok {
			return nil, nil
		}
		if err := setAlertID(ctx, b.db, hp, &alert.ID); err != nil {
			return nil, err
		}
		return alert, nil

	default:
		return nil, fmt.Errorf("no builder for relation %q", name)
	}
}
