package homepage

import (
	"context"
	"errors"
	"fmt"

	"relation-manager/core/reconcile"
	"relation-manager/feature/homepage/models"

	"gorm.io/gorm"
)

// Relation names on a homepage.
const (
	RelationContent = "content"
	RelationAlert   = "alert"
)

// Metadata describes the homepage relations and hands out their setters.
type Metadata struct {
	relations map[string]reconcile.Relation
}

// NewMetadata creates relation metadata backed by db.
func NewMetadata(db *gorm.DB) *Metadata {
	return &Metadata{relations: map[string]reconcile.Relation{
		RelationContent: {
			Name:        RelationContent,
			Cardinality: reconcile.Collection,
			TargetType:  models.TypeArticle,
			Setter:      &contentSetter{db: db},
		},
		RelationAlert: {
			Name:        RelationAlert,
			Cardinality: reconcile.Singular,
			TargetType:  models.TypeAlert,
			Setter:      &alertSetter{db: db},
		},
	}}
}

// RelationFor implements reconcile.Metadata.
func (m *Metadata) RelationFor(ownerType, name string) (reconcile.Relation, error) {
	rel, ok := m.relations[name]
	if !ok || ownerType != models.OwnerTypeHomepage {
		return reconcile.Relation{}, reconcile.UnknownRelationError{OwnerType: ownerType, Name: name}
	}
	return rel, nil
}

func asHomepage(owner reconcile.Owner) (*models.Homepage, error) {
	hp, ok := owner.(*models.Homepage)
	if !ok {
		return nil, fmt.Errorf("expected *models.Homepage owner, got %T", owner)
	}
	return hp, nil
}

// contentSetter stores the content collection as homepage_contents rows.
type contentSetter struct {
	db *gorm.DB
}

func (s *contentSetter) Load(ctx context.Context, owner reconcile.Owner) ([]reconcile.Entity, error) {
	hp, err := asHomepage(owner)
	if err != nil {
		return nil, err
	}

	var rows []*models.HomepageContent
	err = s.db.WithContext(ctx).
		Where("homepage_id = ?", hp.ID).
		Order("position").
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load homepage content: %w", err)
	}

	entities := make([]reconcile.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, row)
	}
	return entities, nil
}

// Replace swaps every content row of the homepage in one transaction.
// Positions are renumbered from 0 so that the stored order is exactly the given order.
func (s *contentSetter) Replace(ctx context.Context, owner reconcile.Owner, entities []reconcile.Entity) error {
	hp, err := asHomepage(owner)
	if err != nil {
		return err
	}

	rows := make([]*models.HomepageContent, 0, len(entities))
	for i, e := range entities {
		row, ok := e.(*models.HomepageContent)
		if !ok {
			return fmt.Errorf("content entity %d: expected *models.HomepageContent, got %T", i, e)
		}
		rows = append(rows, &models.HomepageContent{
			ID:          row.ID,
			HomepageID:  hp.ID,
			ContentType: row.ContentType,
			ContentID:   row.ContentID,
			Position:    i,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("homepage_id = ?", hp.ID).Delete(&models.HomepageContent{}).Error; err != nil {
			return fmt.Errorf("failed to delete homepage content: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert homepage content: %w", err)
		}
		return nil
	})
}

func (s *contentSetter) Clear(ctx context.Context, owner reconcile.Owner) error {
	return s.Replace(ctx, owner, nil)
}

// alertSetter stores the singular alert relation in homepages.alert_id.
type alertSetter struct {
	db *gorm.DB
}

func (s *alertSetter) Load(ctx context.Context, owner reconcile.Owner) ([]reconcile.Entity, error) {
	hp, err := asHomepage(owner)
	if err != nil {
		return nil, err
	}
	if hp.AlertID == nil {
		return []reconcile.Entity{}, nil
	}

	var alert models.Alert
	err = s.db.WithContext(ctx).First(&alert, *hp.AlertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Dangling reference: treat as absent
		return []reconcile.Entity{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load alert %d: %w", *hp.AlertID, err)
	}
	return []reconcile.Entity{&alert}, nil
}

func (s *alertSetter) Replace(ctx context.Context, owner reconcile.Owner, entities []reconcile.Entity) error {
	hp, err := asHomepage(owner)
	if err != nil {
		return err
	}
	if len(entities) == 0 {
		return setAlertID(ctx, s.db, hp, nil)
	}
	alert, ok := entities[0].(*models.Alert)
	if !ok {
		return fmt.Errorf("alert entity: expected *models.Alert, got %T", entities[0])
	}
	return setAlertID(ctx, s.db, hp, &alert.ID)
}

func (s *alertSetter) Clear(ctx context.Context, owner reconcile.Owner) error {
	hp, err := asHomepage(owner)
	if err != nil {
		return err
	}
	return setAlertID(ctx, s.db, hp, nil)
}

// setAlertID persists alert_id and mirrors it on the in-memory homepage.
func setAlertID(ctx context.Context, db *gorm.DB, hp *models.Homepage, id *uint) error {
	var value any
	if id != nil {
		value = *id
	}
	err := db.WithContext(ctx).
		Model(&models.Homepage{}).
		Where("id = ?", hp.ID).
		Update("alert_id", value).Error
	if err != nil {
		return fmt.Errorf("failed to update alert of homepage %d: %w", hp.ID, err)
	}
	if id == nil {
		hp.AlertID = nil
	} else {
		v := *id
		hp.AlertID = &v
	}
	return nil
}
