package homepage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"relation-manager/core/database"
	"relation-manager/core/logger"
	"relation-manager/core/reconcile"
	"relation-manager/core/storage"
	"relation-manager/feature/homepage/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrHomepageNotFound is returned when a homepage id does not exist.
var ErrHomepageNotFound = errors.New("homepage not found")

// requiredColumns lists the columns each table must have for the relations to work.
var requiredColumns = map[string][]string{
	"articles":          {"id", "slug", "headline"},
	"alerts":            {"id", "headline"},
	"homepages":         {"id", "title", "alert_id"},
	"homepage_contents": {"id", "homepage_id", "content_type", "content_id", "position"},
}

// Service wires the reconciliation engine to the homepage tables.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	// registry caches lookups for the duration of one Apply call only.
	registry *reconcile.CachedRegistry
	table    *reconcile.Table
	dryRun   bool

	// mu serializes Apply calls; the engine itself does not lock.
	mu sync.Mutex
}

// NewService creates a homepage service using db for all collaborators.
func NewService(db *gorm.DB, log *zap.Logger, cfg reconcile.Config) (*Service, error) {
	if log == nil {
		log = zap.NewNop()
	}

	metadata := NewMetadata(db)
	registry := reconcile.NewCachedRegistry(NewRegistry(db), cfg.CacheTTL())
	reconciler := reconcile.New(registry, metadata, NewBuilder(db), log)

	table := reconcile.NewTable(reconciler, metadata, models.OwnerTypeHomepage)
	if err := table.Register(RelationContent, RelationAlert); err != nil {
		return nil, fmt.Errorf("failed to register homepage relations: %w", err)
	}

	return &Service{
		db:       db,
		logger:   log,
		registry: registry,
		table:    table,
		dryRun:   cfg.DryRun,
	}, nil
}

// Relations returns the relation names that can be shown and applied.
func (s *Service) Relations() []string {
	return s.table.Names()
}

// Migrate creates or updates the homepage tables.
func (s *Service) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate homepage schema: %w", err)
	}
	return nil
}

// CheckSchema returns the missing columns per table. An empty map means the schema is complete.
func (s *Service) CheckSchema(ctx context.Context) (map[string][]string, error) {
	tables := make([]string, 0, len(requiredColumns))
	for table := range requiredColumns {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	db := s.db.WithContext(ctx)
	missing := make(map[string][]string)
	for _, table := range tables {
		cols, err := database.MissingColumns(db, table, requiredColumns[table]...)
		if err != nil {
			return nil, err
		}
		if len(cols) > 0 {
			missing[table] = cols
		}
	}
	return missing, nil
}

// Homepage loads a homepage by id.
func (s *Service) Homepage(ctx context.Context, id uint) (*models.Homepage, error) {
	var hp models.Homepage
	err := s.db.WithContext(ctx).First(&hp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrHomepageNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load homepage %d: %w", id, err)
	}
	return &hp, nil
}

// Show returns the current relation content of a homepage as JSON text.
func (s *Service) Show(ctx context.Context, homepageID uint, relation string) (string, error) {
	ops, err := s.table.Get(relation)
	if err != nil {
		return "", err
	}
	hp, err := s.Homepage(ctx, homepageID)
	if err != nil {
		return "", err
	}
	return ops.Text(ctx, hp)
}

// Apply reconciles a homepage relation with the JSON payload in text.
// The configured dry-run mode and dryRun are OR-ed together.
func (s *Service) Apply(ctx context.Context, homepageID uint, relation, text string, dryRun bool) (*reconcile.Result, error) {
	ops, err := s.table.Get(relation)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hp, err := s.Homepage(ctx, homepageID)
	if err != nil {
		return nil, err
	}

	// Entries from earlier calls may point at deleted rows
	s.registry.Purge()

	l := logger.WithRelation(s.logger, hp.OwnerType(), relation).With(zap.Uint("homepage_id", hp.ID))

	result, err := ops.Apply(ctx, hp, text, reconcile.ApplyOptions{DryRun: dryRun || s.dryRun})
	if err != nil {
		l.Error("Relation apply failed", zap.Error(err))
		return nil, err
	}

	l.Info("Relation applied",
		zap.String("action", string(result.Action)),
		zap.Int("count", len(result.Value)),
		zap.Strings("skipped", result.Skipped),
	)
	return result, nil
}

// ApplyObject reads the payload from object storage and applies it.
func (s *Service) ApplyObject(ctx context.Context, client storage.Client, bucket, objectName string, homepageID uint, relation string, dryRun bool) (*reconcile.Result, error) {
	data, err := storage.ReadObject(ctx, client, bucket, objectName)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, homepageID, relation, string(data), dryRun)
}

// Export writes the current relation text of a homepage to object storage.
func (s *Service) Export(ctx context.Context, client storage.Client, bucket, objectName string, homepageID uint, relation string) error {
	text, err := s.Show(ctx, homepageID, relation)
	if err != nil {
		return err
	}
	return storage.WriteObject(ctx, client, bucket, objectName, []byte(text), "application/json")
}

// InvalidateCache drops cached registry lookups, e.g. after articles were edited.
func (s *Service) InvalidateCache() {
	s.registry.Purge()
}
