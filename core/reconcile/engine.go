package reconcile

import (
	"context"
	"errors"
	"fmt"

	"relation-manager/core/logger"

	"go.uber.org/zap"
)

// Reconciler applies JSON payloads to owner relations.
// It holds no per-call state; callers must not reconcile the same relation on
// the same owner concurrently.
type Reconciler struct {
	registry Registry
	metadata Metadata
	builder  Builder
	logger   *zap.Logger
}

// New creates a Reconciler from its collaborators. A nil logger disables logging.
func New(registry Registry, metadata Metadata, builder Builder, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		registry: registry,
		metadata: metadata,
		builder:  builder,
		logger:   logger,
	}
}

// CurrentForm returns the simple forms of the relation's current content.
// An absent singular relation yields an empty slice.
func (r *Reconciler) CurrentForm(ctx context.Context, owner Owner, name string) ([]SimpleForm, error) {
	rel, err := r.metadata.RelationFor(owner.OwnerType(), name)
	if err != nil {
		return nil, err
	}
	current, err := rel.Setter.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load relation %s: %w", name, err)
	}
	return FormsOf(current), nil
}

// CurrentText returns CurrentForm encoded as JSON text.
func (r *Reconciler) CurrentText(ctx context.Context, owner Owner, name string) (string, error) {
	forms, err := r.CurrentForm(ctx, owner, name)
	if err != nil {
		return "", err
	}
	return EncodeForms(forms)
}

// Apply reconciles the named relation on owner with the JSON payload in text.
//
// Empty text is a no-op: nothing is looked up or loaded and Value stays nil.
// Collections are rebuilt from the resolvable elements and only committed when
// their simple form differs from the current one. Singular relations use the
// first element: none (or an empty object) clears the relation, a resolvable
// one is handed to the Builder, an unresolvable one is ignored.
func (r *Reconciler) Apply(ctx context.Context, owner Owner, name, text string, opts ApplyOptions) (*Result, error) {
	result := &Result{Relation: name, Action: ActionNone, Skipped: []string{}}

	if text == "" {
		return result, nil
	}

	elements, err := DecodeInput(name, text)
	if err != nil {
		return nil, err
	}

	rel, err := r.metadata.RelationFor(owner.OwnerType(), name)
	if err != nil {
		return nil, err
	}
	result.Cardinality = rel.Cardinality

	log := logger.WithRelation(r.logger, owner.OwnerType(), name).With(zap.Bool("dry_run", opts.DryRun))

	switch rel.Cardinality {
	case Collection:
		err = r.applyCollection(ctx, log, owner, rel, elements, opts, result)
	case Singular:
		err = r.applySingular(ctx, log, owner, rel, elements, opts, result)
	default:
		err = fmt.Errorf("relation %s has unsupported cardinality %d", name, rel.Cardinality)
	}
	if err != nil {
		return nil, err
	}

	return r.finish(ctx, owner, rel, result)
}

func (r *Reconciler) applyCollection(ctx context.Context, log *zap.Logger, owner Owner, rel Relation, elements []InputElement, opts ApplyOptions, result *Result) error {
	loaded := make([]Entity, 0, len(elements))

	for _, el := range elements {
		target, ok, err := r.resolve(ctx, el.Key)
		if err != nil {
			return err
		}
		if !ok {
			log.Debug("Skipping unresolved reference", zap.String("key", el.Key))
			result.Skipped = append(result.Skipped, el.Key)
			continue
		}

		built, err := r.builder.Build(ctx, owner, rel.Name, el, target)
		if err != nil {
			return fmt.Errorf("failed to build %s element %q: %w", rel.Name, el.Key, err)
		}
		if built == nil {
			continue
		}
		loaded = append(loaded, built)
	}

	current, err := rel.Setter.Load(ctx, owner)
	if err != nil {
		return fmt.Errorf("failed to load relation %s: %w", rel.Name, err)
	}

	if EqualForms(FormsOf(loaded), FormsOf(current)) {
		log.Debug("Relation unchanged, skipping write", zap.Int("count", len(loaded)))
		return nil
	}

	result.Action = ActionReplace
	if opts.DryRun {
		return nil
	}

	if err := rel.Setter.Replace(ctx, owner, loaded); err != nil {
		return fmt.Errorf("failed to replace relation %s: %w", rel.Name, err)
	}
	log.Info("Replaced relation content", zap.Int("count", len(loaded)))
	return nil
}

func (r *Reconciler) applySingular(ctx context.Context, log *zap.Logger, owner Owner, rel Relation, elements []InputElement, opts ApplyOptions, result *Result) error {
	// An empty object in first place clears like an empty array
	if len(elements) == 0 || len(elements[0].Attributes) == 0 {
		result.Action = ActionClear
		if opts.DryRun {
			return nil
		}
		if err := rel.Setter.Clear(ctx, owner); err != nil {
			return fmt.Errorf("failed to clear relation %s: %w", rel.Name, err)
		}
		log.Info("Cleared relation")
		return nil
	}

	el := elements[0]
	target, ok, err := r.resolve(ctx, el.Key)
	if err != nil {
		return err
	}
	if !ok {
		log.Debug("Skipping unresolved reference", zap.String("key", el.Key))
		result.Skipped = append(result.Skipped, el.Key)
		return nil
	}

	result.Action = ActionBuild
	if opts.DryRun {
		return nil
	}

	if _, err := r.builder.Build(ctx, owner, rel.Name, el, target); err != nil {
		return fmt.Errorf("failed to build %s element %q: %w", rel.Name, el.Key, err)
	}
	log.Info("Applied singular relation", zap.String("key", el.Key))
	return nil
}

// resolve looks up key, reporting ok=false for unresolvable keys.
func (r *Reconciler) resolve(ctx context.Context, key string) (Entity, bool, error) {
	if key == "" {
		return nil, false, nil
	}
	target, err := r.registry.Resolve(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to resolve %q: %w", key, err)
	}
	if target == nil {
		return nil, false, nil
	}
	return target, true, nil
}

func (r *Reconciler) finish(ctx context.Context, owner Owner, rel Relation, result *Result) (*Result, error) {
	value, err := rel.Setter.Load(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load relation %s: %w", rel.Name, err)
	}
	result.Value = value
	return result, nil
}
