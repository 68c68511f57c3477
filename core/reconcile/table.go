package reconcile

import (
	"context"
	"fmt"
	"sort"
)

// Operations are the three per-relation entry points exposed for one relation name.
type Operations struct {
	// Form returns the current content as simple forms.
	Form func(ctx context.Context, owner Owner) ([]SimpleForm, error)
	// Text returns the current content as JSON text.
	Text func(ctx context.Context, owner Owner) (string, error)
	// Apply reconciles the relation with a JSON payload.
	Apply func(ctx context.Context, owner Owner, text string, opts ApplyOptions) (*Result, error)
}

// Table maps relation names of one owner type to their operations.
// Build it once at startup; it is read-only afterwards.
type Table struct {
	ownerType  string
	reconciler *Reconciler
	metadata   Metadata
	ops        map[string]Operations
}

// NewTable creates an empty table for ownerType.
func NewTable(reconciler *Reconciler, metadata Metadata, ownerType string) *Table {
	return &Table{
		ownerType:  ownerType,
		reconciler: reconciler,
		metadata:   metadata,
		ops:        make(map[string]Operations),
	}
}

// Register adds operations for each name. Every name must be known to the
// metadata and may only be registered once.
func (t *Table) Register(names ...string) error {
	if t.reconciler == nil {
		return fmt.Errorf("register relation: reconciler is nil")
	}
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("register relation: name is empty")
		}
		if _, exists := t.ops[name]; exists {
			return DuplicateRelationError{OwnerType: t.ownerType, Name: name}
		}
		if _, err := t.metadata.RelationFor(t.ownerType, name); err != nil {
			return err
		}
		t.ops[name] = t.bind(name)
	}
	return nil
}

func (t *Table) bind(name string) Operations {
	r := t.reconciler
	return Operations{
		Form: func(ctx context.Context, owner Owner) ([]SimpleForm, error) {
			return r.CurrentForm(ctx, owner, name)
		},
		Text: func(ctx context.Context, owner Owner) (string, error) {
			return r.CurrentText(ctx, owner, name)
		},
		Apply: func(ctx context.Context, owner Owner, text string, opts ApplyOptions) (*Result, error) {
			return r.Apply(ctx, owner, name, text, opts)
		},
	}
}

// Lookup returns the operations registered for name.
func (t *Table) Lookup(name string) (Operations, bool) {
	ops, ok := t.ops[name]
	return ops, ok
}

// Get is like Lookup but returns an UnknownRelationError when name is missing.
func (t *Table) Get(name string) (Operations, error) {
	ops, ok := t.ops[name]
	if !ok {
		return Operations{}, UnknownRelationError{OwnerType: t.ownerType, Name: name}
	}
	return ops, nil
}

// OwnerType returns the owner type this table serves.
func (t *Table) OwnerType() string {
	return t.ownerType
}

// Names returns the registered relation names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.ops))
	for name := range t.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
