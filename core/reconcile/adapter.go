package reconcile

import "context"

// Registry resolves opaque object keys to live entities.
type Registry interface {
	// Resolve returns the entity for key, or ErrNotFound if no such entity exists.
	// Any other error aborts the reconciliation.
	Resolve(ctx context.Context, key string) (Entity, error)
}

// Metadata reports how a named relation behaves on a given owner type.
type Metadata interface {
	// RelationFor returns the relation description, or an UnknownRelationError.
	RelationFor(ownerType, name string) (Relation, error)
}

// Builder turns a decoded input element and its resolved target into relation content.
type Builder interface {
	// Build constructs or updates the entity for input on owner.
	// Returning a nil entity drops the element from a collection.
	// For singular relations the Builder is expected to perform the assignment itself.
	Build(ctx context.Context, owner Owner, name string, input InputElement, target Entity) (Entity, error)
}

// Setter reads and rewrites the content of one relation on an owner instance.
// Each (owner type, relation name) pair has its own Setter.
type Setter interface {
	// Load returns the current relation content. Singular relations return
	// zero or one entity.
	Load(ctx context.Context, owner Owner) ([]Entity, error)

	// Replace commits entities as the new relation content. Implementations
	// must apply all of it or none of it.
	Replace(ctx context.Context, owner Owner, entities []Entity) error

	// Clear sets a singular relation to absent, or empties a collection.
	Clear(ctx context.Context, owner Owner) error
}
