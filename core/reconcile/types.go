package reconcile

// Cardinality describes how many targets a relation holds.
type Cardinality int

const (
	// Collection relations hold an ordered sequence of targets.
	Collection Cardinality = iota
	// Singular relations hold at most one target.
	Singular
)

// String returns the lower-case name of the cardinality.
func (c Cardinality) String() string {
	switch c {
	case Collection:
		return "collection"
	case Singular:
		return "singular"
	default:
		return "unknown"
	}
}

// Entity is anything that can appear as relation content.
type Entity interface {
	// Identity returns the internal identity of the entity (usually its primary key).
	Identity() any
}

// Keyed is implemented by entities exposing a stable external object key.
// When present it takes precedence over Identity in the simple form.
type Keyed interface {
	ObjectKey() string
}

// Owner is an entity whose named relations are subject to reconciliation.
type Owner interface {
	// OwnerType names the owner kind used for relation metadata lookups.
	OwnerType() string
}

// SimpleForm is the canonical comparable projection of one entity.
type SimpleForm struct {
	// ID is the object key of the entity, or its identity when it has no key.
	ID any `json:"id"`
}

// InputElement is one decoded object from an incoming payload.
type InputElement struct {
	// Key is the "id" field, used to resolve the target through the Registry.
	Key string

	// Position orders elements before processing. It is never persisted by the engine.
	Position int

	// Attributes holds the full decoded object, including id and position.
	Attributes map[string]any
}

// Relation describes a named relation on an owner type.
type Relation struct {
	// Name is the relation name (e.g., "content").
	Name string

	// Cardinality tells the engine which update semantics apply.
	Cardinality Cardinality

	// TargetType names the entity type the relation points to.
	TargetType string

	// Setter reads and rewrites the relation content on an owner instance.
	Setter Setter
}

// Action is the outcome of a reconciliation call.
type Action string

const (
	// ActionNone means the relation was left untouched.
	ActionNone Action = "none"
	// ActionReplace means the collection content was replaced.
	ActionReplace Action = "replace"
	// ActionClear means the singular relation was cleared.
	ActionClear Action = "clear"
	// ActionBuild means the Builder applied a singular update.
	ActionBuild Action = "build"
)

// ApplyOptions controls Apply behavior.
type ApplyOptions struct {
	// DryRun prevents commits. Collections are still resolved and built so the
	// result reports what would change; singular relations are only resolved.
	DryRun bool
}

// Result describes what a reconciliation call did.
type Result struct {
	// Relation is the relation name.
	Relation string `json:"relation"`

	// Cardinality of the relation.
	Cardinality Cardinality `json:"-"`

	// Action is what happened (or, in dry-run mode, what would have happened).
	Action Action `json:"action"`

	// Skipped lists object keys that could not be resolved.
	Skipped []string `json:"skipped"`

	// Value is the relation content after the call.
	Value []Entity `json:"-"`
}

// Config holds engine settings loaded with the rest of the application config.
type Config struct {
	// CacheTTLSeconds is how long resolved objects are cached. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
	// DryRun makes every Apply a dry run unless overridden by the caller.
	DryRun bool `mapstructure:"dry_run" default:"false"`
}
