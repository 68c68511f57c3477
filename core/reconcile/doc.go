// Package reconcile applies JSON payloads to named relations of an owner entity.
//
// A payload describes the desired content of one relation as an array of objects,
// each carrying an "id" (an object key) and an optional "position". The engine
// resolves every key, hands the element to a Builder, and then decides whether a
// write is needed at all by comparing simple forms of the built and current content.
//
// # Architecture
//
// The package consists of four parts:
//
// 1. Serializer: FormOf and FormsOf project entities to their SimpleForm
// ({"id": key}), the only thing compared when detecting a no-op update.
//
// 2. Reconciler: decodes the payload, resolves keys through a Registry, delegates to
// a Builder, and commits through the relation's Setter. Collections are compared before
// they are committed; singular relations are delegated to the Builder directly.
//
// 3. Table: the registration surface. Each relation name of an owner type gets its
// read-form, read-text and apply operations, validated against Metadata at startup.
//
// 4. CachedRegistry: TTL caching with stampede protection for Registry lookups.
//
// # Collaborators
//
// Storage, entity construction and key resolution are not implemented here. Callers
// supply a Registry, a Metadata (which also hands out a Setter per relation) and a
// Builder. See feature/homepage for a gorm-backed implementation.
//
// # Usage Example
//
//	r := reconcile.New(registry, metadata, builder, logger)
//	table := reconcile.NewTable(r, metadata, "homepage")
//	if err := table.Register("content", "alert"); err != nil {
//	    return err
//	}
//
//	ops, _ := table.Lookup("content")
//	result, err := ops.Apply(ctx, homepage, `[{"id":"article-2","position":1}]`, reconcile.ApplyOptions{})
//
// # Concurrency
//
// Apply reads and then conditionally writes the relation without locking. Callers
// must serialize reconciliation of the same relation on the same owner.
package reconcile
