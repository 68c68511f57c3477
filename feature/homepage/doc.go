// Package homepage implements homepage relation management on top of core/reconcile.
//
// A homepage owns two relations that editors update by submitting JSON:
//  1. content: an ordered collection of articles, stored as homepage_contents rows.
//  2. alert: an optional breaking-news alert, stored in homepages.alert_id.
//
// # Collaborators
//
// The package supplies everything the engine treats as external:
//
//   - Registry: resolves "article-<id>" and "alert-<id>" keys through gorm.
//   - Metadata: declares the two relations and their setters.
//   - Builder: creates unsaved content rows, and assigns alerts directly.
//
// # Components
//
//   - Service: wires the engine (with a cached registry) and exposes Show, Apply,
//     ApplyObject and Export per homepage id.
//   - Migrate / CheckSchema: create the tables and verify their columns.
//
// # Payloads
//
//	[{"id": "article-12", "position": 1}, {"id": "article-7", "position": 2}]
//
// Unknown keys are skipped. Re-submitting the current order does not write.
package homepage
