// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface. Relation payloads can be
// read from a bucket instead of a local file, and the current text of a relation
// can be exported back to one. This supports both AWS S3 and self-hosted MinIO.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject / ReadObject: Retrieves a payload document.
//   - PutObject / WriteObject: Uploads an exported relation.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	payload, err := storage.ReadObject(ctx, client, "relations", "homepage/1/content.json")
package storage
