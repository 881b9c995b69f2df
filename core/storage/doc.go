// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a narrow interface for the two
// operations the sync engine performs: checking that the configured bucket
// is reachable and inspecting object metadata. This abstraction supports
// both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - StatObject: Fetches object metadata without downloading the body.
//   - VerifyBucket: Startup check that the configured bucket exists.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	info, err := client.StatObject(ctx, "catalog-files", "images/logo.png", minio.StatObjectOptions{})
package storage
