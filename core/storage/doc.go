// Package storage abstracts the object storage holding the published data
// repository.
//
// It wraps the MinIO Go client behind the small Client interface used by the
// data sync feature, so both AWS S3 and self-hosted MinIO work and tests can
// substitute the mock in core/storage/mocks.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	for obj := range client.ListObjects(ctx, cfg.Storage.Bucket, minio.ListObjectsOptions{Prefix: "parsed/", Recursive: true}) {
//	    ...
//	}
package storage
