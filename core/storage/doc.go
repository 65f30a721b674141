// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface. mods-merger uses it
// to read vanilla assets kept in a bucket and to publish merged output.
//
// # Operations
//
//   - BucketExists / MakeBucket: EnsureBucket creates the target bucket on first publish.
//   - PutObject: Upload stores a merged file.
//   - GetObject: vanilla assets are streamed from here.
//   - ListObjects: ListKeys enumerates published output.
//
// The mocks subpackage holds a testify mock of Client.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
//	err = storage.Upload(ctx, client, cfg.Storage.Bucket, "merged/msg/engus/item.msgbnd.dcx", data)
package storage
