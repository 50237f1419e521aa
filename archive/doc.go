// Package archive persists evaluation reports in a blobstore.
//
// A report is encoded with a codec, framed by internal/compress and written
// under reports/<id>.<codec>. After each save the archive moves a latest
// pointer: stores implementing blobstore.Committer keep it themselves (the
// memory store, S3 with DynamoDB), other stores get a LATEST blob.
//
//	store, err := archive.OpenStore(ctx, "file:///var/lib/clustereval", archive.StoreOptions{})
//	a := archive.New(store, archive.WithCompression(compress.Zstd))
//	id, err := a.Save(ctx, report)
//	latest, err := a.Latest(ctx)
package archive
