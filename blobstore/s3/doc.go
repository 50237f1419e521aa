// Package s3 stores archive blobs on Amazon S3.
//
// # Usage
//
//	cfg, err := s3.LoadConfig(ctx, "eu-central-1")
//	if err != nil { ... }
//	store := s3.NewFromConfig(cfg, "my-bucket", "clustereval/")
//
// Uploads go through the S3 transfer manager, listing is paginated.
//
// # Commit Pointer
//
// S3 has no compare-and-swap. DDBCommitStore adds a DynamoDB table holding a
// versioned pointer to the latest report so concurrent writers never lose an
// update:
//
//	committed := s3.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg), "clustereval-commits", "s3://my-bucket/clustereval")
package s3
