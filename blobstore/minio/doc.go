// Package minio stores archive blobs on MinIO and other S3-compatible servers.
//
// # Basic Usage
//
//	client, err := minioblob.NewClient("localhost:9000", "minioadmin", "minioadmin", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "experiments", "clustereval/")
//	arch := archive.New(store)
//
// Works with any S3-compatible storage (Ceph, Garage, SeaweedFS) and needs no
// AWS dependencies.
package minio
