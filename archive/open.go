package archive

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/clustereval/blobstore"
	"github.com/hupe1980/clustereval/blobstore/minio"
	s3store "github.com/hupe1980/clustereval/blobstore/s3"
)

// ErrUnsupportedScheme is returned by OpenStore for unknown URL schemes.
var ErrUnsupportedScheme = errors.New("unsupported archive scheme")

// StoreOptions tune OpenStore.
type StoreOptions struct {
	// DDBTable enables the DynamoDB commit pointer for s3:// archives.
	DDBTable string

	// Region overrides the AWS region for s3:// archives.
	Region string
}

// OpenStore opens the blob store named by rawURL:
//
//	mem://
//	file:///path/to/dir
//	s3://bucket/prefix
//	minio://endpoint/bucket/prefix[?secure=false]
//
// MinIO credentials come from MINIO_ACCESS_KEY and MINIO_SECRET_KEY.
func OpenStore(ctx context.Context, rawURL string, opts StoreOptions) (blobstore.Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("archive: parse url: %w", err)
	}

	switch u.Scheme {
	case "mem":
		return blobstore.NewMemoryStore(), nil
	case "file":
		dir := u.Path
		if u.Host != "" {
			dir = u.Host + dir
		}
		if dir == "" {
			return nil, fmt.Errorf("archive: file url %q has no path", rawURL)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		return blobstore.NewLocalStore(dir), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("archive: s3 url %q has no bucket", rawURL)
		}
		cfg, err := s3store.LoadConfig(ctx, opts.Region)
		if err != nil {
			return nil, fmt.Errorf("archive: load aws config: %w", err)
		}
		store := s3store.NewFromConfig(cfg, u.Host, strings.TrimPrefix(u.Path, "/"))
		if opts.DDBTable == "" {
			return store, nil
		}
		return s3store.NewDDBCommitStore(store, dynamodb.NewFromConfig(cfg), opts.DDBTable, rawURL), nil
	case "minio":
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("archive: minio url %q needs endpoint and bucket", rawURL)
		}
		access, secret := os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY")
		if access == "" || secret == "" {
			return nil, errors.New("archive: MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set")
		}
		client, err := minio.NewClient(u.Host, access, secret, u.Query().Get("secure") != "false")
		if err != nil {
			return nil, err
		}
		return minio.NewStore(client, bucket, prefix), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
