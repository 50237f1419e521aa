package minio

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/clustereval/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	data, _ := io.ReadAll(reader)
	args := m.Called(bucketName, objectName, string(data), objectSize)
	return minio.UploadInfo{Key: objectName, Size: objectSize}, args.Error(0)
}

func (m *mockClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error) {
	args := m.Called(bucketName, objectName)
	return nil, args.Error(0)
}

func (m *mockClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return m.Called(bucketName, objectName).Error(0)
}

func (m *mockClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	args := m.Called(bucketName, opts.Prefix)
	infos := args.Get(0).([]minio.ObjectInfo)
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestStore_Put(t *testing.T) {
	client := new(mockClient)
	client.On("PutObject", "bucket", "root/reports/a.json", "{}", int64(2)).Return(nil).Once()

	store := NewStore(client, "bucket", "root/")
	require.NoError(t, store.Put(context.Background(), "reports/a.json", []byte("{}")))
	client.AssertExpectations(t)
}

func TestStore_GetNotFound(t *testing.T) {
	client := new(mockClient)
	client.On("GetObject", "bucket", "root/missing").Return(minio.ErrorResponse{Code: "NoSuchKey"}).Once()

	store := NewStore(client, "bucket", "root")
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	client := new(mockClient)
	client.On("RemoveObject", "bucket", "root/gone").Return(minio.ErrorResponse{Code: "NoSuchKey"}).Once()
	client.On("RemoveObject", "bucket", "root/fail").Return(assert.AnError).Once()

	store := NewStore(client, "bucket", "root")
	assert.NoError(t, store.Delete(context.Background(), "gone"))
	assert.ErrorIs(t, store.Delete(context.Background(), "fail"), assert.AnError)
}

func TestStore_List(t *testing.T) {
	client := new(mockClient)
	client.On("ListObjects", "bucket", "root/reports/").Return([]minio.ObjectInfo{
		{Key: "root/reports/b.json"},
		{Key: "root/reports/a.json"},
	}).Once()
	client.On("ListObjects", "bucket", "root/broken").Return([]minio.ObjectInfo{
		{Err: assert.AnError},
	}).Once()

	store := NewStore(client, "bucket", "root")

	names, err := store.List(context.Background(), "reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/a.json", "reports/b.json"}, names)

	_, err = store.List(context.Background(), "broken")
	assert.ErrorIs(t, err, assert.AnError)
}

// TestStore_Integration requires a running MinIO instance.
// Set MINIO_ENDPOINT to enable it.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		t.Skip("MINIO_ENDPOINT not set")
	}

	client, err := NewClient(endpoint, "minioadmin", "minioadmin", false)
	require.NoError(t, err)

	ctx := context.Background()
	bucket := "clustereval-test"
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	store := NewStore(client, bucket, "test-prefix/")
	data := bytes.Repeat([]byte("report"), 10)
	require.NoError(t, store.Put(ctx, "r.json", data))

	got, err := store.Get(ctx, "r.json")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "r.json")

	require.NoError(t, store.Delete(ctx, "r.json"))
	_, err = store.Get(ctx, "r.json")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
