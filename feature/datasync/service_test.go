package datasync

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dex-wiki/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testBucket = "test-bucket"

type countingCache struct {
	cleared int
}

func (c *countingCache) ClearCache() { c.cleared++ }

func listing(objs ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objs))
	for _, o := range objs {
		ch <- o
	}
	close(ch)
	return ch
}

func body(s string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(s))
}

func newTestService(t *testing.T) (*Service, *mocks.Client, *countingCache, string) {
	t.Helper()
	client := new(mocks.Client)
	cache := &countingCache{}
	dir := t.TempDir()
	svc := NewService(client, testBucket, Config{Prefix: "parsed/", Workers: 2}, dir, zap.NewNop(), cache)
	return svc, client, cache, dir
}

func TestPull(t *testing.T) {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tackle := `{"id": 33, "name": "tackle"}`
	bulbasaur := `{"id": 1, "name": "bulbasaur"}`
	objects := func() <-chan minio.ObjectInfo {
		return listing(
			minio.ObjectInfo{Key: "parsed/move/tackle.json", Size: int64(len(tackle)), LastModified: modified},
			minio.ObjectInfo{Key: "parsed/creature/default/bulbasaur.json", Size: int64(len(bulbasaur)), LastModified: modified},
			minio.ObjectInfo{Key: "parsed/README.md", Size: 10, LastModified: modified},
			minio.ObjectInfo{Key: "parsed/../escape.json", Size: 2, LastModified: modified},
		)
	}

	svc, client, cache, dir := newTestService(t)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(objects()).Once()
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(objects()).Once()
	client.On("GetObject", mock.Anything, testBucket, "parsed/move/tackle.json", mock.Anything).Return(body(tackle), nil).Once()
	client.On("GetObject", mock.Anything, testBucket, "parsed/creature/default/bulbasaur.json", mock.Anything).Return(body(bulbasaur), nil).Once()

	report, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.Transferred)
	assert.Equal(t, 1, report.Skipped)
	assert.Zero(t, report.Failed)
	assert.Equal(t, int64(len(tackle)+len(bulbasaur)), report.Bytes)
	assert.Equal(t, 1, cache.cleared)

	data, err := os.ReadFile(filepath.Join(dir, "move", "tackle.json"))
	require.NoError(t, err)
	assert.Equal(t, tackle, string(data))

	info, err := os.Stat(filepath.Join(dir, "creature", "default", "bulbasaur.json"))
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modified))
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(err))

	t.Run("SecondPullSkipsCurrentFiles", func(t *testing.T) {
		report, err := svc.Pull(context.Background())
		require.NoError(t, err)
		assert.Zero(t, report.Transferred)
		assert.Equal(t, 3, report.Skipped)
		assert.Equal(t, 1, cache.cleared, "nothing changed, cache kept")
		client.AssertNumberOfCalls(t, "GetObject", 2)
	})
}

func TestPullDownloadFailure(t *testing.T) {
	svc, client, cache, dir := newTestService(t)
	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(listing(
		minio.ObjectInfo{Key: "parsed/item/potion.json", Size: 4},
	))
	client.On("GetObject", mock.Anything, testBucket, "parsed/item/potion.json", mock.Anything).Return(nil, errors.New("connection reset"))

	report, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, cache.cleared)

	_, err = os.Stat(filepath.Join(dir, "item", "potion.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestPullBucketErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		svc, client, _, _ := newTestService(t)
		client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)
		_, err := svc.Pull(context.Background())
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("ListError", func(t *testing.T) {
		svc, client, _, _ := newTestService(t)
		client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
		client.On("ListObjects", mock.Anything, testBucket, mock.Anything).Return(listing(
			minio.ObjectInfo{Err: errors.New("access denied")},
		))
		_, err := svc.Pull(context.Background())
		assert.ErrorContains(t, err, "access denied")
	})
}

func TestPush(t *testing.T) {
	svc, client, _, dir := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "ability"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ability", "static.json"), []byte(`{"id":9}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	client.On("BucketExists", mock.Anything, testBucket).Return(false, nil)
	client.On("MakeBucket", mock.Anything, testBucket, mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, testBucket, "parsed/ability/static.json", mock.Anything, int64(8), mock.Anything).
		Return(minio.UploadInfo{}, nil)

	report, err := svc.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Transferred)
	assert.Equal(t, int64(8), report.Bytes)
	client.AssertCalled(t, "MakeBucket", mock.Anything, testBucket, mock.Anything)
	client.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestPushUploadFailure(t *testing.T) {
	svc, client, _, dir := newTestService(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "move"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "move", "tackle.json"), []byte(`{}`), 0o644))

	client.On("BucketExists", mock.Anything, testBucket).Return(true, nil)
	client.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("quota exceeded"))

	report, err := svc.Push(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}
