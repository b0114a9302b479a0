package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"coderr/config"
	"coderr/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"gocloud.dev/blob/memblob"
)

func newMemStore(t *testing.T, maxSize int64) service.ContentStore {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	return NewBlobStore(bucket, "/media/", maxSize)
}

func TestBlobStore_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(t, 1024)

	key, err := store.Put(ctx, "profiles", "../My Avatar.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "profiles/"))
	assert.True(t, strings.HasSuffix(key, "-My_Avatar.png"))
	assert.Equal(t, "/media/"+key, store.URL(key))

	file, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", file.ContentType)
	assert.Equal(t, int64(len("png-bytes")), file.Size)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, service.ErrContentNotFound)

	assert.NoError(t, store.Delete(ctx, key))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestBlobStore_IdenticalUploadsGetOwnKeys(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(t, 0)

	first, err := store.Put(ctx, "offers", "logo.png", strings.NewReader("logo-bytes"))
	require.NoError(t, err)
	second, err := store.Put(ctx, "offers", "logo.png", strings.NewReader("logo-bytes"))
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, store.Delete(ctx, first))

	file, err := store.Open(ctx, second)
	require.NoError(t, err)
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	require.NoError(t, file.Close())
	assert.Equal(t, "logo-bytes", string(data))
}

func TestBlobStore_RecordsChecksum(t *testing.T) {
	ctx := context.Background()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	store := &blobStore{bucket: bucket, mediaPath: "/media", newID: func() string { return "fixed" }}

	key, err := store.Put(ctx, "profiles", "a.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "profiles/fixed-a.txt", key)

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", attrs.Metadata[checksumMetadataKey])
}

func TestBlobStore_RejectsOversizedUpload(t *testing.T) {
	store := newMemStore(t, 4)

	_, err := store.Put(context.Background(), "offers", "big.bin", strings.NewReader("12345"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 B")
}

func TestBlobStore_OpenMissing(t *testing.T) {
	store := newMemStore(t, 0)

	_, err := store.Open(context.Background(), "profiles/missing.png")
	assert.ErrorIs(t, err, service.ErrContentNotFound)

	_, err = store.Open(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrContentNotFound)
}

func TestBlobStore_URLEmptyKey(t *testing.T) {
	store := newMemStore(t, 0)

	assert.Empty(t, store.URL(""))
}

func TestNewContentStore_MemBucket(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	store, err := NewContentStore(StoreParams{
		Lc:  lc,
		Ctx: context.Background(),
		Config: &config.Config{Storage: &config.StorageConfig{
			BucketURL:     "mem://",
			MaxUploadSize: 1 << 20,
			MediaPath:     "media",
		}},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	lc.RequireStart()
	key, err := store.Put(context.Background(), "profiles", "x.txt", strings.NewReader("hi"))
	require.NoError(t, err)
	assert.Equal(t, "/media/"+key, store.URL(key))
	lc.RequireStop()
}

func TestNewContentStore_RequiresBucket(t *testing.T) {
	_, err := NewContentStore(StoreParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
