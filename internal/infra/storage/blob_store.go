// Package storage keeps uploaded files in a gocloud.dev bucket.
package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strings"

	"coderr/config"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	"gocloud.dev/gcerrors"
)

const checksumMetadataKey = "sha256"

type blobStore struct {
	bucket    *blob.Bucket
	mediaPath string
	maxSize   int64
	newID     func() string
}

// NewBlobStore wraps an opened bucket. Stored files are served under mediaPath.
func NewBlobStore(bucket *blob.Bucket, mediaPath string, maxSize int64) service.ContentStore {
	return &blobStore{
		bucket:    bucket,
		mediaPath: "/" + strings.Trim(mediaPath, "/"),
		maxSize:   maxSize,
		newID:     uuid.NewString,
	}
}

// StoreParams holds dependencies for the content store, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewContentStore opens the configured bucket and closes it on shutdown.
func NewContentStore(params StoreParams) (service.ContentStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket url is required")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("Content store initialized",
		slog.String("bucket", cfg.BucketURL),
		slog.String("max_upload_size", util.FormatBytes(cfg.MaxUploadSize)),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing content store")

			return errors.WithStack(bucket.Close())
		},
	})

	return NewBlobStore(bucket, cfg.MediaPath, cfg.MaxUploadSize), nil
}

// Put stores content under prefix/<id>-<name>. Every upload gets its own key,
// so deleting one owner's file never touches another's.
func (s *blobStore) Put(ctx context.Context, prefix, name string, content io.Reader) (string, error) {
	reader := content
	if s.maxSize > 0 {
		reader = io.LimitReader(content, s.maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", errors.Wrap(err, "failed to read upload")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", errors.Errorf("file exceeds the maximum size of %s", util.FormatBytes(s.maxSize))
	}

	checksum, err := util.Checksum(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	fileName := util.SanitizeFileName(name)
	key := path.Join(strings.Trim(prefix, "/"), s.newID()+"-"+fileName)

	err = s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: detectContentType(fileName, data),
		Metadata:    map[string]string{checksumMetadataKey: checksum},
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}

	return key, nil
}

// Open returns a reader on the content stored under key.
func (s *blobStore) Open(ctx context.Context, key string) (*service.StoredFile, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return nil, service.ErrContentNotFound
	}

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, service.ErrContentNotFound
		}

		return nil, errors.Wrapf(err, "failed to open %s", key)
	}

	return &service.StoredFile{
		ReadCloser:  reader,
		ContentType: reader.ContentType(),
		Size:        reader.Size(),
	}, nil
}

// Delete removes key. Missing keys are ignored.
func (s *blobStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	err := s.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "failed to delete %s", key)
	}

	return nil
}

// URL returns the media path of key, or "" for an empty key.
func (s *blobStore) URL(key string) string {
	if key == "" {
		return ""
	}

	return path.Join(s.mediaPath, key)
}

func detectContentType(name string, data []byte) string {
	if byExt := mime.TypeByExtension(path.Ext(name)); byExt != "" {
		return byExt
	}

	return http.DetectContentType(data)
}

// Module provides the content store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewContentStore),
)
