package impl

import (
	"context"
	"log/slog"

	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"
	"coderr/internal/errors"
	"coderr/internal/usecase"
)

// fileReplacement tracks a stored upload that replaces the file of a row.
// The new file is removed when the row update fails, the old one after it commits.
type fileReplacement struct {
	store  service.ContentStore
	logger *slog.Logger
	newKey string
	oldKey string
}

// storeUpload writes upload under prefix. A nil upload yields a no-op replacement.
func storeUpload(
	ctx context.Context,
	store service.ContentStore,
	logger *slog.Logger,
	prefix string,
	upload *usecase.FileUpload,
	oldKey string,
) (*fileReplacement, error) {
	replacement := &fileReplacement{store: store, logger: logger, oldKey: oldKey}
	if upload == nil {
		return replacement, nil
	}

	key, err := store.Put(ctx, prefix, upload.Name, upload.Content)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrFileStoreFailed, err.Error())
	}
	replacement.newKey = key

	return replacement, nil
}

// Replaced reports whether a new file was stored.
func (r *fileReplacement) Replaced() bool {
	return r != nil && r.newKey != ""
}

// Rollback removes the new file after the owning row failed to update.
func (r *fileReplacement) Rollback(ctx context.Context) {
	if !r.Replaced() || r.newKey == r.oldKey {
		return
	}
	if err := r.store.Delete(ctx, r.newKey); err != nil {
		r.logger.Warn("Failed to remove orphaned file", slog.String("key", r.newKey), slog.Any("error", err))
	}
}

// Commit removes the old file once the owning row points at the new one.
func (r *fileReplacement) Commit(ctx context.Context) {
	if !r.Replaced() || r.oldKey == "" || r.oldKey == r.newKey {
		return
	}
	if err := r.store.Delete(ctx, r.oldKey); err != nil {
		r.logger.Warn("Failed to remove replaced file", slog.String("key", r.oldKey), slog.Any("error", err))
	}
}

// deleteStoredFile removes key after its owning row was deleted.
func deleteStoredFile(ctx context.Context, store service.ContentStore, logger *slog.Logger, key string) {
	if key == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		logger.Warn("Failed to remove file of deleted row", slog.String("key", key), slog.Any("error", err))
	}
}
