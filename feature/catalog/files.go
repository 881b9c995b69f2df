package catalog

import (
	"context"
	"fmt"

	"catalog-sync/core/source"
	"catalog-sync/core/storage"
	"catalog-sync/core/target"
	"catalog-sync/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// FileAdapter syncs binary assets. The export API carries the file's
// path and descriptive metadata; size and etag are enriched from object
// storage so that a re-uploaded file with the same metadata is still
// detected as changed.
type FileAdapter struct {
	client source.Client
	store  storage.Client
	bucket string
	logger *zap.Logger
}

// NewFileAdapter creates the adapter for the "files" export resource.
// The storage client is optional; without it entities carry only the
// metadata provided by the export API.
func NewFileAdapter(client source.Client, store storage.Client, bucket string, logger *zap.Logger) *FileAdapter {
	return &FileAdapter{client: client, store: store, bucket: bucket, logger: logger}
}

func (a *FileAdapter) Kind() source.Kind { return source.KindFile }

func (a *FileAdapter) DependsOn() []source.Kind { return nil }

func (a *FileAdapter) FetchPage(ctx context.Context, cursor string, limit int) ([]source.Entity, string, error) {
	return fetchEntities(ctx, a.client, "files", cursor, limit, a.convert)
}

func (a *FileAdapter) convert(ctx context.Context, rec source.Record) (source.Entity, error) {
	path := utils.ToString(rec["path"])
	e := source.Entity{
		Kind:       source.KindFile,
		ExternalID: utils.ToString(rec["id"]),
		NaturalKey: path,
		Fields: []source.Field{
			{Key: "path", Type: source.FieldText, Value: path},
			{Key: "alt", Type: source.FieldText, Value: utils.ToString(rec["alt"])},
			{Key: "content_type", Type: source.FieldText, Value: utils.ToString(rec["content_type"])},
		},
	}

	if a.store != nil {
		info, err := a.store.StatObject(ctx, a.bucket, path, minio.StatObjectOptions{})
		if err != nil {
			// A file listed by the export but absent from storage is a
			// source-side inconsistency; sync the metadata we have.
			a.logger.Warn("File missing from storage, syncing metadata only",
				zap.String("path", path), zap.Error(err))
		} else {
			e.SetField(source.Field{Key: "size", Type: source.FieldNumber, Value: info.Size})
			e.SetField(source.Field{Key: "etag", Type: source.FieldText, Value: info.ETag})
		}
	}

	return e, nil
}

func (a *FileAdapter) BuildPayload(e source.Entity) (target.Payload, error) {
	if e.NaturalKey == "" {
		return target.Payload{}, fmt.Errorf("file %s has no path", e.ExternalID)
	}
	return payloadFromEntity(e), nil
}
