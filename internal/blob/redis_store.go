package blob

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists blobs as a binary string value plus a metadata
// hash per filename. Keys: <prefix>:data:<name> and <prefix>:meta:<name>.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "model"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) dataKey(name string) string { return s.prefix + ":data:" + name }
func (s *RedisStore) metaKey(name string) string { return s.prefix + ":meta:" + name }

func (s *RedisStore) Put(ctx context.Context, name string, data []byte, meta Metadata) error {
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.dataKey(name), data, 0)
	pipe.HSet(ctx, s.metaKey(name), map[string]any{
		"original_name": meta.OriginalName,
		"size":          meta.Size,
		"uploaded_at":   meta.UploadedAt.UTC().Format(time.RFC3339),
	})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, name string) ([]byte, Metadata, error) {
	data, err := s.rdb.Get(ctx, s.dataKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, Metadata{}, ErrNotFound
	}
	if err != nil {
		return nil, Metadata{}, err
	}

	meta := Metadata{OriginalName: name, Size: int64(len(data))}
	fields, err := s.rdb.HGetAll(ctx, s.metaKey(name)).Result()
	if err == nil && len(fields) > 0 {
		if v := fields["original_name"]; v != "" {
			meta.OriginalName = v
		}
		if v := fields["size"]; v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				meta.Size = n
			}
		}
		if v := fields["uploaded_at"]; v != "" {
			if ts, err := time.Parse(time.RFC3339, v); err == nil {
				meta.UploadedAt = ts
			}
		}
	}
	return data, meta, nil
}
