package capture

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	redis_client "roadwatch/internal/redis"
)

const imageHashRedisKey = "imagehash"

// RedisHashStore keeps per-camera image hashes in a Redis hash, so the
// unchanged-image dedup survives restarts.
type RedisHashStore struct{}

func NewRedisHashStore() *RedisHashStore {
	return &RedisHashStore{}
}

func (r *RedisHashStore) GetHash(cameraID int) (string, bool) {
	hash, err := redis_client.HashGet(imageHashRedisKey, strconv.Itoa(cameraID))
	if err != nil {
		// A missing field just means no prior capture for this camera.
		if !redis_client.IsNil(err) {
			log.Printf("Failed to read image hash for camera %d: %v", cameraID, err)
		}
		return "", false
	}
	return hash, hash != ""
}

func (r *RedisHashStore) SetHash(cameraID int, hash string) error {
	return redis_client.HashSet(imageHashRedisKey, strconv.Itoa(cameraID), hash)
}

// FSImageStore writes camera images under a local directory and serves them
// by relative path.
type FSImageStore struct {
	dir string
}

func NewFSImageStore(dir string) (*FSImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images dir: %w", err)
	}
	return &FSImageStore{dir: dir}, nil
}

func (f *FSImageStore) Save(key string, data []byte) error {
	if err := os.WriteFile(filepath.Join(f.dir, key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write image %s: %w", key, err)
	}
	return nil
}

func (f *FSImageStore) URL(key string) string {
	return filepath.ToSlash(filepath.Join("images", key))
}
