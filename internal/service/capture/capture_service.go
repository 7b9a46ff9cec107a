package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"roadwatch/internal/config"
	"roadwatch/internal/model"
	pg "roadwatch/internal/postgres"
	redis_client "roadwatch/internal/redis"
	"roadwatch/internal/service/storage"

	"gorm.io/gorm"
)

const CaptureRedisKey = "capture"

// TrafficAPI is the slice of the DOT client the capture cycle needs.
type TrafficAPI interface {
	FetchCameras(ctx context.Context) ([]model.Camera, error)
	FetchRoadConditions(ctx context.Context) ([]model.RoadCondition, error)
	FetchEvents(ctx context.Context) ([]model.Event, error)
	FetchWeatherStations(ctx context.Context) ([]model.WeatherStation, error)
	FetchMountainPasses(ctx context.Context) ([]model.MountainPass, error)
	FetchSnowPlows(ctx context.Context) ([]model.SnowPlow, error)
	IsPassClosed(ctx context.Context, keyword string) (bool, bool, error)
}

// RouteSource fetches the configured named routes from a directions provider.
type RouteSource interface {
	FetchRoutes(ctx context.Context, origin, destination string, defs []config.RouteDef) []*model.Route
}

// ImageAnalyzer runs the vision model over a camera image.
type ImageAnalyzer interface {
	Analyze(ctx context.Context, imageData []byte) model.AnalysisResult
}

// HashStore remembers the last image hash per camera, so unchanged images
// skip a vision call.
type HashStore interface {
	GetHash(cameraID int) (string, bool)
	SetHash(cameraID int, hash string) error
}

// ImageStore persists raw camera images and resolves their serving URL.
type ImageStore interface {
	Save(key string, data []byte) error
	URL(key string) string
}

type CaptureService struct {
	storage storage.Storage[int, *model.CaptureRecord]

	cfg      config.Config
	api      TrafficAPI
	routes   RouteSource
	analyzer ImageAnalyzer
	hashes   HashStore
	images   ImageStore

	httpClient *http.Client

	initialized bool
	initMutex   sync.RWMutex
}

var (
	captureServiceInstance *CaptureService
	captureServiceOnce     sync.Once
)

// GetCaptureService returns the singleton instance of CaptureService.
func GetCaptureService() *CaptureService {
	captureServiceOnce.Do(func() {
		captureServiceInstance = &CaptureService{
			storage:    storage.NewMemoryStorage[int, *model.CaptureRecord](),
			httpClient: &http.Client{Timeout: 30 * time.Second},
		}
	})
	return captureServiceInstance
}

// Configure wires the collaborators a capture cycle needs. Must run before
// RunCaptureCycle.
func (s *CaptureService) Configure(cfg config.Config, api TrafficAPI, routes RouteSource, analyzer ImageAnalyzer, hashes HashStore, images ImageStore) {
	s.cfg = cfg
	s.api = api
	s.routes = routes
	s.analyzer = analyzer
	s.hashes = hashes
	s.images = images
}

// InitService loads the latest capture per camera from PostgreSQL, then
// overlays any newer entries from Redis.
func (s *CaptureService) InitService(ctx context.Context) error {
	s.initMutex.Lock()
	defer s.initMutex.Unlock()

	if s.initialized {
		return nil
	}

	log.Println("Initializing CaptureService...")
	startTime := time.Now()

	pgCaptures, err := s.loadLatestCapturesFromPG()
	if err != nil {
		return fmt.Errorf("failed to load captures from PostgreSQL: %w", err)
	}
	log.Printf("Loaded %d captures from PostgreSQL in %v", len(pgCaptures), time.Since(startTime))

	redisCaptures, err := s.loadCapturesFromRedis(ctx)
	if err != nil {
		return fmt.Errorf("failed to load captures from Redis: %w", err)
	}
	log.Printf("Loaded %d capture updates from Redis", len(redisCaptures))

	merged := s.mergeCapturesIntoMemory(pgCaptures, redisCaptures)
	log.Printf("Initialization complete: %d captures in memory (%d newer from Redis), took %v",
		s.storage.Count(), merged, time.Since(startTime))

	s.initialized = true
	return nil
}

// loadLatestCapturesFromPG loads the most recent capture row per camera.
func (s *CaptureService) loadLatestCapturesFromPG() ([]*model.CaptureRecord, error) {
	db := pg.GetDB()
	var rows []*model.CaptureRecord

	// One row per camera: the newest by updated_at.
	result := db.Raw(`
		SELECT DISTINCT ON (camera_id) *
		FROM capture_records
		WHERE deleted_at IS NULL
		ORDER BY camera_id, updated_at DESC
	`).Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// loadCapturesFromRedis loads the latest capture per camera from Redis.
func (s *CaptureService) loadCapturesFromRedis(ctx context.Context) (map[int]*model.CaptureRecord, error) {
	client := redis_client.GetClient()
	var cursor uint64
	var keys []string
	pattern := fmt.Sprintf("%s:*", CaptureRedisKey)

	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	if len(keys) == 0 {
		return make(map[int]*model.CaptureRecord), nil
	}

	jsonData, err := client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	captures := make(map[int]*model.CaptureRecord)
	for _, data := range jsonData {
		if data == nil {
			continue
		}

		jsonStr, ok := data.(string)
		if !ok || jsonStr == "" {
			continue
		}

		capture := &model.CaptureRecord{}
		if err := json.Unmarshal([]byte(jsonStr), capture); err != nil {
			continue
		}

		captures[capture.CameraID] = capture
	}

	return captures, nil
}

// mergeCapturesIntoMemory merges captures from PostgreSQL and Redis into
// memory storage. Redis wins when its entry is newer.
func (s *CaptureService) mergeCapturesIntoMemory(pgCaptures []*model.CaptureRecord, redisCaptures map[int]*model.CaptureRecord) int {
	for _, capture := range pgCaptures {
		s.storage.Set(capture.CameraID, capture)
	}

	mergedCount := 0
	for cameraID, redisCapture := range redisCaptures {
		existing, exists := s.storage.Get(cameraID)
		if !exists || redisCapture.UpdatedAt.After(existing.UpdatedAt) {
			if exists {
				// The Redis copy is the light version; keep the
				// denormalized camera fields from PostgreSQL.
				redisCapture.Roadway = existing.Roadway
				redisCapture.Direction = existing.Direction
				redisCapture.Location = existing.Location
				redisCapture.Latitude = existing.Latitude
				redisCapture.Longitude = existing.Longitude
				redisCapture.CreatedAt = existing.CreatedAt
			}
			s.storage.Set(cameraID, redisCapture)
			mergedCount++
		}
	}

	// Loading must not schedule a flush of rows that are already persisted.
	keys := make([]int, 0, s.storage.Count())
	for k := range s.storage.GetAll() {
		keys = append(keys, k)
	}
	s.storage.ClearDirty(keys)

	return mergedCount
}

// LatestCapture returns the most recent capture for a camera.
func (s *CaptureService) LatestCapture(cameraID int) (*model.CaptureRecord, bool) {
	return s.storage.Get(cameraID)
}

// RecentCaptures returns the latest capture per camera, newest first,
// up to limit.
func (s *CaptureService) RecentCaptures(limit int) []*model.CaptureRecord {
	all := s.storage.GetAllValues()
	sort.Slice(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// StartPersistenceWorkers starts workers for persisting data to Redis and PostgreSQL
func (s *CaptureService) StartPersistenceWorkers() {
	redisTimer := time.NewTicker(config.RedisBackupInterval)
	go func() {
		for range redisTimer.C {
			if err := s.SaveDirtyCapturesToRedis(); err != nil {
				log.Printf("Error saving to Redis: %v", err)
			}
		}
	}()

	pgTimer := time.NewTicker(config.PostgresBackupInterval)
	go func() {
		for range pgTimer.C {
			if err := s.SaveAllCapturesToPG(); err != nil {
				log.Printf("Error saving to PostgreSQL: %v", err)
			}
		}
	}()
}

// SaveDirtyCapturesToRedis saves modified captures to Redis
func (s *CaptureService) SaveDirtyCapturesToRedis() error {
	dirtyCaptures := s.storage.GetDirty()
	if len(dirtyCaptures) == 0 {
		return nil
	}

	client := redis_client.GetClient()
	ctx := context.Background()
	pipe := client.Pipeline()

	// Collect keys to clear flags after successful save
	keys := make([]int, 0, len(dirtyCaptures))

	for cameraID, capture := range dirtyCaptures {
		captureKey := fmt.Sprintf("%s:%d", CaptureRedisKey, cameraID)
		captureJSON, err := json.Marshal(capture.ToLight())
		if err != nil {
			return err
		}
		pipe.Set(ctx, captureKey, captureJSON, 0)
		keys = append(keys, cameraID)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		return err
	}

	// Clear flags only after successful save
	s.storage.ClearDirty(keys)

	log.Printf("Saved %d captures to Redis", len(dirtyCaptures))
	return nil
}

// SaveAllCapturesToPG saves all in-memory captures to PostgreSQL in batches
func (s *CaptureService) SaveAllCapturesToPG() error {
	allCaptures := s.storage.GetAllValues()
	if len(allCaptures) == 0 {
		return nil
	}

	db := pg.GetDB()
	batchSize := 500

	for i := 0; i < len(allCaptures); i += batchSize {
		end := i + batchSize
		if end > len(allCaptures) {
			end = len(allCaptures)
		}

		batch := allCaptures[i:end]

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, capture := range batch {
				if result := tx.Save(capture); result.Error != nil {
					return result.Error
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}
