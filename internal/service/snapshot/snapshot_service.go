package snapshot

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"roadwatch/internal/model"
	redis_client "roadwatch/internal/redis"
)

const LatestSnapshotRedisKey = "snapshot:latest"

// SnapshotService exports cycle payloads as JSON files for the dashboard
// frontend and keeps the latest payload cached in Redis for the API.
type SnapshotService struct {
	outputDir string
	index     model.CycleIndex
	mutex     sync.Mutex
}

var (
	snapshotServiceInstance *SnapshotService
	snapshotServiceOnce     sync.Once
)

// GetSnapshotService returns the singleton instance of SnapshotService.
func GetSnapshotService() *SnapshotService {
	snapshotServiceOnce.Do(func() {
		snapshotServiceInstance = &SnapshotService{}
	})
	return snapshotServiceInstance
}

// Configure sets the export directory. Must run before ExportCycle.
func (s *SnapshotService) Configure(outputDir string) {
	s.outputDir = outputDir
}

// ExportCycle writes all export artifacts for one finished cycle: the
// per-cycle file, latest.json, the cycle index, and the GeoJSON overlay.
// The latest payload is additionally cached in Redis.
func (s *SnapshotService) ExportCycle(data *model.CycleData) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cycle payload: %w", err)
	}

	// Per-cycle file; colons are not filename-safe everywhere.
	safeID := strings.ReplaceAll(data.Cycle.CycleID, ":", "-")
	cyclePath := filepath.Join(s.outputDir, fmt.Sprintf("cycle-%s.json", safeID))
	if err := os.WriteFile(cyclePath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write cycle file: %w", err)
	}

	latestPath := filepath.Join(s.outputDir, "latest.json")
	if err := os.WriteFile(latestPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write latest.json: %w", err)
	}

	if err := s.appendToIndex(data.Cycle); err != nil {
		return err
	}

	if err := s.exportGeoJSON(data); err != nil {
		return err
	}

	if redis_client.GetClient() != nil {
		if err := redis_client.Set(LatestSnapshotRedisKey, payload, 0); err != nil {
			log.Printf("Failed to cache latest snapshot in Redis: %v", err)
		}
	}

	log.Printf("Exported cycle data to %s", cyclePath)
	return nil
}

// appendToIndex prepends the cycle summary to the index and rewrites
// index.json, newest first.
func (s *SnapshotService) appendToIndex(cycle model.CycleSummary) error {
	s.index.Cycles = append([]model.CycleSummary{cycle}, s.index.Cycles...)
	if len(s.index.Cycles) > 200 {
		s.index.Cycles = s.index.Cycles[:200]
	}
	s.index.Count = len(s.index.Cycles)

	payload, err := json.MarshalIndent(s.index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cycle index: %w", err)
	}

	indexPath := filepath.Join(s.outputDir, "index.json")
	if err := os.WriteFile(indexPath, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write index.json: %w", err)
	}
	return nil
}

// LoadIndex restores the cycle index from a previous run so restarts keep
// their history.
func (s *SnapshotService) LoadIndex() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	raw, err := os.ReadFile(filepath.Join(s.outputDir, "index.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read index.json: %w", err)
	}
	if err := json.Unmarshal(raw, &s.index); err != nil {
		return fmt.Errorf("failed to parse index.json: %w", err)
	}
	return nil
}

// Index returns a copy of the current cycle index.
func (s *SnapshotService) Index() model.CycleIndex {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cycles := make([]model.CycleSummary, len(s.index.Cycles))
	copy(cycles, s.index.Cycles)
	return model.CycleIndex{Cycles: cycles, Count: len(cycles)}
}

// LatestGeoJSON returns the exported map overlay for the latest cycle.
func (s *SnapshotService) LatestGeoJSON() ([]byte, error) {
	raw, err := os.ReadFile(filepath.Join(s.outputDir, "routes.geojson"))
	if err != nil {
		return nil, fmt.Errorf("no GeoJSON overlay available: %w", err)
	}
	return raw, nil
}

// LatestSnapshot returns the cached latest payload: Redis first, the
// exported file as fallback.
func (s *SnapshotService) LatestSnapshot() ([]byte, error) {
	if redis_client.GetClient() != nil {
		if cached, err := redis_client.Get(LatestSnapshotRedisKey); err == nil && cached != "" {
			return []byte(cached), nil
		}
	}

	raw, err := os.ReadFile(filepath.Join(s.outputDir, "latest.json"))
	if err != nil {
		return nil, fmt.Errorf("no snapshot available: %w", err)
	}
	return raw, nil
}
