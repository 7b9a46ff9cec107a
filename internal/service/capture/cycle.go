package capture

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"roadwatch/internal/config"
	"roadwatch/internal/model"
	"roadwatch/internal/udot"
	"roadwatch/internal/util"
)

// RunCaptureCycle runs one complete capture cycle and returns its full data
// payload. Enrichment steps are non-fatal: a failed fetch logs and leaves
// its section empty rather than aborting the cycle.
func (s *CaptureService) RunCaptureCycle(ctx context.Context) (*model.CycleData, error) {
	cycleID := time.Now().Format("2006-01-02T15:04:05")
	log.Printf("=== Capture cycle %s ===", cycleID)

	data := &model.CycleData{
		Cycle: model.CycleSummary{
			CycleID:   cycleID,
			StartedAt: cycleID,
		},
	}

	// 1. Pass closure status (informational; decides nothing by itself,
	// the fallback route is always captured too)
	if closed, found, err := s.api.IsPassClosed(ctx, config.PrimaryPassKeyword); err != nil {
		log.Printf("Pass closure check failed: %v", err)
	} else if !found {
		log.Printf("Pass %q not found in feed", config.PrimaryPassKeyword)
	} else if closed {
		log.Printf("Pass %q is CLOSED", config.PrimaryPassKeyword)
	}

	// 2. Routes from the directions provider
	data.Routes = s.routes.FetchRoutes(ctx, s.cfg.Origin, s.cfg.Destination, config.Routes)
	var primary *model.Route
	if len(data.Routes) > 0 {
		primary = data.Routes[0]
	}

	// 3. Cameras: fetch all, keep the configured route cameras plus any
	// unconfigured ones sitting within the camera buffer of the primary route
	cameras, err := s.api.FetchCameras(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cameras: %w", err)
	}
	selected := udot.SelectCamerasByID(cameras, config.AllCameraIDs())
	log.Printf("Matched %d of %d configured route cameras", len(selected), len(config.AllCameraIDs()))
	if primary != nil && primary.Polyline != "" && s.cfg.CameraBufferKm > 0 {
		nearby := udot.FilterCamerasByRoute(cameras, primary, s.cfg.CameraBufferKm)
		selected = appendDiscoveredCameras(selected, nearby)
	}

	// 4. Download and analyze images
	snowCount, skipped := 0, 0
	for i := range selected {
		capture := s.processCamera(ctx, cycleID, &selected[i], &skipped)
		if capture == nil {
			continue
		}
		data.Captures = append(data.Captures, capture)
		if capture.HasSnow != nil && *capture.HasSnow {
			snowCount++
		}
	}

	// 5. Enrichment, filtered by proximity to the decoded route geometry
	s.collectEnrichment(ctx, cycleID, primary, data)

	// 6. Cycle summary
	data.Cycle.CompletedAt = time.Now().Format("2006-01-02T15:04:05")
	data.Cycle.CamerasProcessed = len(data.Captures)
	data.Cycle.SnowCount = snowCount
	data.Cycle.EventCount = len(data.Events)
	if primary != nil && primary.Polyline != "" {
		data.Cycle.TravelTimeS = &primary.DurationS
		data.Cycle.DistanceM = &primary.DistanceM
	}

	log.Printf("=== Cycle complete: %d cameras, %d analyzed, %d cached, %d with snow ===",
		len(data.Captures), len(data.Captures)-skipped, skipped, snowCount)

	return data, nil
}

// appendDiscoveredCameras adds route-buffer cameras that are not already in
// the configured set, after the configured ones.
func appendDiscoveredCameras(selected, nearby []model.Camera) []model.Camera {
	seen := make(map[int]bool, len(selected))
	for i := range selected {
		seen[selected[i].ID] = true
	}
	for i := range nearby {
		if !seen[nearby[i].ID] {
			log.Printf("Discovered camera %d within route buffer - %s", nearby[i].ID, nearby[i].Location)
			selected = append(selected, nearby[i])
		}
	}
	return selected
}

// processCamera downloads one camera image, dedups by hash, analyzes when
// changed, and stores the capture. Returns nil when the camera has no usable
// image.
func (s *CaptureService) processCamera(ctx context.Context, cycleID string, camera *model.Camera, skipped *int) *model.CaptureRecord {
	log.Printf("Camera %d - %s (%s %s)", camera.ID, camera.Location, camera.Roadway, camera.Direction)

	imageData, err := s.downloadImage(ctx, camera)
	if err != nil {
		log.Printf("  Download failed: %v", err)
		return nil
	}

	sum := sha256.Sum256(imageData)
	imageHash := hex.EncodeToString(sum[:])

	capture := &model.CaptureRecord{
		ID:         util.ShortUUID(),
		CameraID:   camera.ID,
		CycleID:    cycleID,
		CapturedAt: time.Now().Format(time.RFC3339),
		Roadway:    camera.Roadway,
		Direction:  camera.Direction,
		Location:   camera.Location,
		Latitude:   camera.Latitude,
		Longitude:  camera.Longitude,
		RouteIDs:   config.RouteIDsForCamera(camera.ID),
		UpdatedAt:  time.Now(),
	}

	if prevHash, ok := s.hashes.GetHash(camera.ID); ok && prevHash == imageHash {
		// Image unchanged since last cycle: reuse the previous analysis
		// instead of spending a vision call.
		log.Printf("  Image unchanged - skipping analysis")
		*skipped++
		if prev, exists := s.storage.Get(camera.ID); exists {
			capture.ImageKey = prev.ImageKey
			capture.HasSnow = prev.HasSnow
			capture.HasCar = prev.HasCar
			capture.HasTruck = prev.HasTruck
			capture.HasAnimal = prev.HasAnimal
			capture.AnalysisNotes = prev.AnalysisNotes + " [cached]"
		}
		if capture.ImageKey != "" {
			capture.ImageURL = s.images.URL(capture.ImageKey)
		}
		s.storage.Set(camera.ID, capture)
		return capture
	}

	// New image: persist bytes and analyze
	imageKey := fmt.Sprintf("cam_%d_%s.jpg", camera.ID, time.Now().Format("20060102_150405"))
	if err := s.images.Save(imageKey, imageData); err != nil {
		log.Printf("  Failed to save image: %v", err)
	} else {
		capture.ImageKey = imageKey
		capture.ImageURL = s.images.URL(imageKey)
	}
	if err := s.hashes.SetHash(camera.ID, imageHash); err != nil {
		log.Printf("  Failed to save image hash: %v", err)
	}

	analysis := s.analyzer.Analyze(ctx, imageData)
	capture.ApplyAnalysis(analysis)

	s.storage.Set(camera.ID, capture)
	return capture
}

// downloadImage fetches the current image from a camera's first view.
func (s *CaptureService) downloadImage(ctx context.Context, camera *model.Camera) ([]byte, error) {
	url := camera.ImageURL()
	if url == "" {
		return nil, fmt.Errorf("camera %d has no view URL", camera.ID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer func(body io.ReadCloser) {
		_ = body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}

// collectEnrichment fetches the non-camera feeds and filters them to the
// monitored routes. Every step is non-fatal.
func (s *CaptureService) collectEnrichment(ctx context.Context, cycleID string, primary *model.Route, data *model.CycleData) {
	if primary != nil && primary.Polyline != "" {
		if conditions, err := s.api.FetchRoadConditions(ctx); err != nil {
			log.Printf("Road conditions failed (continuing): %v", err)
		} else {
			data.Conditions = udot.FilterConditionsByRoadway(conditions, config.ConditionRoadways)
			log.Printf("Kept %d road conditions", len(data.Conditions))
		}

		if events, err := s.api.FetchEvents(ctx); err != nil {
			log.Printf("Events failed (continuing): %v", err)
		} else {
			data.Events = udot.FilterEventsByRoute(events, primary, s.cfg.EventBufferKm)
			log.Printf("Kept %d events", len(data.Events))
		}
	}

	if stations, err := s.api.FetchWeatherStations(ctx); err != nil {
		log.Printf("Weather failed (continuing): %v", err)
	} else {
		data.Weather = udot.FilterStationsByName(stations, config.WeatherStationKeywords)
		log.Printf("Kept %d weather stations", len(data.Weather))
	}

	if passes, err := s.api.FetchMountainPasses(ctx); err != nil {
		log.Printf("Mountain passes failed (continuing): %v", err)
	} else {
		data.Passes = udot.FilterPassesByName(passes, config.PassKeywords)
		log.Printf("Kept %d mountain passes", len(data.Passes))
	}

	if plows, err := s.api.FetchSnowPlows(ctx); err != nil {
		log.Printf("Snow plows failed (continuing): %v", err)
	} else {
		data.Plows = udot.FilterPlowsByRoutes(plows, data.Routes, s.cfg.PlowBufferKm)
		log.Printf("Kept %d snow plows", len(data.Plows))
	}

	// Stamp enrichment rows with the cycle they belong to.
	for i := range data.Conditions {
		data.Conditions[i].CycleID = cycleID
	}
	for i := range data.Events {
		data.Events[i].CycleID = cycleID
	}
	for i := range data.Weather {
		data.Weather[i].CycleID = cycleID
	}
	for i := range data.Passes {
		data.Passes[i].CycleID = cycleID
	}
	for i := range data.Plows {
		data.Plows[i].CycleID = cycleID
	}
}
