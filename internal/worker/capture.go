package worker

import (
	"context"
	"log"
	"time"

	"roadwatch/internal/config"
	"roadwatch/internal/service/capture"
	"roadwatch/internal/service/snapshot"
)

// StartCaptureWorker starts the worker that runs capture cycles on the
// configured interval. A cycle runs immediately on startup so a fresh
// deployment does not wait three hours for its first snapshot.
func StartCaptureWorker() {
	go func() {
		runCaptureCycle()

		ticker := time.NewTicker(config.CaptureCycleInterval)
		defer ticker.Stop()
		for range ticker.C {
			runCaptureCycle()
		}
	}()

	log.Println("Capture worker started with interval:", config.CaptureCycleInterval)
}

// runCaptureCycle executes one cycle end to end: fetch and analyze, persist
// to PostgreSQL, export snapshot files. Failures are logged and the next
// tick retries.
func runCaptureCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	captureService := capture.GetCaptureService()
	data, err := captureService.RunCaptureCycle(ctx)
	if err != nil {
		log.Printf("Capture cycle failed: %v", err)
		return
	}

	if err := captureService.SaveCycleData(data); err != nil {
		log.Printf("Failed to persist cycle data: %v", err)
	}

	if err := snapshot.GetSnapshotService().ExportCycle(data); err != nil {
		log.Printf("Failed to export cycle snapshot: %v", err)
	}
}
