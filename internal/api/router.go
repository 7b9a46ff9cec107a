package api

import (
	routes "roadwatch/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes all application routes
func SetupRouter(r *gin.Engine, config map[string]string) {
	// API group
	api := r.Group("/api")

	// Setup main handlers
	routes.SetupMainHandlers(r.Group(""), config)

	// Setup snapshot handlers
	routes.SetupSnapshotHandlers(api)

	// Setup cycle handlers
	routes.SetupCycleHandlers(api)

	// Setup capture handlers
	routes.SetupCaptureHandlers(api)
}
