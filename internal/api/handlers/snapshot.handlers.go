package routes

import (
	"log"

	"github.com/gin-gonic/gin"

	"roadwatch/internal/service/snapshot"
)

// SetupSnapshotHandlers registers the snapshot endpoints
func SetupSnapshotHandlers(router *gin.RouterGroup) {
	snapshotGroup := router.Group("/snapshot")

	snapshotGroup.GET("/latest", GetLatestSnapshot)
	snapshotGroup.GET("/geojson", GetRoutesGeoJSON)
}

// GetLatestSnapshot serves the most recent cycle payload
func GetLatestSnapshot(c *gin.Context) {
	payload, err := snapshot.GetSnapshotService().LatestSnapshot()
	if err != nil {
		log.Printf("Latest snapshot unavailable: %v", err)
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "No snapshot available yet",
		})
		return
	}

	c.Data(200, "application/json", payload)
}

// GetRoutesGeoJSON serves the map overlay for the latest cycle
func GetRoutesGeoJSON(c *gin.Context) {
	payload, err := snapshot.GetSnapshotService().LatestGeoJSON()
	if err != nil {
		log.Printf("GeoJSON overlay unavailable: %v", err)
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "No GeoJSON overlay available yet",
		})
		return
	}

	c.Data(200, "application/geo+json", payload)
}
