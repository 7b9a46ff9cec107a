package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"roadwatch/internal/service/capture"
)

// SetupCaptureHandlers registers the camera capture endpoints
func SetupCaptureHandlers(router *gin.RouterGroup) {
	captureGroup := router.Group("/captures")

	captureGroup.GET("/recent", GetRecentCaptures)
	captureGroup.GET("/camera/:id", GetCameraCapture)
}

// GetRecentCaptures serves the latest in-memory capture per camera
func GetRecentCaptures(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20)

	captures := capture.GetCaptureService().RecentCaptures(limit)
	c.JSON(200, gin.H{
		"captures": captures,
		"count":    len(captures),
	})
}

// GetCameraCapture serves the latest capture for one camera
func GetCameraCapture(c *gin.Context) {
	cameraID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(400, gin.H{
			"status":  "error",
			"message": "Camera id must be numeric",
		})
		return
	}

	record, ok := capture.GetCaptureService().LatestCapture(cameraID)
	if !ok {
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "No capture for this camera",
		})
		return
	}

	c.JSON(200, record)
}
