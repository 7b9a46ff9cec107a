package routes

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"roadwatch/internal/service/capture"
	"roadwatch/internal/service/snapshot"
)

// SetupCycleHandlers registers the cycle history endpoints
func SetupCycleHandlers(router *gin.RouterGroup) {
	cycleGroup := router.Group("/cycles")

	cycleGroup.GET("", ListCycles)
	cycleGroup.GET("/:id", GetCycle)
}

// ListCycles serves the cycle index, newest first. The in-memory index is
// preferred; PostgreSQL is the fallback when no export has happened yet.
func ListCycles(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 50)

	index := snapshot.GetSnapshotService().Index()
	if index.Count > 0 {
		if len(index.Cycles) > limit {
			index.Cycles = index.Cycles[:limit]
			index.Count = limit
		}
		c.JSON(200, index)
		return
	}

	cycles, err := capture.LoadCycles(limit)
	if err != nil {
		log.Printf("Failed to load cycles from PostgreSQL: %v", err)
		c.JSON(500, gin.H{
			"status":  "error",
			"message": "Failed to load cycle history",
		})
		return
	}

	c.JSON(200, gin.H{
		"cycles": cycles,
		"count":  len(cycles),
	})
}

// GetCycle serves the full payload of one cycle from PostgreSQL
func GetCycle(c *gin.Context) {
	cycleID := c.Param("id")

	data, err := capture.LoadCycleData(cycleID)
	if err != nil {
		log.Printf("Failed to load cycle %s: %v", cycleID, err)
		c.JSON(404, gin.H{
			"status":  "error",
			"message": "Cycle not found",
		})
		return
	}

	c.JSON(200, data)
}

func parseLimit(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}
