package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const serverVersion = "1.0.0"

// Status reports server liveness. Unauthenticated; the CLI pings it before
// attempting remote mode. GET /status
func Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"version": serverVersion,
		"time":    time.Now().Format(time.RFC3339),
	})
}
