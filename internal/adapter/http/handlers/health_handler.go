package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health is mounted at the root, outside the documented /v1 base path.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ping godoc
// @Summary  Ping
// @Tags     health
// @Produce  json
// @Success  200  {object}  map[string]string
// @Router   /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
