package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports that the server is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Ctrl-Alt-Del API is running",
	})
}
