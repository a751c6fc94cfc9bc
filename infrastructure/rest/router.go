package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the exchange surface on the given engine.
func SetupRoutes(router *gin.Engine, h *ExchangeHandler) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/participants", h.Register)
	router.GET("/participants", h.ListParticipants)
	router.POST("/messages", h.PostMessage)
	router.GET("/messages", h.ListMessages)
	router.GET("/messages/search", h.SearchMessages)
	router.POST("/status", h.Heartbeat)
}
