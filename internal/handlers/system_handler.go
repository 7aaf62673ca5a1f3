package handlers

import (
	"net/http"

	"roomfeed/internal/service"

	"github.com/gin-gonic/gin"
)

type SystemHandler struct {
	service service.SystemService
}

func NewSystemHandler(service service.SystemService) *SystemHandler {
	return &SystemHandler{service: service}
}

func (h *SystemHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "Hello world")
}

func (h *SystemHandler) Health(c *gin.Context) {
	health := h.service.Health(c.Request.Context())

	status := http.StatusOK
	if !health.OK() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, health)
}

func (h *SystemHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}
