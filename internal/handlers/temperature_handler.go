package handlers

import (
	"fmt"
	"net/http"
	"time"

	"roomfeed/internal/service"

	"github.com/gin-gonic/gin"
)

const exportDateLayout = "2006-01-02"

type TemperatureHandler struct {
	service service.TemperatureService
}

func NewTemperatureHandler(service service.TemperatureService) *TemperatureHandler {
	return &TemperatureHandler{service: service}
}

type addTemperatureRequest struct {
	Temperature *float64 `json:"temperature" binding:"required"`
	Room        *uint    `json:"room" binding:"required"`
	Date        string   `json:"date"`
}

func (h *TemperatureHandler) AddTemperature(c *gin.Context) {
	var req addTemperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiErr := bindingError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	_, err := h.service.AddTemperature(c.Request.Context(), service.AddTemperatureInput{
		RoomID:      *req.Room,
		Temperature: *req.Temperature,
		Date:        req.Date,
	})
	if err != nil {
		writeError(c, err, fmt.Sprintf("room %d does not exist", *req.Room))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Temperature added"})
}

func (h *TemperatureHandler) GetAverage(c *gin.Context) {
	stats, err := h.service.GetAverage(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *TemperatureHandler) GetRoomAverage(c *gin.Context) {
	id, ok := pathID(c, "room")
	if !ok {
		return
	}

	stats, err := h.service.GetRoomAverage(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Export serves the readings between from and to (YYYY-MM-DD, both days
// included) as csv, xlsx or json.
func (h *TemperatureHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	var from, to time.Time
	var err error

	if fromStr := c.Query("from"); fromStr != "" {
		from, err = time.ParseInLocation(exportDateLayout, fromStr, time.UTC)
		if err != nil {
			apiErr := NewBadRequestError("Invalid from date format")
			c.JSON(apiErr.StatusCode, apiErr)
			return
		}
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err = time.ParseInLocation(exportDateLayout, toStr, time.UTC)
		if err != nil {
			apiErr := NewBadRequestError("Invalid to date format")
			c.JSON(apiErr.StatusCode, apiErr)
			return
		}
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	file, err := h.service.ExportTemperatures(c.Request.Context(), format, from, to)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
