package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"roomfeed/internal/service"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service service.RoomService
}

func NewRoomHandler(service service.RoomService) *RoomHandler {
	return &RoomHandler{service: service}
}

type createRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiErr := bindingError(err)
		c.JSON(apiErr.StatusCode, apiErr)
		return
	}

	room, err := h.service.CreateRoom(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      room.ID,
		"message": fmt.Sprintf("Room %s created", room.Name),
	})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, ok := pathID(c, "room")
	if !ok {
		return
	}

	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		writeError(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// pathID parses the :id segment and answers 400 itself when it is not a
// positive integer.
func pathID(c *gin.Context, resource string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apiErr := NewBadRequestError(fmt.Sprintf("invalid %s id", resource))
		c.JSON(apiErr.StatusCode, apiErr)
		return 0, false
	}
	return uint(id), true
}
