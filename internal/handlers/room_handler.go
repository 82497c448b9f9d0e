package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type RoomHandler struct {
	db *gorm.DB
}

func NewRoomHandler(db *gorm.DB) *RoomHandler {
	return &RoomHandler{db: db}
}

type roomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"min=0"`
	Active   *bool  `json:"active"`
}

func (h *RoomHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var rooms []models.Room
	if err := q.Order("name ASC").Find(&rooms).Error; err != nil {
		httperr.Internal(c, "failed_to_list_rooms", "Could not list rooms.")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room := models.Room{
		Name:     strings.TrimSpace(req.Name),
		Capacity: capacity,
		Active:   active,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_create_room", "Could not create room.")
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var room models.Room
	if err := h.db.WithContext(c.Request.Context()).First(&room, id).Error; err != nil {
		httperr.NotFound(c, "room_not_found", "Room not found.")
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var room models.Room
	if err := h.db.WithContext(c.Request.Context()).First(&room, id).Error; err != nil {
		httperr.NotFound(c, "room_not_found", "Room not found.")
		return
	}

	room.Name = strings.TrimSpace(req.Name)
	if req.Capacity > 0 {
		room.Capacity = req.Capacity
	}
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&room).Error; err != nil {
		httperr.Internal(c, "failed_to_update_room", "Could not update room.")
		return
	}
	c.JSON(http.StatusOK, room)
}

func (h *RoomHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_room", "Could not deactivate room.")
		return
	}
	c.Status(http.StatusNoContent)
}
