package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type ServiceHandler struct {
	db          *gorm.DB
	minDuration int
}

func NewServiceHandler(db *gorm.DB, minDurationMin int) *ServiceHandler {
	return &ServiceHandler{db: db, minDuration: minDurationMin}
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"min=0"`
	Active      *bool   `json:"active"`
	Category    string  `json:"category"`
}

func (h *ServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.DurationMin < h.minDuration {
		httperr.BadRequest(c, "duration_too_short", "Service duration is below the minimum.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	service := models.Service{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      active,
		Category:    req.Category,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.DurationMin < h.minDuration {
		httperr.BadRequest(c, "duration_too_short", "Service duration is below the minimum.")
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	service.Name = strings.TrimSpace(req.Name)
	service.Description = req.Description
	service.DurationMin = req.DurationMin
	service.Price = req.Price
	service.Category = req.Category
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	// Deactivate instead of deleting; past appointments keep their
	// service reference.
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("id = ?", id).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not deactivate service.")
		return
	}
	c.Status(http.StatusNoContent)
}
