package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
	"github.com/medagenda/clinic-scheduler/internal/validators"
)

type StaffHandler struct {
	db *gorm.DB
}

func NewStaffHandler(db *gorm.DB) *StaffHandler {
	return &StaffHandler{db: db}
}

type staffRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	Active    *bool  `json:"active"`
}

func (h *StaffHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var staff []models.Staff
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_list_staff", "Could not list staff.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Create(c *gin.Context) {
	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Phone != "" && !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	staff := models.Staff{
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Specialty: req.Specialty,
		Active:    active,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&staff).Error; err != nil {
		httperr.Conflict(c, "email_already_registered", "A staff member with this email exists.")
		return
	}
	c.JSON(http.StatusCreated, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req staffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.Phone != "" && !validators.IsPhoneValid(req.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return
	}

	var staff models.Staff
	if err := h.db.WithContext(c.Request.Context()).First(&staff, id).Error; err != nil {
		httperr.NotFound(c, "staff_not_found", "Staff member not found.")
		return
	}

	staff.Name = strings.TrimSpace(req.Name)
	staff.Email = strings.ToLower(strings.TrimSpace(req.Email))
	staff.Phone = strings.TrimSpace(req.Phone)
	staff.Specialty = req.Specialty
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&staff).Error; err != nil {
		httperr.Internal(c, "failed_to_update_staff", "Could not update staff member.")
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	// Staff with appointment history are deactivated, never erased.
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Staff{}).
		Where("id = ?", id).
		Update("active", false).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_staff", "Could not deactivate staff member.")
		return
	}
	c.Status(http.StatusNoContent)
}
