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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type clientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (r clientRequest) validate(c *gin.Context) bool {
	if r.Phone != "" && !validators.IsPhoneValid(r.Phone) {
		httperr.BadRequest(c, "invalid_phone", "Phone number is not valid.")
		return false
	}
	if r.Email != "" && !validators.IsEmailDomainValid(r.Email) {
		httperr.BadRequest(c, "invalid_email", "Email domain is not valid.")
		return false
	}
	return true
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("created_at DESC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Could not list clients.")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// ======================================================
// CREATE CLIENT
// ======================================================
func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	client := models.Client{
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Could not create client.")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// ======================================================
// GET / UPDATE / DELETE
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Could not update client.")
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Delete(&models.Client{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", "Could not delete client.")
		return
	}
	c.Status(http.StatusNoContent)
}
