package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	repo domain.Repository
}

func NewWorkingHoursHandler(repo domain.Repository) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	staffID, ok := idParam(c)
	if !ok {
		return
	}

	rows, err := h.repo.GetWorkingHoursForStaff(c.Request.Context(), staffID)
	if err != nil {
		httperr.Internal(c, "failed_to_get_working_hours", "Could not load working hours.")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Update replaces the staff member's whole weekly schedule in one shot.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	staffID, ok := idParam(c)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rows := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		rows = append(rows, models.WorkingHours{
			StaffID:   staffID,
			Weekday:   d.Weekday,
			Active:    d.Active,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	if !domain.ValidateWorkingHours(rows) {
		httperr.BadRequest(c, "invalid_working_hours", "Start must precede end on every active day.")
		return
	}

	if err := h.repo.ReplaceWorkingHours(c.Request.Context(), staffID, rows); err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Could not save working hours.")
		return
	}
	c.JSON(http.StatusOK, rows)
}
