package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-scheduler/internal/config"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	uc "github.com/medagenda/clinic-scheduler/internal/usecase/scheduling"
)

type CalendarHandler struct {
	cfg        *config.Config
	calendarUC *uc.CalendarQuery
}

func NewCalendarHandler(cfg *config.Config, calendarUC *uc.CalendarQuery) *CalendarHandler {
	return &CalendarHandler{cfg: cfg, calendarUC: calendarUC}
}

func (h *CalendarHandler) Day(c *gin.Context)   { h.view(c, uc.ScopeDay) }
func (h *CalendarHandler) Week(c *gin.Context)  { h.view(c, uc.ScopeWeek) }
func (h *CalendarHandler) Month(c *gin.Context) { h.view(c, uc.ScopeMonth) }

func (h *CalendarHandler) view(c *gin.Context, scope uc.CalendarScope) {
	date, err := parseDateIn(h.cfg.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	var staffID uint
	if raw := c.Query("staff_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Invalid staff_id.")
			return
		}
		staffID = uint(v)
	}

	view, err := h.calendarUC.Execute(c.Request.Context(), scope, date, staffID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
