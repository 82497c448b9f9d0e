package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-scheduler/internal/config"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/httpresp"
	uc "github.com/medagenda/clinic-scheduler/internal/usecase/scheduling"
)

type AvailabilityHandler struct {
	cfg *config.Config

	availabilityUC *uc.GetAvailability
	bestSlotUC     *uc.FindBestSlot
}

func NewAvailabilityHandler(
	cfg *config.Config,
	availabilityUC *uc.GetAvailability,
	bestSlotUC *uc.FindBestSlot,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		cfg:            cfg,
		availabilityUC: availabilityUC,
		bestSlotUC:     bestSlotUC,
	}
}

// Slots returns the day's candidate slots for a staff member, each
// marked free or busy.
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}

	date, err := parseDateIn(h.cfg.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	durationMin, err := strconv.Atoi(c.DefaultQuery("duration_min", "30"))
	if err != nil || durationMin < 1 {
		httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), staffID, date, durationMin)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *AvailabilityHandler) BestSlot(c *gin.Context) {
	staffID, ok := queryUint(c, "staff_id")
	if !ok {
		return
	}
	serviceID, ok := queryUint(c, "service_id")
	if !ok {
		return
	}

	date, err := parseDateIn(h.cfg.Timezone, c.Query("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	suggestion, err := h.bestSlotUC.Execute(c.Request.Context(), staffID, serviceID, date)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(key), 10, 32)
	if err != nil || v == 0 {
		httperr.BadRequest(c, "invalid_"+key, "Invalid "+key+".")
		return 0, false
	}
	return uint(v), true
}
