package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-scheduler/internal/config"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	uc "github.com/medagenda/clinic-scheduler/internal/usecase/scheduling"
)

type StatisticsHandler struct {
	cfg     *config.Config
	statsUC *uc.GetStatistics
}

func NewStatisticsHandler(cfg *config.Config, statsUC *uc.GetStatistics) *StatisticsHandler {
	return &StatisticsHandler{cfg: cfg, statsUC: statsUC}
}

func (h *StatisticsHandler) Get(c *gin.Context) {
	from, err := parseDateIn(h.cfg.Timezone, c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_from", "Invalid from date.")
		return
	}
	to, err := parseDateIn(h.cfg.Timezone, c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_to", "Invalid to date.")
		return
	}
	// Inclusive end date.
	to = to.AddDate(0, 0, 1)

	stats, err := h.statsUC.Execute(c.Request.Context(), from, to)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
