package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/config"
	domain "github.com/medagenda/clinic-scheduler/internal/domain/scheduling"
	"github.com/medagenda/clinic-scheduler/internal/httperr"
	uc "github.com/medagenda/clinic-scheduler/internal/usecase/scheduling"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	cfg *config.Config

	createUC     *uc.CreateAppointment
	updateUC     *uc.UpdateAppointment
	rescheduleUC *uc.RescheduleAppointment
	transitionUC *uc.Transition
	bulkUC       *uc.BulkTransition
	recurringUC  *uc.CreateRecurringSeries
	conflictsUC  *uc.CheckConflicts

	repo domain.Repository
}

func NewAppointmentHandler(
	cfg *config.Config,
	createUC *uc.CreateAppointment,
	updateUC *uc.UpdateAppointment,
	rescheduleUC *uc.RescheduleAppointment,
	transitionUC *uc.Transition,
	bulkUC *uc.BulkTransition,
	recurringUC *uc.CreateRecurringSeries,
	conflictsUC *uc.CheckConflicts,
	repo domain.Repository,
) *AppointmentHandler {
	return &AppointmentHandler{
		cfg:          cfg,
		createUC:     createUC,
		updateUC:     updateUC,
		rescheduleUC: rescheduleUC,
		transitionUC: transitionUC,
		bulkUC:       bulkUC,
		recurringUC:  recurringUC,
		conflictsUC:  conflictsUC,
		repo:         repo,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	StaffID     uint   `json:"staff_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	RoomID      *uint  `json:"room_id"`
	Start       string `json:"start" binding:"required"` // "2006-01-02 15:04" or RFC3339
	DurationMin int    `json:"duration_min"`
	Notes       string `json:"notes"`
}

type RecurrenceRequest struct {
	Frequency string `json:"frequency" binding:"required"`
	Interval  int    `json:"interval" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"` // "2006-01-02"
}

type CreateRecurringRequest struct {
	CreateAppointmentRequest
	Pattern RecurrenceRequest `json:"pattern" binding:"required"`
}

type RescheduleRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CompleteRequest struct {
	ActualCost *float64 `json:"actual_cost"`
	Notes      string   `json:"notes"`
}

type NoShowRequest struct {
	Notes string `json:"notes"`
}

type BulkStatusRequest struct {
	IDs    []uint `json:"ids" binding:"required"`
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type CheckConflictsRequest struct {
	StaffID   uint   `json:"staff_id" binding:"required"`
	RoomID    *uint  `json:"room_id"`
	Start     string `json:"start" binding:"required"`
	End       string `json:"end" binding:"required"`
	ExcludeID uint   `json:"exclude_appointment_id"`
}

type UpdateAppointmentRequest struct {
	Notes         *string  `json:"notes"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ActualCost    *float64 `json:"actual_cost"`
	PaymentStatus *string  `json:"payment_status"`
	Rating        *int     `json:"rating"`
	Feedback      *string  `json:"feedback"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseDateTimeIn(h.cfg.Timezone, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid start time.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), uc.CreateAppointmentInput{
		ClientID:    req.ClientID,
		StaffID:     req.StaffID,
		ServiceID:   req.ServiceID,
		RoomID:      req.RoomID,
		Start:       start,
		DurationMin: req.DurationMin,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if len(res.Conflicts) > 0 {
		c.JSON(http.StatusConflict, res)
		return
	}
	c.JSON(http.StatusCreated, res.Appointment)
}

// ======================================================
// READ / UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_appointment", "Unexpected error.")
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), id, uc.UpdateAppointmentInput{
		Notes:         req.Notes,
		EstimatedCost: req.EstimatedCost,
		ActualCost:    req.ActualCost,
		PaymentStatus: req.PaymentStatus,
		Rating:        req.Rating,
		Feedback:      req.Feedback,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

// Delete removes the row outright. Cancellation is a lifecycle
// transition, not a delete.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteAppointment(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Unexpected error.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, domain.EventConfirm, uc.TransitionPayload{})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "cancellation_reason_required", "A cancellation reason is required.")
		return
	}
	h.transition(c, domain.EventCancel, uc.TransitionPayload{Reason: req.Reason})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	var req CompleteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}
	h.transition(c, domain.EventComplete, uc.TransitionPayload{
		ActualCost: req.ActualCost,
		Notes:      req.Notes,
	})
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	var req NoShowRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", "Invalid request body.")
			return
		}
	}
	h.transition(c, domain.EventNoShow, uc.TransitionPayload{Notes: req.Notes})
}

func (h *AppointmentHandler) transition(c *gin.Context, ev domain.Event, payload uc.TransitionPayload) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.transitionUC.Execute(c.Request.Context(), id, ev, payload)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) BulkStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.bulkUC.Execute(
		c.Request.Context(),
		req.IDs,
		domain.Status(req.Status),
		uc.TransitionPayload{Reason: req.Reason},
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	status := http.StatusOK
	if !res.Ok() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, res)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseDateTimeIn(h.cfg.Timezone, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid start time.")
		return
	}
	end, err := parseDateTimeIn(h.cfg.Timezone, req.End)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid end time.")
		return
	}

	res, err := h.rescheduleUC.Execute(c.Request.Context(), id, start, end)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if len(res.Conflicts) > 0 {
		c.JSON(http.StatusConflict, res)
		return
	}
	c.JSON(http.StatusOK, res.Appointment)
}

// ======================================================
// RECURRING SERIES
// ======================================================

func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	var req CreateRecurringRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseDateTimeIn(h.cfg.Timezone, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid start time.")
		return
	}
	endDate, err := parseDateIn(h.cfg.Timezone, req.Pattern.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_date", "Invalid pattern end date.")
		return
	}

	res, err := h.recurringUC.Execute(c.Request.Context(), uc.CreateRecurringInput{
		Base: uc.CreateAppointmentInput{
			ClientID:    req.ClientID,
			StaffID:     req.StaffID,
			ServiceID:   req.ServiceID,
			RoomID:      req.RoomID,
			Start:       start,
			DurationMin: req.DurationMin,
			Notes:       req.Notes,
		},
		Pattern: domain.Pattern{
			Frequency: domain.Frequency(req.Pattern.Frequency),
			Interval:  req.Pattern.Interval,
			EndDate:   endDate,
		},
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// ======================================================
// CONFLICT DRY-RUN
// ======================================================

func (h *AppointmentHandler) CheckConflicts(c *gin.Context) {
	var req CheckConflictsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	start, err := parseDateTimeIn(h.cfg.Timezone, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid start time.")
		return
	}
	end, err := parseDateTimeIn(h.cfg.Timezone, req.End)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid end time.")
		return
	}

	conflicts, err := h.conflictsUC.Execute(c.Request.Context(), uc.CheckConflictsInput{
		StaffID:              req.StaffID,
		RoomID:               req.RoomID,
		Start:                start,
		End:                  end,
		ExcludeAppointmentID: req.ExcludeID,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conflicts": conflicts,
		"clean":     len(conflicts) == 0,
	})
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
