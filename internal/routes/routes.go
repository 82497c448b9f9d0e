package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/medagenda/clinic-scheduler/internal/audit"
	"github.com/medagenda/clinic-scheduler/internal/config"
	"github.com/medagenda/clinic-scheduler/internal/handlers"
	infraRepo "github.com/medagenda/clinic-scheduler/internal/infra/repository"
	"github.com/medagenda/clinic-scheduler/internal/middleware"
	ucScheduling "github.com/medagenda/clinic-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	schedulingRepo := infraRepo.NewSchedulingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	policy := cfg.Policy()

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	createAppointmentUC := ucScheduling.NewCreateAppointment(
		schedulingRepo,
		policy,
		auditDispatcher,
		cfg.ReminderOffsets,
		nil,
	)

	updateAppointmentUC := ucScheduling.NewUpdateAppointment(
		schedulingRepo,
		auditDispatcher,
	)

	rescheduleUC := ucScheduling.NewRescheduleAppointment(
		schedulingRepo,
		policy,
		auditDispatcher,
		nil,
	)

	transitionUC := ucScheduling.NewTransition(
		schedulingRepo,
		auditDispatcher,
		nil,
	)

	bulkTransitionUC := ucScheduling.NewBulkTransition(transitionUC)

	recurringUC := ucScheduling.NewCreateRecurringSeries(
		schedulingRepo,
		policy,
		auditDispatcher,
		cfg.ReminderOffsets,
		nil,
	)

	checkConflictsUC := ucScheduling.NewCheckConflicts(
		schedulingRepo,
		policy,
		nil,
	)

	availabilityUC := ucScheduling.NewGetAvailability(schedulingRepo)
	bestSlotUC := ucScheduling.NewFindBestSlot(schedulingRepo, policy)
	calendarUC := ucScheduling.NewCalendarQuery(schedulingRepo)
	statisticsUC := ucScheduling.NewGetStatistics(schedulingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		cfg,
		createAppointmentUC,
		updateAppointmentUC,
		rescheduleUC,
		transitionUC,
		bulkTransitionUC,
		recurringUC,
		checkConflictsUC,
		schedulingRepo,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(cfg, availabilityUC, bestSlotUC)
	calendarHandler := handlers.NewCalendarHandler(cfg, calendarUC)
	statisticsHandler := handlers.NewStatisticsHandler(cfg, statisticsUC)
	workingHoursHandler := handlers.NewWorkingHoursHandler(schedulingRepo)

	staffHandler := handlers.NewStaffHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db, cfg.MinDurationMin)
	roomHandler := handlers.NewRoomHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		api.POST("/appointments", appointmentHandler.Create)
		api.POST("/appointments/recurring", appointmentHandler.CreateRecurring)
		api.POST("/appointments/check-conflicts", appointmentHandler.CheckConflicts)
		api.POST("/appointments/bulk-status", appointmentHandler.BulkStatus)

		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PATCH("/appointments/:id", appointmentHandler.Update)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)

		api.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
		api.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		api.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		api.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		api.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

		// ------------------------------
		// AVAILABILITY / CALENDAR
		// ------------------------------
		api.GET("/availability/slots", availabilityHandler.Slots)
		api.GET("/availability/best-slot", availabilityHandler.BestSlot)

		api.GET("/calendar/day", calendarHandler.Day)
		api.GET("/calendar/week", calendarHandler.Week)
		api.GET("/calendar/month", calendarHandler.Month)

		// ------------------------------
		// STATISTICS / AUDIT
		// ------------------------------
		api.GET("/statistics", statisticsHandler.Get)
		api.GET("/audit-logs", auditLogsHandler.List)

		// ------------------------------
		// STAFF + WORKING HOURS
		// ------------------------------
		api.GET("/staff", staffHandler.List)
		api.POST("/staff", staffHandler.Create)
		api.GET("/staff/:id", staffHandler.Get)
		api.PATCH("/staff/:id", staffHandler.Update)
		api.DELETE("/staff/:id", staffHandler.Delete)

		api.GET("/staff/:id/working-hours", workingHoursHandler.Get)
		api.PUT("/staff/:id/working-hours", workingHoursHandler.Update)

		// ------------------------------
		// SERVICES
		// ------------------------------
		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.GET("/services/:id", serviceHandler.Get)
		api.PATCH("/services/:id", serviceHandler.Update)
		api.DELETE("/services/:id", serviceHandler.Delete)

		// ------------------------------
		// ROOMS
		// ------------------------------
		api.GET("/rooms", roomHandler.List)
		api.POST("/rooms", roomHandler.Create)
		api.GET("/rooms/:id", roomHandler.Get)
		api.PATCH("/rooms/:id", roomHandler.Update)
		api.DELETE("/rooms/:id", roomHandler.Delete)

		// ------------------------------
		// CLIENTS
		// ------------------------------
		api.GET("/clients", clientHandler.List)
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients/:id", clientHandler.Get)
		api.PATCH("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)
	}
}
