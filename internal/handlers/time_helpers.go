package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
	"github.com/medagenda/clinic-scheduler/internal/timezone"
)

// All wall-clock input is interpreted in the clinic's single local
// timezone.

func parseDateIn(tz, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Location(tz))
}

func parseDateTimeIn(tz, value string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02 15:04", value, timezone.Location(tz)); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.RFC3339, value, timezone.Location(tz))
}

// writeBusinessError maps domain error codes onto HTTP statuses:
// missing things are 404, state-machine and contention violations 409,
// everything else a 400.
func writeBusinessError(c *gin.Context, err error) {
	code, ok := httperr.IsAnyBusiness(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Unexpected error.")
		return
	}

	switch code {
	case "appointment_not_found", "service_not_found", "staff_not_found":
		httperr.NotFound(c, code, "Resource not found.")
	case "invalid_state", "time_conflict":
		httperr.Conflict(c, code, "Operation not allowed in the current state.")
	default:
		httperr.BadRequest(c, code, "Invalid request.")
	}
}
