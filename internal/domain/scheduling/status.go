package scheduling

import "github.com/medagenda/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

func InitialStatus() Status {
	return StatusScheduled
}

// Terminal states accept no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// ===============================
// Transition guards
// ===============================

func CanConfirm(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if current != StatusScheduled && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// ===============================
// Lifecycle events
// ===============================

type Event string

const (
	EventConfirm  Event = "confirm"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
	EventNoShow   Event = "no_show"
)

// EventForTarget maps a desired status onto the event that reaches it,
// so bulk updates go through the same transition rules as single ones.
func EventForTarget(target Status) (Event, error) {
	switch target {
	case StatusConfirmed:
		return EventConfirm, nil
	case StatusCancelled:
		return EventCancel, nil
	case StatusCompleted:
		return EventComplete, nil
	case StatusNoShow:
		return EventNoShow, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}
