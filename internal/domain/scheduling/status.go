package scheduling

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// InitialStatus é o único estado válido na criação.
func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Transições
// ===============================

// CanCancel define se uma consulta pode ser cancelada.
// Cancelar duas vezes é um erro distinto de cancelar uma consulta concluída.
func CanCancel(current Status) error {
	switch current {
	case StatusScheduled:
		return nil
	case StatusCancelled:
		return &AlreadyCancelledError{}
	default:
		return &InvalidStateError{Action: "cancel", Current: current}
	}
}

// CanComplete define se uma consulta pode ser concluída.
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return &InvalidStateError{Action: "complete", Current: current}
	}
	return nil
}

// CanReschedule define se uma consulta pode ser remarcada.
func CanReschedule(current Status) error {
	if current != StatusScheduled {
		return &InvalidStateError{Action: "reschedule", Current: current}
	}
	return nil
}
