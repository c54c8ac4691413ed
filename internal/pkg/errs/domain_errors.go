package errs

// Error taxonomy shared by usecases and handlers. Lower layers attach these with Mark.
var (
	// Rejected before touching storage: malformed date/time, non-positive duration, missing client fields.
	ErrValidation = New("validation error")

	// Unknown business, service or appointment.
	ErrNotFound = New("not found")

	// Lost booking race, overlapping interval, or a slot outside open hours.
	ErrSlotUnavailable = New("slot unavailable")

	// The per-key serialization point could not be acquired in time. Retryable.
	ErrTransientUnavailable = New("temporarily unavailable")

	// The business has no open weekday at all.
	ErrHoursNotConfigured = New("business hours not configured")

	// The caller does not own the business the resource belongs to.
	ErrForbidden = New("forbidden")

	// The appointment is not in a status that allows the requested action.
	ErrInvalidTransition = New("invalid status transition")

	// A uniquely named resource such as a business slug is already taken.
	ErrAlreadyExists = New("already exists")

	ErrDatabaseOperationFailed = New("database operation failed")
)
