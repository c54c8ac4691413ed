package commands

import (
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/errs"
)

// mapRepoErr attaches the usecase taxonomy to repository failures. onConflict is the
// sentinel a CONFLICT row-level outcome means for the calling operation.
func mapRepoErr(err error, onConflict error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindLockTimeout):
		return errs.Mark(err, errs.ErrTransientUnavailable)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, onConflict)
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrAlreadyExists)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, errs.ErrNotFound)
	default:
		return err
	}
}

var taxonomy = []error{
	errs.ErrValidation,
	errs.ErrNotFound,
	errs.ErrSlotUnavailable,
	errs.ErrTransientUnavailable,
	errs.ErrHoursNotConfigured,
	errs.ErrForbidden,
	errs.ErrInvalidTransition,
	errs.ErrAlreadyExists,
}

// finish classifies errors raised by the unit of work itself (lock waits, commit-time
// checks). Errors already classified inside the transaction pass through untouched.
func finish(err error, onConflict error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range taxonomy {
		if errs.Is(err, sentinel) {
			return err
		}
	}
	return mapRepoErr(err, onConflict)
}
