package queries

import (
	"booking-engine/internal/infra"
	"booking-engine/internal/pkg/errs"
)

func mapReadErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	default:
		return err
	}
}

// mapSlotReadErr keeps unknown ids as NotFound; any other storage failure on the
// availability path is transient.
func mapSlotReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrNotFound)
	}
	return errs.Mark(err, errs.ErrTransientUnavailable)
}
