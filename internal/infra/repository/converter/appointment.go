package converter

import (
	"booking-engine/internal/domain/appointment"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

func AppointmentToRow(a *appointment.Appointment) pgsql.Appointments {
	c := a.Client()
	return pgsql.Appointments{
		ID:              a.ID(),
		BusinessID:      a.BusinessID(),
		ServiceID:       a.ServiceID(),
		AppointmentDate: DateToPgtype(a.Date()),
		StartMinute:     pgconv.IntToInt32(a.StartMinute()),
		EndMinute:       pgconv.IntToInt32(a.EndMinute()),
		Status:          a.Status().String(),
		ClientName:      c.Name,
		ClientPhone:     c.Phone,
		ClientEmail:     pgconv.OptionalStringToPgtype(c.Email),
		RescheduledFrom: pgconv.UUIDPtrToPgtype(a.RescheduledFrom()),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

func AppointmentFromRow(row pgsql.Appointments) *appointment.Appointment {
	return appointment.Reconstruct(
		row.ID,
		row.BusinessID,
		row.ServiceID,
		schedule.DateOf(row.AppointmentDate.Time),
		int(row.StartMinute),
		int(row.EndMinute),
		appointment.Status(row.Status),
		appointment.Client{
			Name:  row.ClientName,
			Phone: row.ClientPhone,
			Email: pgconv.StringFromPgtype(row.ClientEmail),
		},
		pgconv.UUIDPtrFromPgtype(row.RescheduledFrom),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func OccupancyFromRows(rows []pgsql.OccupiedIntervalRow) []shared.Occupancy {
	out := make([]shared.Occupancy, len(rows))
	for i, r := range rows {
		out[i] = shared.Occupancy{
			AppointmentID: r.ID,
			Interval:      schedule.Interval{Start: int(r.StartMinute), End: int(r.EndMinute)},
		}
	}
	return out
}

func DateToPgtype(d schedule.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Time())
}

func ListParams(f shared.AppointmentFilter) pgsql.ListAppointmentsParams {
	params := pgsql.ListAppointmentsParams{
		BusinessID:   f.BusinessID,
		AfterCreated: pgconv.TimePtrToPgtype(f.AfterCreated),
		AfterID:      pgconv.UUIDToOptionalPgtype(f.AfterID),
		Limit:        pgconv.IntToInt32(f.Limit),
	}
	if f.Date != nil {
		params.Date = DateToPgtype(*f.Date)
	}
	if f.Status != nil {
		params.Status = pgconv.OptionalStringToPgtype(f.Status.String())
	}
	return params
}
