package converter

import (
	"encoding/json"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/pkg/pgconv"
)

func BusinessToRow(b *business.Business) pgsql.Businesses {
	return pgsql.Businesses{
		ID:              b.ID(),
		OwnerID:         b.OwnerID(),
		Name:            b.Name(),
		Slug:            b.Slug(),
		AutoConfirm:     b.AutoConfirm(),
		SlotStepMinutes: pgconv.IntToInt32(b.SlotStepMinutes()),
		CreatedAt:       b.CreatedAt(),
	}
}

func BusinessFromRow(row pgsql.Businesses) *business.Business {
	return business.Reconstruct(row.ID, row.OwnerID, row.Name, row.Slug, row.AutoConfirm, int(row.SlotStepMinutes), row.CreatedAt)
}

func ServiceToRow(s *catalog.Service) pgsql.Services {
	return pgsql.Services{
		ID:              s.ID(),
		BusinessID:      s.BusinessID(),
		Name:            s.Name(),
		Description:     s.Description(),
		DurationMinutes: pgconv.IntToInt32(s.DurationMinutes()),
		PriceCents:      s.Price().Cents(),
		CreatedAt:       s.CreatedAt(),
	}
}

func ServiceFromRow(row pgsql.Services) *catalog.Service {
	// price_cents carries CHECK (>= 0), so the error branch cannot fire for stored rows.
	price, _ := catalog.NewMoney(row.PriceCents)
	return catalog.ReconstructService(row.ID, row.BusinessID, row.Name, row.Description, int(row.DurationMinutes), price, row.CreatedAt)
}

// HoursToJSON stores the same document shape the API accepts.
func HoursToJSON(h schedule.WeeklyHours) ([]byte, error) {
	b, err := json.Marshal(h.Encode())
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode business hours")
	}
	return b, nil
}

// HoursFromJSON is lenient: unreadable documents or days decode as closed.
func HoursFromJSON(doc []byte) schedule.WeeklyHours {
	if len(doc) == 0 {
		return schedule.NewWeeklyHours()
	}
	var raw map[string]schedule.RawDay
	if err := json.Unmarshal(doc, &raw); err != nil {
		return schedule.NewWeeklyHours()
	}
	hours, err := schedule.DecodeWeeklyHours(raw, false)
	if err != nil {
		return schedule.NewWeeklyHours()
	}
	return hours
}
