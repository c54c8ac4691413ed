package shared

import (
	"sort"

	"booking-engine/internal/domain/schedule"

	"github.com/google/uuid"
)

// BookingKey is the unit of write serialization: one business on one calendar date.
type BookingKey struct {
	BusinessID uuid.UUID
	Date       schedule.Date
}

func (k BookingKey) String() string {
	return k.BusinessID.String() + ":" + k.Date.String()
}

// NormalizeKeys de-duplicates and sorts keys so every caller acquires them in the same order.
func NormalizeKeys(keys []BookingKey) []BookingKey {
	seen := make(map[string]struct{}, len(keys))
	out := make([]BookingKey, 0, len(keys))
	for _, k := range keys {
		s := k.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
