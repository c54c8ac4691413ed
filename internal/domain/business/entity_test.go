//go:build unit

package business_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	owner := uuid.New()
	valid := business.NewParams{OwnerID: owner, Name: "Barbearia Central", Slug: "barbearia-central", Now: time.Now()}

	b, err := business.New(valid)
	require.NoError(t, err)
	assert.True(t, b.OwnedBy(owner))
	assert.False(t, b.OwnedBy(uuid.New()))
	assert.Equal(t, 30, b.Granularity(30))

	invalid := []struct {
		name   string
		mutate func(p *business.NewParams)
	}{
		{name: "blank name", mutate: func(p *business.NewParams) { p.Name = " " }},
		{name: "missing owner", mutate: func(p *business.NewParams) { p.OwnerID = uuid.Nil }},
		{name: "slug with spaces", mutate: func(p *business.NewParams) { p.Slug = "barbearia central" }},
		{name: "slug with trailing dash", mutate: func(p *business.NewParams) { p.Slug = "central-" }},
		{name: "negative step", mutate: func(p *business.NewParams) { p.SlotStepMinutes = -5 }},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := business.New(p)
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}

func TestGranularityOverride(t *testing.T) {
	b := business.Reconstruct(uuid.New(), uuid.New(), "Studio", "studio", true, 15, time.Now())
	assert.Equal(t, 15, b.Granularity(30))
	assert.True(t, b.AutoConfirm())
}
