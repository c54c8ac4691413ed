package business

import (
	"regexp"
	"strings"
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type Business struct {
	id              uuid.UUID
	ownerID         uuid.UUID
	name            string
	slug            string
	autoConfirm     bool
	slotStepMinutes int
	createdAt       time.Time
}

type NewParams struct {
	OwnerID         uuid.UUID
	Name            string
	Slug            string
	AutoConfirm     bool
	SlotStepMinutes int
	Now             time.Time
}

func New(p NewParams) (*Business, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, errs.Mark(errs.New("business name is required"), errs.ErrValidation)
	}
	if p.OwnerID == uuid.Nil {
		return nil, errs.Mark(errs.New("business owner is required"), errs.ErrValidation)
	}
	slug := strings.ToLower(strings.TrimSpace(p.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, errs.Mark(errs.Newf("invalid slug %q", p.Slug), errs.ErrValidation)
	}
	if p.SlotStepMinutes < 0 || p.SlotStepMinutes > 24*60 {
		return nil, errs.Mark(errs.Newf("slot step %d out of range", p.SlotStepMinutes), errs.ErrValidation)
	}
	return &Business{
		id:              uuid.New(),
		ownerID:         p.OwnerID,
		name:            name,
		slug:            slug,
		autoConfirm:     p.AutoConfirm,
		slotStepMinutes: p.SlotStepMinutes,
		createdAt:       p.Now,
	}, nil
}

func Reconstruct(id, ownerID uuid.UUID, name, slug string, autoConfirm bool, slotStepMinutes int, createdAt time.Time) *Business {
	return &Business{
		id:              id,
		ownerID:         ownerID,
		name:            name,
		slug:            slug,
		autoConfirm:     autoConfirm,
		slotStepMinutes: slotStepMinutes,
		createdAt:       createdAt,
	}
}

func (b *Business) OwnedBy(userID uuid.UUID) bool {
	return b.ownerID == userID
}

// Granularity prefers the business's own step and falls back to the deployment default.
func (b *Business) Granularity(fallback int) int {
	if b.slotStepMinutes > 0 {
		return b.slotStepMinutes
	}
	return fallback
}

func (b *Business) ID() uuid.UUID        { return b.id }
func (b *Business) OwnerID() uuid.UUID   { return b.ownerID }
func (b *Business) Name() string         { return b.name }
func (b *Business) Slug() string         { return b.slug }
func (b *Business) AutoConfirm() bool    { return b.autoConfirm }
func (b *Business) SlotStepMinutes() int { return b.slotStepMinutes }
func (b *Business) CreatedAt() time.Time { return b.createdAt }
