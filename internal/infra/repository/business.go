package repository

import (
	"context"
	"time"

	"booking-engine/internal/domain/business"
	"booking-engine/internal/domain/catalog"
	"booking-engine/internal/domain/schedule"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/pgsql"
	"booking-engine/internal/infra/repository/converter"

	"github.com/google/uuid"
)

type BusinessWriteQueries interface {
	CreateBusiness(ctx context.Context, db pgsql.DBTX, arg pgsql.Businesses) error
	CreateService(ctx context.Context, db pgsql.DBTX, arg pgsql.Services) error
	UpsertBusinessHours(ctx context.Context, db pgsql.DBTX, businessID uuid.UUID, hours []byte, updatedAt time.Time) error
}

type BusinessRepository struct {
	queries BusinessWriteQueries
	db      pgsql.DBTX
}

func NewBusinessRepository(queries BusinessWriteQueries, db pgsql.DBTX) *BusinessRepository {
	return &BusinessRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BusinessRepository) Create(ctx context.Context, b *business.Business) error {
	if err := r.queries.CreateBusiness(ctx, r.db, converter.BusinessToRow(b)); err != nil {
		return infra.WrapRepoErr("failed to create business", err)
	}
	return nil
}

type ServiceRepository struct {
	queries BusinessWriteQueries
	db      pgsql.DBTX
}

func NewServiceRepository(queries BusinessWriteQueries, db pgsql.DBTX) *ServiceRepository {
	return &ServiceRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *catalog.Service) error {
	if err := r.queries.CreateService(ctx, r.db, converter.ServiceToRow(s)); err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

type BusinessHoursRepository struct {
	queries BusinessWriteQueries
	db      pgsql.DBTX
	now     func() time.Time
}

func NewBusinessHoursRepository(queries BusinessWriteQueries, db pgsql.DBTX) *BusinessHoursRepository {
	return &BusinessHoursRepository{
		queries: queries,
		db:      db,
		now:     time.Now,
	}
}

func (r *BusinessHoursRepository) Replace(ctx context.Context, businessID uuid.UUID, hours schedule.WeeklyHours) error {
	doc, err := converter.HoursToJSON(hours)
	if err != nil {
		return infra.WrapRepoErr("failed to encode business hours", err, infra.KindDBFailure)
	}
	if err := r.queries.UpsertBusinessHours(ctx, r.db, businessID, doc, r.now()); err != nil {
		return infra.WrapRepoErr("failed to save business hours", err)
	}
	return nil
}
