package deliveryrepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRequestRepository implements ports.DeliveryRequestRepository using GORM.
type GormDeliveryRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormDeliveryRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRequestRepository {
	return &GormDeliveryRequestRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormDeliveryRequestRepository) Add(ctx context.Context, aggregate *delivery.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update overwrites every column of the row, including is_paid and price.
func (r *GormDeliveryRequestRepository) Update(ctx context.Context, aggregate *delivery.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&DeliveryRequestDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery request", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormDeliveryRequestRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Request, error) {
	return r.get(ctx, r.db, id)
}

// GetForUpdate takes a FOR UPDATE row lock. Callers holding a lock on an
// assignment or payment row must take it before this one.
func (r *GormDeliveryRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Request, error) {
	return r.get(ctx, r.db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetFirstAssignable returns the oldest PENDING request, skipping rows that
// another transaction has locked, or nil when there is none.
func (r *GormDeliveryRequestRepository) GetFirstAssignable(ctx context.Context) (*delivery.Request, error) {
	var dto DeliveryRequestDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Options: clause.LockingOptionsSkipLocked}).
		Where("status = ?", delivery.Pending.String()).
		Order("created_at").
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil //nolint:nilnil // absence is not an error here
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormDeliveryRequestRepository) get(ctx context.Context, db *gorm.DB, id kernel.UUID) (*delivery.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryRequestDTO
	if err := db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery request", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
