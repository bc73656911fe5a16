// Package trackingrepo stores driver location pings in tracking_pings.
package trackingrepo

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PingDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryRequestID uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude          float64   `gorm:"not null"`
	Longitude         float64   `gorm:"not null"`
	RecordedAt        time.Time `gorm:"not null"`
}

func (PingDTO) TableName() string {
	return "tracking_pings"
}

// GormTrackingRepository implements ports.TrackingRepository. Pings are never
// updated, so nothing is tracked.
type GormTrackingRepository struct {
	db *gorm.DB
}

func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

func (r *GormTrackingRepository) Add(ctx context.Context, ping *tracking.Ping) error {
	if err := ping.Validate(); err != nil {
		return err
	}

	dto := PingDTO{
		ID:                ping.ID().Bytes(),
		DeliveryRequestID: ping.DeliveryRequestID().Bytes(),
		DriverID:          ping.DriverID().Bytes(),
		Latitude:          ping.Location().Latitude(),
		Longitude:         ping.Location().Longitude(),
		RecordedAt:        ping.RecordedAt(),
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTrackingRepository) ListByDeliveryRequest(
	ctx context.Context,
	deliveryRequestID kernel.UUID,
) ([]*tracking.Ping, error) {
	if err := deliveryRequestID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PingDTO
	if err := r.db.WithContext(ctx).
		Where("delivery_request_id = ?", deliveryRequestID.Bytes()).
		Order("recorded_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	pings := make([]*tracking.Ping, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pings = append(pings, p)
	}
	return pings, nil
}

func toDomain(dto PingDTO) (*tracking.Ping, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requestID, err := kernel.UUIDFromBytes(dto.DeliveryRequestID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	return tracking.RestorePing(id, requestID, driverID, loc, dto.RecordedAt.UTC()), nil
}
