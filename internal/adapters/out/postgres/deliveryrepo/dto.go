// Package deliveryrepo maps delivery request aggregates to the delivery_requests table.
package deliveryrepo

import (
	"time"

	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryRequestDTO is one row of delivery_requests. Status is stored by name.
type DeliveryRequestDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID   `gorm:"type:uuid;not null;index"`
	Pickup      WaypointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff     WaypointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	DistanceKm  float64     `gorm:"not null"`
	PriceMinor  *int64
	IsPaid      bool      `gorm:"not null;default:false"`
	Status      string    `gorm:"type:varchar(20);not null"`
	PackageType string    `gorm:"type:varchar(50);not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryRequestDTO) TableName() string {
	return "delivery_requests"
}

type WaypointDTO struct {
	Address string  `gorm:"type:varchar(255);not null"`
	Lat     float64 `gorm:"not null"`
	Lng     float64 `gorm:"not null"`
}

func fromDomain(r *delivery.Request) DeliveryRequestDTO {
	var price *int64
	if p := r.Price(); p != nil {
		minor := p.Minor()
		price = &minor
	}

	return DeliveryRequestDTO{
		ID:          r.ID().Bytes(),
		CustomerID:  r.CustomerID().Bytes(),
		Pickup:      waypointFromDomain(r.Pickup()),
		Dropoff:     waypointFromDomain(r.Dropoff()),
		DistanceKm:  r.DistanceKm(),
		PriceMinor:  price,
		IsPaid:      r.IsPaid(),
		Status:      r.Status().String(),
		PackageType: r.PackageType(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

func waypointFromDomain(w delivery.Waypoint) WaypointDTO {
	return WaypointDTO{
		Address: w.Address,
		Lat:     w.Location.Latitude(),
		Lng:     w.Location.Longitude(),
	}
}

func toDomain(dto DeliveryRequestDTO) (*delivery.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	pickup, err := waypointToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}

	dropoff, err := waypointToDomain(dto.Dropoff)
	if err != nil {
		return nil, err
	}

	var price *kernel.Money
	if dto.PriceMinor != nil {
		m, moneyErr := kernel.NewMoney(*dto.PriceMinor)
		if moneyErr != nil {
			return nil, moneyErr
		}
		price = &m
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreRequest(id, customerID, pickup, dropoff, dto.DistanceKm, price,
		dto.IsPaid, status, dto.PackageType, dto.CreatedAt.UTC(), dto.UpdatedAt.UTC())
}

func waypointToDomain(dto WaypointDTO) (delivery.Waypoint, error) {
	loc, err := kernel.NewLocation(dto.Lat, dto.Lng)
	if err != nil {
		return delivery.Waypoint{}, err
	}
	return delivery.Waypoint{Address: dto.Address, Location: loc}, nil
}
