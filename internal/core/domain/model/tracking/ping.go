// Package tracking records driver location pings for a delivery. Pings are
// append-only and only used as history.
package tracking

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var ErrPingIsNotConstructed = errors.New("Ping must be created via NewPing constructor")

type Ping struct {
	id                kernel.UUID
	deliveryRequestID kernel.UUID
	driverID          kernel.UUID
	location          kernel.Location
	recordedAt        time.Time

	isConstructed bool
}

func NewPing(id, deliveryRequestID, driverID kernel.UUID, location kernel.Location, recordedAt time.Time) (*Ping, error) {
	var idErr, reqErr, drvErr error
	if err := id.Validate(); err != nil {
		idErr = err
	}
	if err := deliveryRequestID.Validate(); err != nil {
		reqErr = errs.NewValueIsRequiredErrorWithCause("delivery_request_id", err)
	}
	if err := driverID.Validate(); err != nil {
		drvErr = errs.NewValueIsRequiredErrorWithCause("driver_id", err)
	}
	if err := errors.Join(idErr, reqErr, drvErr, location.Validate()); err != nil {
		return nil, err
	}

	return RestorePing(id, deliveryRequestID, driverID, location, recordedAt), nil
}

func RestorePing(id, deliveryRequestID, driverID kernel.UUID, location kernel.Location, recordedAt time.Time) *Ping {
	return &Ping{
		id:                id,
		deliveryRequestID: deliveryRequestID,
		driverID:          driverID,
		location:          location,
		recordedAt:        recordedAt,
		isConstructed:     true,
	}
}

func (p *Ping) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPingIsNotConstructed
	}
	return nil
}

func (p *Ping) ID() kernel.UUID                { return p.id }
func (p *Ping) DeliveryRequestID() kernel.UUID { return p.deliveryRequestID }
func (p *Ping) DriverID() kernel.UUID          { return p.driverID }
func (p *Ping) Location() kernel.Location      { return p.location }
func (p *Ping) RecordedAt() time.Time          { return p.recordedAt }
