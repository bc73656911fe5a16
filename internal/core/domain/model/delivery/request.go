package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

const (
	DefaultPackageType   = "parcel"
	MaxPackageTypeLength = 50
	MaxAddressLength     = 255
)

var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Pricing derives the distance and price of a route. It runs once, inside NewRequest.
type Pricing interface {
	Quote(from kernel.Location, to kernel.Location) (distanceKm float64, price kernel.Money, err error)
}

// Waypoint is one end of a route: a validated location and an optional free-text address.
type Waypoint struct {
	Address  string
	Location kernel.Location
}

func NewWaypoint(address string, location kernel.Location) (Waypoint, error) {
	address = strings.TrimSpace(address)
	if len(address) > MaxAddressLength {
		return Waypoint{}, errs.NewValueIsOutOfRangeError("address length", len(address), 0, MaxAddressLength)
	}
	if err := location.Validate(); err != nil {
		return Waypoint{}, err
	}
	return Waypoint{Address: address, Location: location}, nil
}

// Request is the delivery request aggregate root. Distance and price are derived
// at construction and never change afterwards.
type Request struct {
	id          kernel.UUID
	customerID  kernel.UUID
	pickup      Waypoint
	dropoff     Waypoint
	distanceKm  float64
	price       *kernel.Money
	isPaid      bool
	status      Status
	packageType string
	createdAt   time.Time
	updatedAt   time.Time

	isConstructed bool
}

// NewRequest creates a PENDING request and prices it through pricing.
func NewRequest(
	id kernel.UUID,
	customerID kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	packageType string,
	pricing Pricing,
	now time.Time,
) (*Request, error) {
	r := &Request{
		status:        Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setCustomerID(customerID),
		r.setRoute(pickup, dropoff),
		r.setPackageType(packageType),
	); err != nil {
		return nil, err
	}

	if pricing == nil {
		return nil, errs.NewValueIsRequiredError("pricing")
	}
	distanceKm, price, err := pricing.Quote(pickup.Location, dropoff.Location)
	if err != nil {
		return nil, err
	}
	r.distanceKm = distanceKm
	r.price = &price

	return r, nil
}

// RestoreRequest rebuilds a request from storage without re-running pricing.
func RestoreRequest(
	id kernel.UUID,
	customerID kernel.UUID,
	pickup Waypoint,
	dropoff Waypoint,
	distanceKm float64,
	price *kernel.Money,
	isPaid bool,
	status Status,
	packageType string,
	createdAt time.Time,
	updatedAt time.Time,
) (*Request, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return &Request{
		id:            id,
		customerID:    customerID,
		pickup:        pickup,
		dropoff:       dropoff,
		distanceKm:    distanceKm,
		price:         price,
		isPaid:        isPaid,
		status:        status,
		packageType:   packageType,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (r *Request) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRequestIsNotConstructed
	}
	return nil
}

func (r *Request) ID() kernel.UUID         { return r.id }
func (r *Request) CustomerID() kernel.UUID { return r.customerID }
func (r *Request) Pickup() Waypoint        { return r.pickup }
func (r *Request) Dropoff() Waypoint       { return r.dropoff }
func (r *Request) DistanceKm() float64     { return r.distanceKm }
func (r *Request) IsPaid() bool            { return r.isPaid }
func (r *Request) Status() Status          { return r.status }
func (r *Request) PackageType() string     { return r.packageType }
func (r *Request) CreatedAt() time.Time    { return r.createdAt }
func (r *Request) UpdatedAt() time.Time    { return r.updatedAt }

// Price is nil only for records restored from storage without a price.
func (r *Request) Price() *kernel.Money {
	return r.price
}

// IsOwnedBy reports whether customerID created this request.
func (r *Request) IsOwnedBy(customerID kernel.UUID) bool {
	return r.customerID.IsEqual(customerID)
}

func (r *Request) Assign(now time.Time) error {
	return r.transition(r.status.Assign, now)
}

// Start moves the request to IN_PROGRESS once the assigned driver accepted.
func (r *Request) Start(now time.Time) error {
	return r.transition(r.status.Start, now)
}

// Release moves the request back to PENDING once the assigned driver rejected.
func (r *Request) Release(now time.Time) error {
	return r.transition(r.status.Release, now)
}

func (r *Request) Complete(now time.Time) error {
	return r.transition(r.status.Complete, now)
}

func (r *Request) Cancel(now time.Time) error {
	return r.transition(r.status.Cancel, now)
}

// MarkPaid is idempotent. is_paid never goes back to false.
func (r *Request) MarkPaid(now time.Time) {
	if r.isPaid {
		return
	}
	r.isPaid = true
	r.updatedAt = now
}

// PriceForPayment returns the amount a payment must copy.
func (r *Request) PriceForPayment() (kernel.Money, error) {
	if r.price == nil {
		return kernel.Money{}, errs.NewValueIsRequiredErrorWithCause("price",
			fmt.Errorf("delivery request %s has no price", r.id))
	}
	return *r.price, nil
}

func (r *Request) transition(next func() (Status, error), now time.Time) error {
	status, err := next()
	if err != nil {
		return err
	}
	r.status = status
	r.updatedAt = now
	return nil
}

func (r *Request) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Request) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer_id", err)
	}
	r.customerID = id
	return nil
}

func (r *Request) setRoute(pickup Waypoint, dropoff Waypoint) error {
	if err := errors.Join(pickup.Location.Validate(), dropoff.Location.Validate()); err != nil {
		return err
	}
	r.pickup = pickup
	r.dropoff = dropoff
	return nil
}

func (r *Request) setPackageType(packageType string) error {
	packageType = strings.TrimSpace(packageType)
	if packageType == "" {
		packageType = DefaultPackageType
	}
	if len(packageType) > MaxPackageTypeLength {
		return errs.NewValueIsOutOfRangeError("package_type length", len(packageType), 1, MaxPackageTypeLength)
	}
	r.packageType = packageType
	return nil
}
