// Package servers is the HTTP contract of api/openapi.yml: wire types, the
// ServerInterface implemented by the HTTP adapter and the echo route table.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for DeliveryRequestStatus.
const (
	DeliveryRequestStatusASSIGNED   DeliveryRequestStatus = "ASSIGNED"
	DeliveryRequestStatusCANCELLED  DeliveryRequestStatus = "CANCELLED"
	DeliveryRequestStatusCOMPLETED  DeliveryRequestStatus = "COMPLETED"
	DeliveryRequestStatusINPROGRESS DeliveryRequestStatus = "IN_PROGRESS"
	DeliveryRequestStatusPENDING    DeliveryRequestStatus = "PENDING"
)

// Defines values for AssignmentStatus.
const (
	AssignmentStatusACCEPTED AssignmentStatus = "ACCEPTED"
	AssignmentStatusASSIGNED AssignmentStatus = "ASSIGNED"
	AssignmentStatusREJECTED AssignmentStatus = "REJECTED"
)

// Defines values for PaymentStatus.
const (
	PaymentStatusFAILED  PaymentStatus = "FAILED"
	PaymentStatusPENDING PaymentStatus = "PENDING"
	PaymentStatusSUCCESS PaymentStatus = "SUCCESS"
)

// Assignment defines model for Assignment.
type Assignment struct {
	AssignedAt        time.Time          `json:"assigned_at"`
	DeliveryRequestId openapi_types.UUID `json:"delivery_request_id"`
	DriverId          openapi_types.UUID `json:"driver_id"`
	Id                openapi_types.UUID `json:"id"`
	RejectionReason   *string            `json:"rejection_reason,omitempty"`
	Status            AssignmentStatus   `json:"status"`
}

// AssignmentStatus defines model for Assignment.Status.
type AssignmentStatus string

// DeliveryRequest defines model for DeliveryRequest.
type DeliveryRequest struct {
	Assignments *[]Assignment         `json:"assignments,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	CustomerId  openapi_types.UUID    `json:"customer_id"`
	DistanceKm  float64               `json:"distance_km"`
	Dropoff     Waypoint              `json:"dropoff"`
	Id          openapi_types.UUID    `json:"id"`
	IsPaid      bool                  `json:"is_paid"`
	PackageType string                `json:"package_type"`
	Pickup      Waypoint              `json:"pickup"`
	Price       *float64              `json:"price,omitempty"`
	Status      DeliveryRequestStatus `json:"status"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// DeliveryRequestStatus defines model for DeliveryRequest.Status.
type DeliveryRequestStatus string

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewAssignment defines model for NewAssignment.
type NewAssignment struct {
	DriverId openapi_types.UUID `json:"driver_id"`
}

// NewDeliveryRequest defines model for NewDeliveryRequest.
type NewDeliveryRequest struct {
	Dropoff     NewWaypoint `json:"dropoff"`
	PackageType *string     `json:"package_type,omitempty"`
	Pickup      NewWaypoint `json:"pickup"`
}

// NewPayment defines model for NewPayment.
type NewPayment struct {
	Currency      *string `json:"currency,omitempty"`
	PaymentMethod string  `json:"payment_method"`
}

// NewTrackingPing defines model for NewTrackingPing.
type NewTrackingPing struct {
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// NewWaypoint defines model for NewWaypoint.
type NewWaypoint struct {
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Payment defines model for Payment.
type Payment struct {
	Amount            float64            `json:"amount"`
	CreatedAt         time.Time          `json:"created_at"`
	Currency          string             `json:"currency"`
	DeliveryRequestId openapi_types.UUID `json:"delivery_request_id"`
	Id                openapi_types.UUID `json:"id"`
	PaymentMethod     string             `json:"payment_method"`
	Status            PaymentStatus      `json:"status"`
	TransactionId     *string            `json:"transaction_id,omitempty"`
}

// PaymentStatus defines model for Payment.Status.
type PaymentStatus string

// PaymentCreated defines model for PaymentCreated.
type PaymentCreated struct {
	CheckoutReference *string `json:"checkout_reference,omitempty"`
	Payment           Payment `json:"payment"`
}

// ReconcilePayment defines model for ReconcilePayment.
type ReconcilePayment struct {
	Status        string  `json:"status"`
	TransactionId *string `json:"transaction_id,omitempty"`
}

// RejectAssignment defines model for RejectAssignment.
type RejectAssignment struct {
	Reason string `json:"reason"`
}

// TrackingPing defines model for TrackingPing.
type TrackingPing struct {
	DriverId   openapi_types.UUID `json:"driver_id"`
	Id         openapi_types.UUID `json:"id"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	RecordedAt time.Time          `json:"recorded_at"`
}

// Waypoint defines model for Waypoint.
type Waypoint struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Id defines model for Id.
type Id = openapi_types.UUID

// ReconcilePaymentParams defines parameters for ReconcilePayment.
type ReconcilePaymentParams struct {
	XGatewayToken *string `json:"X-Gateway-Token,omitempty"`
}

// CreateDeliveryRequestJSONRequestBody defines body for CreateDeliveryRequest for application/json ContentType.
type CreateDeliveryRequestJSONRequestBody = NewDeliveryRequest

// AssignDriverJSONRequestBody defines body for AssignDriver for application/json ContentType.
type AssignDriverJSONRequestBody = NewAssignment

// CreatePaymentJSONRequestBody defines body for CreatePayment for application/json ContentType.
type CreatePaymentJSONRequestBody = NewPayment

// RecordTrackingPingJSONRequestBody defines body for RecordTrackingPing for application/json ContentType.
type RecordTrackingPingJSONRequestBody = NewTrackingPing

// RejectAssignmentJSONRequestBody defines body for RejectAssignment for application/json ContentType.
type RejectAssignmentJSONRequestBody = RejectAssignment

// ReconcilePaymentJSONRequestBody defines body for ReconcilePayment for application/json ContentType.
type ReconcilePaymentJSONRequestBody = ReconcilePayment
