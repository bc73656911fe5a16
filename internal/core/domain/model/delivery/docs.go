// Package delivery holds the delivery request aggregate and its lifecycle.
//
// The package includes:
//   - Request: a customer's ask to move a package from a pickup to a dropoff waypoint
//   - Status: the state machine PENDING -> ASSIGNED -> IN_PROGRESS -> COMPLETED,
//     with ASSIGNED -> PENDING on rejection and PENDING -> CANCELLED on cancellation
//   - Pricing: the contract used to derive distance and price exactly once, at creation
//
// Invalid transitions are reported as errs.StateConflictError.
package delivery
