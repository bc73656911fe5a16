package http

import (
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/generated/servers"
)

func toWaypointInput(w servers.NewWaypoint) commands.WaypointInput {
	return commands.WaypointInput{
		Address:   deref(w.Address),
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
	}
}

func toDeliveryRequest(v queries.DeliveryRequestView, withHistory bool) servers.DeliveryRequest {
	out := servers.DeliveryRequest{
		Id:          v.ID.Bytes(),
		CustomerId:  v.CustomerID.Bytes(),
		Pickup:      toWaypoint(v.Pickup),
		Dropoff:     toWaypoint(v.Dropoff),
		DistanceKm:  v.DistanceKm,
		Price:       v.Price,
		IsPaid:      v.IsPaid,
		Status:      servers.DeliveryRequestStatus(v.Status),
		PackageType: v.PackageType,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}

	if withHistory {
		history := make([]servers.Assignment, len(v.Assignments))
		for i, a := range v.Assignments {
			history[i] = toAssignment(a)
		}
		out.Assignments = &history
	}

	return out
}

func toWaypoint(w queries.WaypointView) servers.Waypoint {
	return servers.Waypoint{
		Address:   w.Address,
		Latitude:  w.Latitude,
		Longitude: w.Longitude,
	}
}

func toAssignment(v queries.AssignmentView) servers.Assignment {
	return servers.Assignment{
		Id:                v.ID.Bytes(),
		DriverId:          v.DriverID.Bytes(),
		DeliveryRequestId: v.DeliveryRequestID.Bytes(),
		AssignedAt:        v.AssignedAt,
		Status:            servers.AssignmentStatus(v.Status),
		RejectionReason:   v.RejectionReason,
	}
}

func toPayment(p *payment.Payment) servers.Payment {
	return servers.Payment{
		Id:                p.ID().Bytes(),
		DeliveryRequestId: p.DeliveryRequestID().Bytes(),
		Amount:            p.Amount().Amount(),
		Currency:          p.Currency(),
		PaymentMethod:     p.Method().String(),
		TransactionId:     p.TransactionID(),
		Status:            servers.PaymentStatus(p.Status().String()),
		CreatedAt:         p.CreatedAt(),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
