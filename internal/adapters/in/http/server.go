package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Handler is the shape shared by every command and query handler.
type Handler[C any, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

type HandlerFunc[C any, R any] func(ctx context.Context, cmd C) (R, error)

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	return f(ctx, cmd)
}

// Handlers groups the use cases reachable over HTTP.
type Handlers struct {
	CreateDeliveryRequest Handler[commands.CreateDeliveryRequestCommand, *delivery.Request]
	CancelDeliveryRequest Handler[commands.CancelDeliveryRequestCommand, *delivery.Request]
	AssignDriver          Handler[commands.AssignDriverCommand, *assignment.Assignment]
	AcceptAssignment      Handler[commands.AcceptAssignmentCommand, *assignment.Assignment]
	RejectAssignment      Handler[commands.RejectAssignmentCommand, *assignment.Assignment]
	CompleteAssignment    Handler[commands.CompleteAssignmentCommand, *delivery.Request]
	CreatePayment         Handler[commands.CreatePaymentCommand, commands.CreatePaymentResult]
	ReconcilePayment      Handler[commands.ReconcilePaymentCommand, *payment.Payment]
	RecordTrackingPing    Handler[commands.RecordTrackingPingCommand, *tracking.Ping]
	GetDeliveryRequest    Handler[queries.GetDeliveryRequestQuery, queries.DeliveryRequestView]
	GetTrackingHistory    Handler[queries.GetTrackingHistoryQuery, []queries.TrackingPingView]
}

// Server implements servers.ServerInterface. Errors are returned to echo and
// rendered by ErrorHandler.
type Server struct {
	h            Handlers
	gatewayToken []byte
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers, gatewayToken string) *Server {
	return &Server{h: h, gatewayToken: []byte(gatewayToken)}
}

// CreateDeliveryRequest handles POST /api/v1/delivery-requests.
func (s *Server) CreateDeliveryRequest(ctx echo.Context) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var body servers.CreateDeliveryRequestJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewCreateDeliveryRequestCommand(
		caller,
		toWaypointInput(body.Pickup),
		toWaypointInput(body.Dropoff),
		deref(body.PackageType),
	)
	if err != nil {
		return err
	}

	request, err := s.h.CreateDeliveryRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toDeliveryRequest(queries.NewDeliveryRequestView(request, nil), false))
}

// GetDeliveryRequest handles GET /api/v1/delivery-requests/{id}.
func (s *Server) GetDeliveryRequest(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetDeliveryRequestQuery(caller, kernel.UUIDFrom(id))
	if err != nil {
		return err
	}

	view, err := s.h.GetDeliveryRequest.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDeliveryRequest(view, true))
}

// CancelDeliveryRequest handles POST /api/v1/delivery-requests/{id}/cancel.
func (s *Server) CancelDeliveryRequest(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryRequestCommand(caller, kernel.UUIDFrom(id))
	if err != nil {
		return err
	}

	request, err := s.h.CancelDeliveryRequest.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDeliveryRequest(queries.NewDeliveryRequestView(request, nil), false))
}

// AssignDriver handles POST /api/v1/delivery-requests/{id}/assignments.
func (s *Server) AssignDriver(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var body servers.AssignDriverJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewAssignDriverCommand(caller, kernel.UUIDFrom(id), kernel.UUIDFrom(body.DriverId))
	if err != nil {
		return err
	}

	asg, err := s.h.AssignDriver.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, toAssignment(queries.NewAssignmentView(asg)))
}

// AcceptAssignment handles POST /api/v1/assignments/{id}/accept.
func (s *Server) AcceptAssignment(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAcceptAssignmentCommand(caller, kernel.UUIDFrom(id))
	if err != nil {
		return err
	}

	asg, err := s.h.AcceptAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toAssignment(queries.NewAssignmentView(asg)))
}

// RejectAssignment handles POST /api/v1/assignments/{id}/reject.
func (s *Server) RejectAssignment(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var body servers.RejectAssignmentJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewRejectAssignmentCommand(caller, kernel.UUIDFrom(id), body.Reason)
	if err != nil {
		return err
	}

	asg, err := s.h.RejectAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toAssignment(queries.NewAssignmentView(asg)))
}

// CompleteAssignment handles POST /api/v1/assignments/{id}/complete.
func (s *Server) CompleteAssignment(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCompleteAssignmentCommand(caller, kernel.UUIDFrom(id))
	if err != nil {
		return err
	}

	request, err := s.h.CompleteAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toDeliveryRequest(queries.NewDeliveryRequestView(request, nil), false))
}

// CreatePayment handles POST /api/v1/delivery-requests/{id}/payments.
func (s *Server) CreatePayment(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var body servers.CreatePaymentJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewCreatePaymentCommand(caller, kernel.UUIDFrom(id), body.PaymentMethod, deref(body.Currency))
	if err != nil {
		return err
	}

	result, err := s.h.CreatePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.PaymentCreated{
		Payment:           toPayment(result.Payment),
		CheckoutReference: result.GatewayReference,
	})
}

// ReconcilePayment handles POST /api/v1/payments/{id}/reconcile. It is called
// by the gateway, which authenticates with a shared token instead of a JWT.
func (s *Server) ReconcilePayment(ctx echo.Context, id servers.Id, params servers.ReconcilePaymentParams) error {
	if !s.gatewayTokenMatches(params.XGatewayToken) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid gateway token")
	}

	var body servers.ReconcilePaymentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewReconcilePaymentCommand(kernel.UUIDFrom(id), body.Status, body.TransactionId)
	if err != nil {
		return err
	}

	p, err := s.h.ReconcilePayment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPayment(p))
}

// RecordTrackingPing handles POST /api/v1/delivery-requests/{id}/tracking.
func (s *Server) RecordTrackingPing(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	var body servers.RecordTrackingPingJSONRequestBody
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(err)
	}

	cmd, err := commands.NewRecordTrackingPingCommand(caller, kernel.UUIDFrom(id), body.Latitude, body.Longitude)
	if err != nil {
		return err
	}

	ping, err := s.h.RecordTrackingPing.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.TrackingPing{
		Id:         ping.ID().Bytes(),
		DriverId:   ping.DriverID().Bytes(),
		Latitude:   ping.Location().Latitude(),
		Longitude:  ping.Location().Longitude(),
		RecordedAt: ping.RecordedAt(),
	})
}

// GetTrackingHistory handles GET /api/v1/delivery-requests/{id}/tracking.
func (s *Server) GetTrackingHistory(ctx echo.Context, id servers.Id) error {
	caller, err := currentActor(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetTrackingHistoryQuery(caller, kernel.UUIDFrom(id))
	if err != nil {
		return err
	}

	pings, err := s.h.GetTrackingHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.TrackingPing, len(pings))
	for i, p := range pings {
		response[i] = servers.TrackingPing{
			Id:         p.ID.Bytes(),
			DriverId:   p.DriverID.Bytes(),
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			RecordedAt: p.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) gatewayTokenMatches(got *string) bool {
	if got == nil || len(s.gatewayToken) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*got), s.gatewayToken) == 1
}
