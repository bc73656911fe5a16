package servers

import (
	"fmt"
	"net/http"

	"marketplace/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Assign a driver
	// (POST /api/v1/delivery-requests/{id}/assignments)
	AssignDriver(ctx echo.Context, id Id) error
	// Accept an assignment
	// (POST /api/v1/assignments/{id}/accept)
	AcceptAssignment(ctx echo.Context, id Id) error
	// Reject an assignment
	// (POST /api/v1/assignments/{id}/reject)
	RejectAssignment(ctx echo.Context, id Id) error
	// Complete the delivery of an accepted assignment
	// (POST /api/v1/assignments/{id}/complete)
	CompleteAssignment(ctx echo.Context, id Id) error
	// Create a delivery request
	// (POST /api/v1/delivery-requests)
	CreateDeliveryRequest(ctx echo.Context) error
	// Get a delivery request with its assignment history
	// (GET /api/v1/delivery-requests/{id})
	GetDeliveryRequest(ctx echo.Context, id Id) error
	// Cancel a pending delivery request
	// (POST /api/v1/delivery-requests/{id}/cancel)
	CancelDeliveryRequest(ctx echo.Context, id Id) error
	// Create a payment for a delivery request
	// (POST /api/v1/delivery-requests/{id}/payments)
	CreatePayment(ctx echo.Context, id Id) error
	// Payment gateway webhook
	// (POST /api/v1/payments/{id}/reconcile)
	ReconcilePayment(ctx echo.Context, id Id, params ReconcilePaymentParams) error
	// Tracking history, oldest first
	// (GET /api/v1/delivery-requests/{id}/tracking)
	GetTrackingHistory(ctx echo.Context, id Id) error
	// Record the current driver position
	// (POST /api/v1/delivery-requests/{id}/tracking)
	RecordTrackingPing(ctx echo.Context, id Id) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) withID(ctx echo.Context, fn func(echo.Context, Id) error) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	ctx.Set(BearerAuthScopes, []string{})
	return fn(ctx, id)
}

// AssignDriver converts echo context to params.
func (w *ServerInterfaceWrapper) AssignDriver(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.AssignDriver)
}

// AcceptAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptAssignment(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.AcceptAssignment)
}

// RejectAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) RejectAssignment(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.RejectAssignment)
}

// CompleteAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteAssignment(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.CompleteAssignment)
}

// CreateDeliveryRequest converts echo context to params.
func (w *ServerInterfaceWrapper) CreateDeliveryRequest(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})
	return w.Handler.CreateDeliveryRequest(ctx)
}

// GetDeliveryRequest converts echo context to params.
func (w *ServerInterfaceWrapper) GetDeliveryRequest(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.GetDeliveryRequest)
}

// CancelDeliveryRequest converts echo context to params.
func (w *ServerInterfaceWrapper) CancelDeliveryRequest(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.CancelDeliveryRequest)
}

// CreatePayment converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePayment(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.CreatePayment)
}

// ReconcilePayment converts echo context to params.
func (w *ServerInterfaceWrapper) ReconcilePayment(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var params ReconcilePaymentParams
	headers := ctx.Request().Header
	if valueList, found := headers[http.CanonicalHeaderKey("X-Gateway-Token")]; found {
		var XGatewayToken string
		if n := len(valueList); n != 1 {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Expected one value for X-Gateway-Token, got %d", n))
		}

		err = runtime.BindStyledParameterWithOptions("simple", "X-Gateway-Token", valueList[0], &XGatewayToken,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("Invalid format for parameter X-Gateway-Token: %s", err))
		}
		params.XGatewayToken = &XGatewayToken
	}

	return w.Handler.ReconcilePayment(ctx, id, params)
}

// GetTrackingHistory converts echo context to params.
func (w *ServerInterfaceWrapper) GetTrackingHistory(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.GetTrackingHistory)
}

// RecordTrackingPing converts echo context to params.
func (w *ServerInterfaceWrapper) RecordTrackingPing(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.RecordTrackingPing)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the
// paths, so that the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/assignments/:id/accept", wrapper.AcceptAssignment)
	router.POST(baseURL+"/api/v1/assignments/:id/complete", wrapper.CompleteAssignment)
	router.POST(baseURL+"/api/v1/assignments/:id/reject", wrapper.RejectAssignment)
	router.POST(baseURL+"/api/v1/delivery-requests", wrapper.CreateDeliveryRequest)
	router.GET(baseURL+"/api/v1/delivery-requests/:id", wrapper.GetDeliveryRequest)
	router.POST(baseURL+"/api/v1/delivery-requests/:id/assignments", wrapper.AssignDriver)
	router.POST(baseURL+"/api/v1/delivery-requests/:id/cancel", wrapper.CancelDeliveryRequest)
	router.POST(baseURL+"/api/v1/delivery-requests/:id/payments", wrapper.CreatePayment)
	router.GET(baseURL+"/api/v1/delivery-requests/:id/tracking", wrapper.GetTrackingHistory)
	router.POST(baseURL+"/api/v1/delivery-requests/:id/tracking", wrapper.RecordTrackingPing)
	router.POST(baseURL+"/api/v1/payments/:id/reconcile", wrapper.ReconcilePayment)
}

// GetSwagger returns the parsed OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return doc, nil
}
