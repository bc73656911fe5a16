package http

import (
	"net/http"
	"strings"
	"sync"

	"marketplace/internal/generated/servers"
	"marketplace/internal/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

const (
	apiPrefix      = "/api/v1/"
	reconcileRoute = "/api/v1/payments/:id/reconcile"
)

type RouterConfig struct {
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	Debug    bool
}

// NewRouter wires the API, health, metrics and swagger endpoints.
//
// Middleware order: panic recovery, observability, bearer authentication
// (skipped for everything outside /api/v1 and for the gateway webhook),
// OpenAPI request validation.
func NewRouter(server servers.ServerInterface, auth *Authenticator, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(cfg.Logger)
	if cfg.Debug {
		e.Logger.SetLevel(log.DEBUG)
	} else {
		e.Logger.SetLevel(log.WARN)
	}

	validatorDoc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := OpenAPIValidator(validatorDoc)
	if err != nil {
		return nil, err
	}

	swaggerDoc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	if err = RegisterSwagger(swaggerDoc); err != nil {
		return nil, err
	}

	e.Use(middleware.Recover())
	e.Use(Observability(cfg.Metrics, cfg.Logger))
	e.Use(auth.Middleware(publicRoute))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)

	return e, nil
}

func publicRoute(c echo.Context) bool {
	return c.Path() == reconcileRoute || !strings.HasPrefix(c.Request().URL.Path, apiPrefix)
}

type swaggerDoc string

func (d swaggerDoc) ReadDoc() string {
	return string(d)
}

var swaggerOnce sync.Once

// RegisterSwagger publishes doc to the swag registry read by echo-swagger.
// Only the first call has an effect.
func RegisterSwagger(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return err
	}
	swaggerOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc(data))
	})
	return nil
}
