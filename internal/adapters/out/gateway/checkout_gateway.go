// Package gateway adapts the external payment provider.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/pkg/errs"

	"go.uber.org/zap"
)

// CheckoutGateway hands out hosted checkout links. The provider reports the
// outcome back through the reconcile webhook.
type CheckoutGateway struct {
	baseURL string
	logger  *zap.Logger
}

func NewCheckoutGateway(baseURL string, logger *zap.Logger) (*CheckoutGateway, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("gateway base url", err)
	}
	return &CheckoutGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(zap.String("component", "checkout_gateway")),
	}, nil
}

func (g *CheckoutGateway) Initiate(ctx context.Context, p *payment.Payment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	ref := fmt.Sprintf("%s/checkout/%s", g.baseURL, p.ID())
	g.logger.Info("checkout initiated",
		zap.String("payment_id", p.ID().String()),
		zap.String("method", p.Method().String()),
		zap.String("amount", p.Amount().String()),
	)
	return ref, nil
}
