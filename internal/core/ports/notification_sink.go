package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// NotificationSink delivers a message to a user on a best-effort basis. It
// must not block the caller and reports no error: failures are the sink's
// own business.
type NotificationSink interface {
	Notify(ctx context.Context, recipient kernel.UUID, message string)
}
