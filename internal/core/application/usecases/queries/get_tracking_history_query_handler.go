package queries

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetTrackingHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetTrackingHistoryQueryHandler(db *gorm.DB) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{db: db}
}

// Handle returns the pings of a request oldest first. Visibility follows the
// request itself.
func (h GetTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingHistoryQuery,
) ([]TrackingPingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if _, _, err := loadVisible(ctx, h.db, query.actor, query.deliveryRequestID); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, driver_id, latitude, longitude, recorded_at
		FROM tracking_pings
		WHERE delivery_request_id = ?
		ORDER BY recorded_at, id
	`, query.deliveryRequestID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pings := make([]TrackingPingView, 0)
	for rows.Next() {
		var (
			id, driverID uuid.UUID
			view         TrackingPingView
			recordedAt   time.Time
		)
		if err = rows.Scan(&id, &driverID, &view.Latitude, &view.Longitude, &recordedAt); err != nil {
			return nil, err
		}

		pingID, idErr := kernel.UUIDFromBytes(id[:])
		drvID, drvErr := kernel.UUIDFromBytes(driverID[:])
		if err = errors.Join(idErr, drvErr); err != nil {
			return nil, err
		}
		view.ID = pingID
		view.DriverID = drvID
		view.RecordedAt = recordedAt.UTC()
		pings = append(pings, view)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pings, nil
}
