package queries

import (
	"context"

	"marketplace/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

type CountDeliveryRequestsByStatusQueryHandler struct {
	db *gorm.DB
}

func NewCountDeliveryRequestsByStatusQueryHandler(db *gorm.DB) CountDeliveryRequestsByStatusQueryHandler {
	return CountDeliveryRequestsByStatusQueryHandler{db: db}
}

// Handle returns a count for every known status, zero included.
func (h CountDeliveryRequestsByStatusQueryHandler) Handle(
	ctx context.Context,
	query CountDeliveryRequestsByStatusQuery,
) (map[delivery.Status]int64, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Total  int64
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS total
		FROM delivery_requests
		GROUP BY status
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[delivery.Status]int64, len(delivery.Statuses()))
	for _, s := range delivery.Statuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		s, err := delivery.StatusFromString(row.Status)
		if err != nil {
			return nil, err
		}
		counts[s] = row.Total
	}

	return counts, nil
}
