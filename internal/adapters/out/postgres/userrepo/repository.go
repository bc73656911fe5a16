// Package userrepo keeps the directory of users seen through the identity
// provider and answers driver availability questions.
package userrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserDTO) TableName() string {
	return "users"
}

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).Take(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	role, err := actor.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}
	return actor.New(id, role)
}

// Save inserts the user, or updates the role when the identity provider
// reports a different one.
func (r *GormUserRepository) Save(ctx context.Context, user actor.Actor) error {
	if user == nil {
		return errs.NewValueIsRequiredError("user")
	}
	if err := user.ID().Validate(); err != nil {
		return err
	}

	dto := UserDTO{
		ID:   user.ID().Bytes(),
		Role: user.Role().String(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(&dto).Error
}

type driverRow struct {
	ID        uuid.UUID
	Latitude  *float64
	Longitude *float64
}

// ListAvailableDrivers returns drivers with no ASSIGNED assignment and no
// ACCEPTED assignment on an IN_PROGRESS request, minus those who rejected
// excludeRejectedFor. Results are ordered by id.
func (r *GormUserRepository) ListAvailableDrivers(
	ctx context.Context,
	excludeRejectedFor kernel.UUID,
) ([]services.DriverCandidate, error) {
	if err := excludeRejectedFor.Validate(); err != nil {
		return nil, err
	}

	var rows []driverRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT u.id, last_ping.latitude, last_ping.longitude
		FROM users u
		LEFT JOIN LATERAL (
			SELECT tp.latitude, tp.longitude
			FROM tracking_pings tp
			WHERE tp.driver_id = u.id
			ORDER BY tp.recorded_at DESC
			LIMIT 1
		) last_ping ON TRUE
		WHERE u.role = @driver
		  AND NOT EXISTS (
			SELECT 1
			FROM assignments a
			JOIN delivery_requests dr ON dr.id = a.delivery_request_id
			WHERE a.driver_id = u.id
			  AND (a.status = @assigned OR (a.status = @accepted AND dr.status = @inProgress))
		  )
		  AND NOT EXISTS (
			SELECT 1
			FROM assignments a
			WHERE a.driver_id = u.id
			  AND a.delivery_request_id = @request
			  AND a.status = @rejected
		  )
		ORDER BY u.id
	`, map[string]any{
		"driver":     actor.RoleDriver.String(),
		"assigned":   assignment.Assigned.String(),
		"accepted":   assignment.Accepted.String(),
		"rejected":   assignment.Rejected.String(),
		"inProgress": delivery.InProgress.String(),
		"request":    excludeRejectedFor.Bytes(),
	}).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]services.DriverCandidate, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}

		c := services.DriverCandidate{ID: id}
		if row.Latitude != nil && row.Longitude != nil {
			loc, locErr := kernel.NewLocation(*row.Latitude, *row.Longitude)
			if locErr != nil {
				return nil, locErr
			}
			c.LastKnown = &loc
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}
