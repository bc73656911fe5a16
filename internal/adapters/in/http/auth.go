package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

const actorContextKey = "actor"

var ErrInvalidToken = errors.New("invalid token")

// Claims are issued by the identity provider. Subject carries the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ActorSyncer records an authenticated caller in the user directory.
type ActorSyncer interface {
	Handle(ctx context.Context, cmd commands.SyncActorCommand) error
}

// Authenticator verifies HS256 bearer tokens and turns them into actors.
type Authenticator struct {
	secret []byte
	syncer ActorSyncer
	logger *zap.Logger
}

func NewAuthenticator(secret string, syncer ActorSyncer, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		syncer: syncer,
		logger: logger.With(zap.String("component", "authenticator")),
	}
}

// Authenticate parses a raw token. Every failure wraps ErrInvalidToken.
func (a *Authenticator) Authenticate(raw string) (actor.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := kernel.ParseID("sub", claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	role, err := actor.RoleFromString(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return actor.New(id, role)
}

// Middleware rejects requests without a valid bearer token with 401 and
// stores the caller in the echo context.
func (a *Authenticator) Middleware(skipper middleware.Skipper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(raw) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			caller, err := a.Authenticate(strings.TrimSpace(raw))
			if err != nil {
				a.logger.Debug("token rejected", zap.Error(err))
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid bearer token").SetInternal(err)
			}

			cmd, err := commands.NewSyncActorCommand(caller)
			if err != nil {
				return err
			}
			if err = a.syncer.Handle(c.Request().Context(), cmd); err != nil {
				return fmt.Errorf("failed to sync caller: %w", err)
			}

			c.Set(actorContextKey, caller)
			return next(c)
		}
	}
}

func currentActor(c echo.Context) (actor.Actor, error) {
	caller, ok := c.Get(actorContextKey).(actor.Actor)
	if !ok || caller == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
	}
	return caller, nil
}
