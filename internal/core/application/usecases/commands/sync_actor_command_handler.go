package commands

import (
	"context"
)

type SyncActorCommandHandler struct {
	uowFactory UoWFactory
}

func NewSyncActorCommandHandler(uowFactory UoWFactory) SyncActorCommandHandler {
	return SyncActorCommandHandler{uowFactory: uowFactory}
}

func (h SyncActorCommandHandler) Handle(ctx context.Context, cmd SyncActorCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.UserRepository().Save(ctx, cmd.Actor()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
