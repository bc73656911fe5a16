package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRequestRepository)
}

func (m *MockUoW) AssignmentRepository() ports.AssignmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AssignmentRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDeliveryRequestRepository struct{ mock.Mock }

func (m *MockDeliveryRequestRepository) Add(ctx context.Context, r *delivery.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRequestRepository) Update(ctx context.Context, r *delivery.Request) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockDeliveryRequestRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Request), args.Error(1)
}

func (m *MockDeliveryRequestRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Request), args.Error(1)
}

func (m *MockDeliveryRequestRepository) GetFirstAssignable(ctx context.Context) (*delivery.Request, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Request), args.Error(1)
}

type MockAssignmentRepository struct{ mock.Mock }

func (m *MockAssignmentRepository) Add(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAssignmentRepository) Get(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Assignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByDeliveryRequest(
	ctx context.Context,
	id kernel.UUID,
) ([]*assignment.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*assignment.Assignment), args.Error(1)
}

func newPendingRequest(t *testing.T) *delivery.Request {
	t.Helper()
	pickupLoc, err := kernel.NewLocation(0, 0)
	require.NoError(t, err)
	dropoffLoc, err := kernel.NewLocation(0, 1)
	require.NoError(t, err)
	pickup, err := delivery.NewWaypoint("A", pickupLoc)
	require.NoError(t, err)
	dropoff, err := delivery.NewWaypoint("B", dropoffLoc)
	require.NoError(t, err)

	r, err := delivery.NewRequest(kernel.NewUUID(), kernel.NewUUID(), pickup, dropoff, "",
		services.NewPricingCalculator(), time.Now())
	require.NoError(t, err)
	return r
}

func TestAcceptAssignmentCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewAcceptAssignmentCommandHandler(factory, &recordingNotifier{}, nil)

	_, err := handler.Handle(t.Context(), commands.AcceptAssignmentCommand{})

	require.ErrorIs(t, err, commands.ErrAcceptAssignmentCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptAssignmentCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAcceptAssignmentCommand(actor.NewDriver(kernel.NewUUID()), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewAcceptAssignmentCommandHandler(factory, &recordingNotifier{}, nil)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAcceptAssignmentCommandHandler_Handle_CommitErrorSkipsNotification(t *testing.T) {
	ctx := t.Context()
	driver := actor.NewDriver(kernel.NewUUID())
	request := newPendingRequest(t)
	require.NoError(t, request.Assign(time.Now()))
	asg, err := assignment.NewAssignment(kernel.NewUUID(), driver.ID(), request.ID(), time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewAcceptAssignmentCommand(driver, asg.ID())
	require.NoError(t, err)

	requestRepo := new(MockDeliveryRequestRepository)
	assignmentRepo := new(MockAssignmentRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	uow.On("AssignmentRepository").Return(assignmentRepo)
	uow.On("DeliveryRequestRepository").Return(requestRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		assignmentRepo.On("GetForUpdate", ctx, asg.ID()).Return(asg, nil).Once(),
		requestRepo.On("GetForUpdate", ctx, request.ID()).Return(request, nil).Once(),
		assignmentRepo.On("Update", ctx, mock.AnythingOfType("*assignment.Assignment")).Return(nil).Once(),
		requestRepo.On("Update", ctx, mock.AnythingOfType("*delivery.Request")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	notifier := &recordingNotifier{}
	handler := commands.NewAcceptAssignmentCommandHandler(factory, notifier, nil)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.Zero(t, notifier.count())
	uow.AssertExpectations(t)
	assignmentRepo.AssertExpectations(t)
	requestRepo.AssertExpectations(t)
}

func TestAssignDriverCommandHandler_Handle_AuthorizationBeforeTransaction(t *testing.T) {
	cmd, err := commands.NewAssignDriverCommand(actor.NewCustomer(kernel.NewUUID()), kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	factory := new(MockUoWFactory)
	handler := commands.NewAssignDriverCommandHandler(factory, &recordingNotifier{}, nil)
	_, err = handler.Handle(t.Context(), cmd)

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

func TestAutoAssignDriverCommandHandler_Handle_LookupError(t *testing.T) {
	ctx := t.Context()

	requestRepo := new(MockDeliveryRequestRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	uow.On("DeliveryRequestRepository").Return(requestRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		requestRepo.On("GetFirstAssignable", ctx).Return(nil, errors.New("database error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewAutoAssignDriverCommandHandler(factory, &recordingNotifier{}, nil)
	_, err := handler.Handle(ctx, commands.NewAutoAssignDriverCommand())

	require.EqualError(t, err, "database error")
	uow.AssertExpectations(t)
}
