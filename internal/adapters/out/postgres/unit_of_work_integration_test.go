package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/pgtest"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory

	customer actor.Customer
	driver   actor.Driver
	now      time.Time
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB, nil)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Stop(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.customer = actor.NewCustomer(kernel.NewUUID())
	suite.driver = actor.NewDriver(kernel.NewUUID())
	suite.now = time.Now().UTC().Truncate(time.Microsecond)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.UserRepository().Save(context.Background(), suite.customer))
		suite.Require().NoError(uow.UserRepository().Save(context.Background(), suite.driver))
	})
}

func (suite *UnitOfWorkIntegrationTestSuite) inTx(fn func(uow ports.UnitOfWork)) {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	fn(uow)
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) newRequest(createdAt time.Time) *delivery.Request {
	pickupLoc, err := kernel.NewLocation(0, 0)
	suite.Require().NoError(err)
	dropoffLoc, err := kernel.NewLocation(0, 1)
	suite.Require().NoError(err)
	pickup, err := delivery.NewWaypoint("Warehouse 1", pickupLoc)
	suite.Require().NoError(err)
	dropoff, err := delivery.NewWaypoint("", dropoffLoc)
	suite.Require().NoError(err)

	r, err := delivery.NewRequest(kernel.NewUUID(), suite.customer.ID(), pickup, dropoff, "",
		services.NewPricingCalculator(), createdAt)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAllAggregates() {
	ctx := context.Background()
	req := suite.newRequest(suite.now)
	suite.Require().NoError(req.Assign(suite.now))
	asg, err := assignment.NewAssignment(kernel.NewUUID(), suite.driver.ID(), req.ID(), suite.now)
	suite.Require().NoError(err)
	price, err := req.PriceForPayment()
	suite.Require().NoError(err)
	pay, err := payment.NewPayment(kernel.NewUUID(), req.ID(), price, "", payment.MethodCard, suite.now)
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
		suite.Require().NoError(uow.AssignmentRepository().Add(ctx, asg))
		suite.Require().NoError(uow.PaymentRepository().Add(ctx, pay))
	})

	uow := suite.factory.Create()

	stored, err := uow.DeliveryRequestRepository().Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Assigned, stored.Status())
	suite.Equal("166.79", stored.Price().String())
	suite.InDelta(req.DistanceKm(), stored.DistanceKm(), 1e-9)
	suite.Equal("Warehouse 1", stored.Pickup().Address)
	suite.Equal(delivery.DefaultPackageType, stored.PackageType())
	suite.True(stored.CreatedAt().Equal(suite.now))

	history, err := uow.AssignmentRepository().ListByDeliveryRequest(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(assignment.Assigned, history[0].Status())

	storedPay, err := uow.PaymentRepository().Get(ctx, pay.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatusPending, storedPay.Status())
	suite.Equal(int64(16679), storedPay.Amount().Minor())
	suite.Equal("USD", storedPay.Currency())
	suite.Nil(storedPay.TransactionID())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	req := suite.newRequest(suite.now)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().DeliveryRequestRepository().Get(ctx, req.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTrackedAggregates() {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(suite.pg.DB, zap.New(core))

	req := suite.newRequest(suite.now)
	asg, err := assignment.NewAssignment(kernel.NewUUID(), suite.driver.ID(), req.ID(), suite.now)
	suite.Require().NoError(err)

	uow := factory.CreateGorm()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
	suite.Require().NoError(uow.AssignmentRepository().Add(ctx, asg))
	suite.Require().NoError(req.Assign(suite.now))
	suite.Require().NoError(uow.DeliveryRequestRepository().Update(ctx, req))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal([]kernel.UUID{req.ID(), asg.ID(), req.ID()}, uow.TrackedAggregates())

	committed := logs.FilterMessage("transaction committed").All()
	suite.Require().Len(committed, 1)
	suite.Equal("unit_of_work", committed[0].ContextMap()["component"])
	suite.Equal([]any{req.ID().String(), asg.ID().String(), req.ID().String()},
		committed[0].ContextMap()["aggregates"])

	// Nothing written in a rolled back transaction is reported.
	rolledBack := factory.CreateGorm()
	suite.Require().NoError(rolledBack.Begin(ctx))
	suite.Require().NoError(rolledBack.DeliveryRequestRepository().Add(ctx, suite.newRequest(suite.now)))
	suite.Require().NoError(rolledBack.Rollback(ctx))
	suite.Empty(rolledBack.TrackedAggregates())
	suite.Equal(1, logs.FilterMessage("transaction committed").Len())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackAfterCommit() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUpdate_RoundTripsTransitions() {
	ctx := context.Background()
	req := suite.newRequest(suite.now)
	asg, err := assignment.NewAssignment(kernel.NewUUID(), suite.driver.ID(), req.ID(), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(req.Assign(suite.now))

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
		suite.Require().NoError(uow.AssignmentRepository().Add(ctx, asg))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		a, err := uow.AssignmentRepository().GetForUpdate(ctx, asg.ID())
		suite.Require().NoError(err)
		r, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, req.ID())
		suite.Require().NoError(err)

		suite.Require().NoError(a.Reject("busy"))
		suite.Require().NoError(r.Release(suite.now.Add(time.Minute)))
		suite.Require().NoError(uow.AssignmentRepository().Update(ctx, a))
		suite.Require().NoError(uow.DeliveryRequestRepository().Update(ctx, r))
	})

	uow := suite.factory.Create()
	a, err := uow.AssignmentRepository().Get(ctx, asg.ID())
	suite.Require().NoError(err)
	suite.Equal(assignment.Rejected, a.Status())
	suite.Require().NotNil(a.RejectionReason())
	suite.Equal("busy", *a.RejectionReason())

	r, err := uow.DeliveryRequestRepository().Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Pending, r.Status())
	suite.True(r.UpdatedAt().Equal(suite.now.Add(time.Minute)))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestPaymentReconcile_RoundTrip() {
	ctx := context.Background()
	req := suite.newRequest(suite.now)
	price, err := req.PriceForPayment()
	suite.Require().NoError(err)
	pay, err := payment.NewPayment(kernel.NewUUID(), req.ID(), price, "eur", payment.MethodOnDelivery, suite.now)
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
		suite.Require().NoError(uow.PaymentRepository().Add(ctx, pay))
	})

	suite.inTx(func(uow ports.UnitOfWork) {
		p, err := uow.PaymentRepository().GetForUpdate(ctx, pay.ID())
		suite.Require().NoError(err)
		r, err := uow.DeliveryRequestRepository().GetForUpdate(ctx, req.ID())
		suite.Require().NoError(err)

		txID := "tx123"
		paid, err := p.Reconcile(payment.StatusSuccess, &txID)
		suite.Require().NoError(err)
		suite.True(paid)
		r.MarkPaid(suite.now)
		suite.Require().NoError(uow.PaymentRepository().Update(ctx, p))
		suite.Require().NoError(uow.DeliveryRequestRepository().Update(ctx, r))
	})

	uow := suite.factory.Create()
	p, err := uow.PaymentRepository().Get(ctx, pay.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatusSuccess, p.Status())
	suite.Equal("tx123", *p.TransactionID())
	suite.Equal("EUR", p.Currency())
	suite.Equal(payment.MethodOnDelivery, p.Method())

	r, err := uow.DeliveryRequestRepository().Get(ctx, req.ID())
	suite.Require().NoError(err)
	suite.True(r.IsPaid())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestGetFirstAssignable() {
	ctx := context.Background()

	suite.Nil(suite.firstAssignable())

	older := suite.newRequest(suite.now.Add(-time.Hour))
	newer := suite.newRequest(suite.now)
	cancelled := suite.newRequest(suite.now.Add(-2 * time.Hour))
	suite.Require().NoError(cancelled.Cancel(suite.now))

	suite.inTx(func(uow ports.UnitOfWork) {
		for _, r := range []*delivery.Request{newer, older, cancelled} {
			suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, r))
		}
	})

	first := suite.firstAssignable()
	suite.Require().NotNil(first)
	suite.Equal(older.ID(), first.ID())

	// A concurrent transaction holding the oldest row makes the next one visible.
	holder := suite.factory.Create()
	suite.Require().NoError(holder.Begin(ctx))
	locked, err := holder.DeliveryRequestRepository().GetFirstAssignable(ctx)
	suite.Require().NoError(err)
	suite.Equal(older.ID(), locked.ID())

	next := suite.firstAssignable()
	suite.Require().NotNil(next)
	suite.Equal(newer.ID(), next.ID())

	suite.Require().NoError(holder.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) firstAssignable() *delivery.Request {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	r, err := uow.DeliveryRequestRepository().GetFirstAssignable(ctx)
	suite.Require().NoError(err)
	return r
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTracking_OldestFirst() {
	ctx := context.Background()
	req := suite.newRequest(suite.now)
	loc, err := kernel.NewLocation(1.5, 2.5)
	suite.Require().NoError(err)

	p2, err := tracking.NewPing(kernel.NewUUID(), req.ID(), suite.driver.ID(), loc, suite.now.Add(time.Minute))
	suite.Require().NoError(err)
	p1, err := tracking.NewPing(kernel.NewUUID(), req.ID(), suite.driver.ID(), loc, suite.now)
	suite.Require().NoError(err)

	suite.inTx(func(uow ports.UnitOfWork) {
		suite.Require().NoError(uow.DeliveryRequestRepository().Add(ctx, req))
		suite.Require().NoError(uow.TrackingRepository().Add(ctx, p2))
		suite.Require().NoError(uow.TrackingRepository().Add(ctx, p1))
	})

	pings, err := suite.factory.Create().TrackingRepository().ListByDeliveryRequest(ctx, req.ID())
	suite.Require().NoError(err)
	suite.Require().Len(pings, 2)
	suite.Equal(p1.ID(), pings[0].ID())
	suite.Equal(p2.ID(), pings[1].ID())
	suite.InDelta(1.5, pings[0].Location().Latitude(), 1e-9)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestForeignKeys() {
	ctx := context.Background()
	orphan := suite.newRequest(suite.now)
	asg, err := assignment.NewAssignment(kernel.NewUUID(), suite.driver.ID(), orphan.ID(), suite.now)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	suite.Require().Error(uow.AssignmentRepository().Add(ctx, asg))
}
