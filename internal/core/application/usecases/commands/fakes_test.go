package commands_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/actor"
	"marketplace/internal/core/domain/model/assignment"
	"marketplace/internal/core/domain/model/delivery"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/tracking"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memState is a committed snapshot. Aggregates are copied on every read and
// write so a handler can never modify committed data outside Commit.
type memState struct {
	requests    map[string]*delivery.Request
	assignments map[string]*assignment.Assignment
	payments    map[string]*payment.Payment
	pings       []*tracking.Ping
	users       map[string]actor.Actor
	locations   map[string]kernel.Location
}

func newMemState() memState {
	return memState{
		requests:    map[string]*delivery.Request{},
		assignments: map[string]*assignment.Assignment{},
		payments:    map[string]*payment.Payment{},
		users:       map[string]actor.Actor{},
		locations:   map[string]kernel.Location{},
	}
}

func (s memState) clone() memState {
	c := newMemState()
	for k, v := range s.requests {
		c.requests[k] = cloneRequest(v)
	}
	for k, v := range s.assignments {
		c.assignments[k] = cloneAssignment(v)
	}
	for k, v := range s.payments {
		c.payments[k] = clonePayment(v)
	}
	c.pings = slices.Clone(s.pings)
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	return c
}

func cloneRequest(r *delivery.Request) *delivery.Request {
	var price *kernel.Money
	if r.Price() != nil {
		p := *r.Price()
		price = &p
	}
	c, err := delivery.RestoreRequest(r.ID(), r.CustomerID(), r.Pickup(), r.Dropoff(), r.DistanceKm(),
		price, r.IsPaid(), r.Status(), r.PackageType(), r.CreatedAt(), r.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func cloneAssignment(a *assignment.Assignment) *assignment.Assignment {
	c, err := assignment.RestoreAssignment(a.ID(), a.DriverID(), a.DeliveryRequestID(),
		a.AssignedAt(), a.Status(), a.RejectionReason())
	if err != nil {
		panic(err)
	}
	return c
}

func clonePayment(p *payment.Payment) *payment.Payment {
	c, err := payment.RestorePayment(p.ID(), p.DeliveryRequestID(), p.Amount(), p.Currency(),
		p.Method(), p.TransactionID(), p.Status(), p.CreatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

// memDB is an in-memory stand-in for the postgres unit of work. Units of work
// are serialized by a single mutex held from Begin to Commit or Rollback.
type memDB struct {
	txLock    sync.Mutex
	mu        sync.Mutex
	committed memState
	commits   int
}

func newMemDB() *memDB {
	return &memDB{committed: newMemState()}
}

func (db *memDB) Create() commands.UoW {
	return &memUoW{db: db}
}

func (db *memDB) snapshot() memState {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.committed.clone()
}

func (db *memDB) request(t *testing.T, id kernel.UUID) *delivery.Request {
	t.Helper()
	r, ok := db.snapshot().requests[id.String()]
	require.True(t, ok, "request %s not stored", id)
	return r
}

func (db *memDB) assignment(t *testing.T, id kernel.UUID) *assignment.Assignment {
	t.Helper()
	a, ok := db.snapshot().assignments[id.String()]
	require.True(t, ok, "assignment %s not stored", id)
	return a
}

func (db *memDB) payment(t *testing.T, id kernel.UUID) *payment.Payment {
	t.Helper()
	p, ok := db.snapshot().payments[id.String()]
	require.True(t, ok, "payment %s not stored", id)
	return p
}

func (db *memDB) addUser(a actor.Actor) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.committed.users[a.ID().String()] = a
}

func (db *memDB) setLocation(driverID kernel.UUID, loc kernel.Location) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.committed.locations[driverID.String()] = loc
}

type memUoW struct {
	db     *memDB
	state  *memState
	active bool
}

func (u *memUoW) Begin(_ context.Context) error {
	if u.active {
		return errors.New("transaction already started")
	}
	u.db.txLock.Lock()
	s := u.db.snapshot()
	u.state = &s
	u.active = true
	return nil
}

func (u *memUoW) Commit(_ context.Context) error {
	if !u.active {
		return errors.New("no active transaction")
	}
	u.db.mu.Lock()
	u.db.committed = u.state.clone()
	u.db.commits++
	u.db.mu.Unlock()
	u.end()
	return nil
}

func (u *memUoW) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}
	u.end()
	return nil
}

func (u *memUoW) end() {
	u.active = false
	u.state = nil
	u.db.txLock.Unlock()
}

func (u *memUoW) DeliveryRequestRepository() ports.DeliveryRequestRepository {
	return memRequests{u}
}

func (u *memUoW) AssignmentRepository() ports.AssignmentRepository {
	return memAssignments{u}
}

func (u *memUoW) PaymentRepository() ports.PaymentRepository {
	return memPayments{u}
}

func (u *memUoW) TrackingRepository() ports.TrackingRepository {
	return memTracking{u}
}

func (u *memUoW) UserRepository() ports.UserRepository {
	return memUsers{u}
}

type memRequests struct{ u *memUoW }

func (r memRequests) Add(_ context.Context, aggregate *delivery.Request) error {
	r.u.state.requests[aggregate.ID().String()] = cloneRequest(aggregate)
	return nil
}

func (r memRequests) Update(_ context.Context, aggregate *delivery.Request) error {
	if _, ok := r.u.state.requests[aggregate.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("delivery_request_id", aggregate.ID())
	}
	r.u.state.requests[aggregate.ID().String()] = cloneRequest(aggregate)
	return nil
}

func (r memRequests) Get(_ context.Context, id kernel.UUID) (*delivery.Request, error) {
	v, ok := r.u.state.requests[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery_request_id", id)
	}
	return cloneRequest(v), nil
}

func (r memRequests) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Request, error) {
	return r.Get(ctx, id)
}

func (r memRequests) GetFirstAssignable(_ context.Context) (*delivery.Request, error) {
	var oldest *delivery.Request
	for _, v := range r.u.state.requests {
		if v.Status() != delivery.Pending {
			continue
		}
		if oldest == nil || v.CreatedAt().Before(oldest.CreatedAt()) {
			oldest = v
		}
	}
	if oldest == nil {
		return nil, nil
	}
	return cloneRequest(oldest), nil
}

type memAssignments struct{ u *memUoW }

func (r memAssignments) Add(_ context.Context, aggregate *assignment.Assignment) error {
	r.u.state.assignments[aggregate.ID().String()] = cloneAssignment(aggregate)
	return nil
}

func (r memAssignments) Update(_ context.Context, aggregate *assignment.Assignment) error {
	if _, ok := r.u.state.assignments[aggregate.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("assignment_id", aggregate.ID())
	}
	r.u.state.assignments[aggregate.ID().String()] = cloneAssignment(aggregate)
	return nil
}

func (r memAssignments) Get(_ context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	v, ok := r.u.state.assignments[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("assignment_id", id)
	}
	return cloneAssignment(v), nil
}

func (r memAssignments) GetForUpdate(ctx context.Context, id kernel.UUID) (*assignment.Assignment, error) {
	return r.Get(ctx, id)
}

func (r memAssignments) ListByDeliveryRequest(_ context.Context, id kernel.UUID) ([]*assignment.Assignment, error) {
	var out []*assignment.Assignment
	for _, v := range r.u.state.assignments {
		if v.DeliveryRequestID().IsEqual(id) {
			out = append(out, cloneAssignment(v))
		}
	}
	slices.SortFunc(out, func(a, b *assignment.Assignment) int {
		return a.AssignedAt().Compare(b.AssignedAt())
	})
	return out, nil
}

type memPayments struct{ u *memUoW }

func (r memPayments) Add(_ context.Context, aggregate *payment.Payment) error {
	r.u.state.payments[aggregate.ID().String()] = clonePayment(aggregate)
	return nil
}

func (r memPayments) Update(_ context.Context, aggregate *payment.Payment) error {
	if _, ok := r.u.state.payments[aggregate.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("payment_id", aggregate.ID())
	}
	r.u.state.payments[aggregate.ID().String()] = clonePayment(aggregate)
	return nil
}

func (r memPayments) Get(_ context.Context, id kernel.UUID) (*payment.Payment, error) {
	v, ok := r.u.state.payments[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("payment_id", id)
	}
	return clonePayment(v), nil
}

func (r memPayments) GetForUpdate(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	return r.Get(ctx, id)
}

type memTracking struct{ u *memUoW }

func (r memTracking) Add(_ context.Context, ping *tracking.Ping) error {
	r.u.state.pings = append(r.u.state.pings, ping)
	return nil
}

func (r memTracking) ListByDeliveryRequest(_ context.Context, id kernel.UUID) ([]*tracking.Ping, error) {
	var out []*tracking.Ping
	for _, p := range r.u.state.pings {
		if p.DeliveryRequestID().IsEqual(id) {
			out = append(out, p)
		}
	}
	return out, nil
}

type memUsers struct{ u *memUoW }

func (r memUsers) Get(_ context.Context, id kernel.UUID) (actor.Actor, error) {
	v, ok := r.u.state.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user_id", id)
	}
	return v, nil
}

func (r memUsers) Save(_ context.Context, user actor.Actor) error {
	r.u.state.users[user.ID().String()] = user
	return nil
}

func (r memUsers) ListAvailableDrivers(_ context.Context, excludeRejectedFor kernel.UUID) ([]services.DriverCandidate, error) {
	busy := map[string]bool{}
	for _, a := range r.u.state.assignments {
		switch {
		case a.Status() == assignment.Rejected && a.DeliveryRequestID().IsEqual(excludeRejectedFor):
			busy[a.DriverID().String()] = true
		case a.Status() == assignment.Assigned:
			busy[a.DriverID().String()] = true
		case a.Status() == assignment.Accepted:
			if req, ok := r.u.state.requests[a.DeliveryRequestID().String()]; ok && req.Status() == delivery.InProgress {
				busy[a.DriverID().String()] = true
			}
		}
	}

	var out []services.DriverCandidate
	for key, u := range r.u.state.users {
		if _, ok := u.(actor.Driver); !ok || busy[key] {
			continue
		}
		c := services.DriverCandidate{ID: u.ID()}
		if loc, ok := r.u.state.locations[key]; ok {
			c.LastKnown = &loc
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b services.DriverCandidate) int {
		switch {
		case a.ID.String() < b.ID.String():
			return -1
		case a.ID.String() > b.ID.String():
			return 1
		}
		return 0
	})
	return out, nil
}

type notification struct {
	Recipient kernel.UUID
	Message   string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(_ context.Context, recipient kernel.UUID, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{Recipient: recipient, Message: message})
}

func (n *recordingNotifier) to(recipient kernel.UUID) []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []string
	for _, s := range n.sent {
		if s.Recipient.IsEqual(recipient) {
			out = append(out, s.Message)
		}
	}
	return out
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type stubGateway struct {
	ref   string
	err   error
	calls int
}

func (g *stubGateway) Initiate(_ context.Context, p *payment.Payment) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.ref + p.ID().String(), nil
}

func fixedClock() commands.Clock {
	var mu sync.Mutex
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func ptr[T any](v T) *T {
	return &v
}
