package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"quickbite/internal/core/application/usecases/commands"
	"quickbite/internal/core/domain/model/agent"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/core/domain/services"
	"quickbite/internal/core/ports"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetStalePending(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) Add(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *agent.DeliveryAgent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) GetByPhone(ctx context.Context, phone string) (*agent.DeliveryAgent, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.DeliveryAgent), args.Error(1)
}

func (m *MockAgentRepository) AddEarning(ctx context.Context, e agent.Earning) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockUoW satisfies OrderUoW, AgentUoW, and the cross-aggregate UoW.
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AgentRepository() ports.AgentRepository {
	args := m.Called()
	return args.Get(0).(ports.AgentRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAgentUoWFactory struct{ mock.Mock }

func (m *MockAgentUoWFactory) Create() commands.AgentUoW {
	args := m.Called()
	return args.Get(0).(commands.AgentUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// recordingNotifier collects published notifications for assertions.
type recordingNotifier struct {
	mu        sync.Mutex
	published []ports.Notification
}

func (n *recordingNotifier) Publish(_ context.Context, notification ports.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, notification)
}

func (n *recordingNotifier) all() []ports.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.published...)
}

// stubMenu serves a fixed set of menu items.
type stubMenu struct {
	items map[kernel.UUID]ports.MenuItem
}

func (s stubMenu) Item(_ context.Context, id kernel.UUID) (ports.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return ports.MenuItem{}, errs.NewObjectNotFoundError("menuItemID", id.String())
	}
	return item, nil
}

// stubSettings returns the same snapshot on every call.
type stubSettings struct {
	settings services.DeliverySettings
}

func (s stubSettings) Current() services.DeliverySettings {
	return s.settings
}

// stubVerifier accepts or rejects every signature and counts how many
// times it was consulted.
type stubVerifier struct {
	err   error
	calls int
}

func (s *stubVerifier) Verify(_, _, _ string) error {
	s.calls++
	return s.err
}

func testDeliverySettings(t *testing.T) services.DeliverySettings {
	t.Helper()
	restaurant, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)
	return services.DeliverySettings{
		Restaurant:         restaurant,
		MaxRadiusKm:        10,
		BaseCharge:         kernel.NewMoneyFromFloat(20),
		PerKmCharge:        kernel.NewMoneyFromFloat(10),
		PlatformFeePercent: 3,
		GSTPercent:         5,
	}
}

func testDeliveryAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	// ~3 km due north of the test restaurant.
	point, err := kernel.NewGeoPoint(12.9716+3.0/111.195, 77.5946)
	require.NoError(t, err)
	return order.DeliveryAddress{Line: "22 Residency Road, Bengaluru", Point: &point}
}

func testLineItems(t *testing.T) []order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Margherita Pizza", kernel.NewMoneyFromFloat(250), 2)
	require.NoError(t, err)
	return []order.LineItem{item}
}

// newTestOrder builds a fresh order for the given payment method: pending
// for online, confirmed for cash on delivery. The OTP is always "4821".
func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20250101-120500-0042",
		"cust-42",
		testLineItems(t),
		testDeliveryAddress(t),
		method,
		kernel.NewMoneyFromFloat(40),
		kernel.NewMoneyFromFloat(15),
		kernel.NewMoneyFromFloat(25),
		"4821",
		time.Date(2025, 1, 1, 12, 5, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

// newOrderWithoutOtp restores a confirmed order persisted before delivery
// codes were stored, so no OTP is present.
func newOrderWithoutOtp(t *testing.T) *order.Order {
	t.Helper()
	created := time.Date(2025, 1, 1, 12, 5, 0, 0, time.UTC)
	confirmed := created
	o, err := order.RestoreOrder(order.RestoreOrderProps{
		ID:             kernel.NewUUID(),
		Code:           "ORD-20250101-120500-0042",
		CustomerID:     "cust-42",
		Items:          testLineItems(t),
		Address:        testDeliveryAddress(t),
		Subtotal:       kernel.NewMoneyFromFloat(500),
		DeliveryCharge: kernel.NewMoneyFromFloat(40),
		PlatformFee:    kernel.NewMoneyFromFloat(15),
		GST:            kernel.NewMoneyFromFloat(25),
		Total:          kernel.NewMoneyFromFloat(580),
		PaymentMethod:  order.PaymentMethodCashOnDelivery,
		Status:         order.StatusConfirmed,
		ETA:            created.Add(40 * time.Minute),
		ConfirmedAt:    &confirmed,
		CreatedAt:      created,
		Version:        1,
	})
	require.NoError(t, err)
	return o
}

// newDispatchedOrder builds a confirmed order already out for delivery with
// the given agent assigned.
func newDispatchedOrder(t *testing.T, courier *agent.DeliveryAgent) *order.Order {
	t.Helper()
	o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
	snapshot := order.CourierSnapshot{AgentID: courier.ID(), Name: courier.Name(), Phone: courier.Phone()}
	require.NoError(t, o.AssignCourier(snapshot, time.Date(2025, 1, 1, 12, 20, 0, 0, time.UTC)))
	return o
}

func newOnlineAgent(t *testing.T) *agent.DeliveryAgent {
	t.Helper()
	a, err := agent.NewDeliveryAgent(kernel.NewUUID(), "Ravi Kumar", "+919876543210", "bike")
	require.NoError(t, err)
	a.SetOnline(true)
	return a
}
