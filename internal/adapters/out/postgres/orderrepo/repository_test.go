package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"quickbite/internal/adapters/out/postgres"
	"quickbite/internal/adapters/out/postgres/orderrepo"
	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"
	"quickbite/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type nopTracker struct{}

func (nopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	return db
}

func testRepo(t *testing.T) *orderrepo.GormOrderRepository {
	t.Helper()
	return orderrepo.NewGormOrderRepository(testDB(t), nopTracker{})
}

func buildOrder(t *testing.T, customerID string, method order.PaymentMethod, createdAt time.Time) *order.Order {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), "Masala Dosa", kernel.NewMoneyFromFloat(120), 2)
	require.NoError(t, err)

	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20250101-120500-"+kernel.NewUUID().String()[:4],
		customerID,
		[]order.LineItem{item},
		order.DeliveryAddress{Line: "5 MG Road, Bengaluru", Point: &point},
		method,
		kernel.NewMoneyFromFloat(30),
		kernel.NewMoneyFromFloat(7.2),
		kernel.NewMoneyFromFloat(12),
		"4821",
		createdAt,
	)
	require.NoError(t, err)
	return o
}

func TestGormOrderRepository_AddAndGet(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	o := buildOrder(t, "cust-42", order.PaymentMethodOnline, time.Now().UTC())

	require.NoError(t, repo.Add(ctx, o))

	restored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	assert.True(t, restored.ID().IsEqual(o.ID()))
	assert.Equal(t, o.Code(), restored.Code())
	assert.Equal(t, o.CustomerID(), restored.CustomerID())
	assert.Equal(t, o.Subtotal(), restored.Subtotal())
	assert.Equal(t, o.Total(), restored.Total())
	assert.Equal(t, order.StatusPending, restored.Status())
	assert.Equal(t, "4821", restored.DeliveryOtp())
	require.Len(t, restored.Items(), 1)
	assert.Equal(t, "Masala Dosa", restored.Items()[0].Name())
	assert.Equal(t, 2, restored.Items()[0].Quantity())
	require.NotNil(t, restored.Address().Point)
	assert.InDelta(t, 12.9716, restored.Address().Point.Latitude(), 1e-9)
}

func TestGormOrderRepository_GetMissing(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	_, err := repo.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormOrderRepository_UpdatePersistsTransition(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	o := buildOrder(t, "cust-42", order.PaymentMethodOnline, time.Now().UTC())
	require.NoError(t, repo.Add(ctx, o))

	loaded, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	require.NoError(t, loaded.ConfirmPayment("gw_order_1", "gw_payment_1", "sig", time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, loaded))

	restored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, restored.Status())
	assert.True(t, restored.IsPaid())
	assert.Equal(t, "gw_payment_1", restored.GatewayPaymentID())
	require.NotNil(t, restored.ConfirmedAt())
}

func TestGormOrderRepository_UpdateVersionConflict(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	o := buildOrder(t, "cust-42", order.PaymentMethodOnline, time.Now().UTC())
	require.NoError(t, repo.Add(ctx, o))

	first, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	second, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)

	require.NoError(t, first.ConfirmPayment("gw_order_1", "gw_payment_1", "sig", time.Now().UTC()))
	require.NoError(t, repo.Update(ctx, first))

	// The second copy was loaded at the old version; it must lose.
	require.NoError(t, second.Cancel(time.Now().UTC()))
	err = repo.Update(ctx, second)
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)

	restored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusConfirmed, restored.Status())
}

func TestGormOrderRepository_GetByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	now := time.Now().UTC()

	older := buildOrder(t, "cust-42", order.PaymentMethodOnline, now.Add(-2*time.Hour))
	newer := buildOrder(t, "cust-42", order.PaymentMethodCashOnDelivery, now)
	other := buildOrder(t, "cust-99", order.PaymentMethodOnline, now)
	require.NoError(t, repo.Add(ctx, older))
	require.NoError(t, repo.Add(ctx, newer))
	require.NoError(t, repo.Add(ctx, other))

	orders, err := repo.GetByCustomer(ctx, "cust-42")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.True(t, orders[0].ID().IsEqual(newer.ID()))
	assert.True(t, orders[1].ID().IsEqual(older.ID()))
}

func TestGormOrderRepository_GetStalePending(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	now := time.Now().UTC()

	stale := buildOrder(t, "cust-1", order.PaymentMethodOnline, now.Add(-time.Hour))
	fresh := buildOrder(t, "cust-2", order.PaymentMethodOnline, now)
	cod := buildOrder(t, "cust-3", order.PaymentMethodCashOnDelivery, now.Add(-time.Hour))
	require.NoError(t, repo.Add(ctx, stale))
	require.NoError(t, repo.Add(ctx, fresh))
	require.NoError(t, repo.Add(ctx, cod))

	found, err := repo.GetStalePending(ctx, now.Add(-30*time.Minute))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].ID().IsEqual(stale.ID()))
}

func TestGormOrderRepository_GetAllInStatus(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	now := time.Now().UTC()

	pending := buildOrder(t, "cust-1", order.PaymentMethodOnline, now)
	confirmed := buildOrder(t, "cust-2", order.PaymentMethodCashOnDelivery, now)
	require.NoError(t, repo.Add(ctx, pending))
	require.NoError(t, repo.Add(ctx, confirmed))

	found, err := repo.GetAllInStatus(ctx, order.StatusConfirmed)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.True(t, found[0].ID().IsEqual(confirmed.ID()))
}
