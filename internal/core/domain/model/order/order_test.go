package order_test

import (
	"testing"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems(t *testing.T) []order.LineItem {
	t.Helper()
	margherita, err := order.NewLineItem(kernel.NewUUID(), "Margherita Pizza", kernel.NewMoneyFromFloat(200), 2)
	require.NoError(t, err)
	coke, err := order.NewLineItem(kernel.NewUUID(), "Coke 500ml", kernel.NewMoneyFromFloat(50), 2)
	require.NoError(t, err)
	return []order.LineItem{margherita, coke}
}

func testAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	point, err := kernel.NewGeoPoint(12.9352, 77.6245)
	require.NoError(t, err)
	return order.DeliveryAddress{Line: "14 MG Road, Bengaluru", Point: &point}
}

func newTestOrder(t *testing.T, method order.PaymentMethod) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20250101-1234",
		"customer-1",
		testItems(t),
		testAddress(t),
		method,
		kernel.NewMoneyFromFloat(40),
		kernel.NewMoneyFromFloat(15),
		kernel.NewMoneyFromFloat(25),
		"4821",
		time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func testSnapshot() order.CourierSnapshot {
	return order.CourierSnapshot{AgentID: kernel.NewUUID(), Name: "Ravi", Phone: "+919800000001"}
}

func TestNewOrder(t *testing.T) {
	t.Run("derives subtotal and total from items and charges", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)

		// 2x200 + 2x50 = 500
		assert.Equal(t, kernel.NewMoneyFromFloat(500), o.Subtotal())
		assert.Equal(t, kernel.NewMoneyFromFloat(580), o.Total())
		assert.Equal(t,
			o.Subtotal().Add(o.DeliveryCharge()).Add(o.PlatformFee()).Add(o.GST()),
			o.Total())
	})

	t.Run("online order starts pending and unpaid", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		assert.Equal(t, order.StatusPending, o.Status())
		assert.False(t, o.IsPaid())
		assert.Nil(t, o.ConfirmedAt())
	})

	t.Run("cash on delivery starts confirmed", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		assert.Equal(t, order.StatusConfirmed, o.Status())
		assert.NotNil(t, o.ConfirmedAt())
	})

	t.Run("requires at least one line item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "ORD-1", "customer-1", nil, testAddress(t),
			order.PaymentMethodOnline,
			kernel.Money(0), kernel.Money(0), kernel.Money(0), "1234", time.Now())
		require.Error(t, err)
	})

	t.Run("rejects malformed otp", func(t *testing.T) {
		for _, otp := range []string{"", "123", "12345", "12a4"} {
			_, err := order.NewOrder(
				kernel.NewUUID(), "ORD-1", "customer-1", testItems(t), testAddress(t),
				order.PaymentMethodOnline,
				kernel.Money(0), kernel.Money(0), kernel.Money(0), otp, time.Now())
			require.Error(t, err, "otp %q", otp)
		}
	})

	t.Run("zero value order fails validation", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_ConfirmPayment(t *testing.T) {
	now := time.Now()

	t.Run("pending order confirms and records payment", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.ConfirmPayment("gw_order_1", "gw_pay_1", "sig", now))

		assert.Equal(t, order.StatusConfirmed, o.Status())
		assert.True(t, o.IsPaid())
		assert.Equal(t, "gw_order_1", o.GatewayOrderID())
		assert.Equal(t, "gw_pay_1", o.GatewayPaymentID())
		require.NotNil(t, o.ConfirmedAt())
	})

	t.Run("second confirmation fails", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.ConfirmPayment("gw_order_1", "gw_pay_1", "sig", now))
		err := o.ConfirmPayment("gw_order_1", "gw_pay_2", "sig", now)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_AssignCourier(t *testing.T) {
	now := time.Now()

	t.Run("confirmed order dispatches with snapshot", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		snapshot := testSnapshot()
		require.NoError(t, o.AssignCourier(snapshot, now))

		assert.Equal(t, order.StatusOutForDelivery, o.Status())
		require.NotNil(t, o.Courier())
		assert.Equal(t, "Ravi", o.Courier().Name)
		assert.NotNil(t, o.AssignedAt())
	})

	t.Run("preparing order dispatches", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		require.NoError(t, o.StartPreparing())
		require.NoError(t, o.AssignCourier(testSnapshot(), now))
		assert.Equal(t, order.StatusOutForDelivery, o.Status())
	})

	t.Run("pending order is not ready", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		err := o.AssignCourier(testSnapshot(), now)
		require.ErrorIs(t, err, order.ErrOrderNotReady)
		assert.Nil(t, o.Courier())
	})

	t.Run("second assignment fails, first courier kept", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		first := testSnapshot()
		require.NoError(t, o.AssignCourier(first, now))

		err := o.AssignCourier(testSnapshot(), now)
		require.ErrorIs(t, err, order.ErrCourierAlreadyAssigned)
		assert.True(t, first.AgentID.IsEqual(o.Courier().AgentID))
	})

	t.Run("invalid snapshot is rejected", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		err := o.AssignCourier(order.CourierSnapshot{Name: "Ravi"}, now)
		require.Error(t, err)
		assert.Nil(t, o.Courier())
	})
}

func TestOrder_VerifyDeliveryOtp(t *testing.T) {
	now := time.Now()

	dispatched := func(t *testing.T) *order.Order {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		require.NoError(t, o.AssignCourier(testSnapshot(), now))
		return o
	}

	t.Run("matching code delivers and stamps time", func(t *testing.T) {
		o := dispatched(t)
		require.NoError(t, o.VerifyDeliveryOtp("4821", now))

		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.True(t, o.IsOtpVerified())
		assert.NotNil(t, o.DeliveredAt())
	})

	t.Run("mismatch leaves order unchanged", func(t *testing.T) {
		o := dispatched(t)
		err := o.VerifyDeliveryOtp("0000", now)
		require.ErrorIs(t, err, order.ErrInvalidOtp)
		assert.Equal(t, order.StatusOutForDelivery, o.Status())
		assert.False(t, o.IsOtpVerified())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("compares as strings, no numeric coercion", func(t *testing.T) {
		o := dispatched(t)
		// "04821" must not match "4821" the way numeric parsing would.
		err := o.VerifyDeliveryOtp("04821", now)
		require.ErrorIs(t, err, order.ErrInvalidOtp)
	})

	t.Run("second verification after success fails with transition error", func(t *testing.T) {
		o := dispatched(t)
		require.NoError(t, o.VerifyDeliveryOtp("4821", now))
		err := o.VerifyDeliveryOtp("4821", now)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("not out for delivery rejects verification before comparing", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		err := o.VerifyDeliveryOtp("4821", now)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestOrder_Cancel(t *testing.T) {
	now := time.Now()

	t.Run("cancel from any non-terminal state", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.Cancel(now))
		assert.Equal(t, order.StatusCancelled, o.Status())
		assert.NotNil(t, o.CancelledAt())
	})

	t.Run("cancel after delivery fails", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		require.NoError(t, o.AssignCourier(testSnapshot(), now))
		require.NoError(t, o.VerifyDeliveryOtp("4821", now))

		require.ErrorIs(t, o.Cancel(now), order.ErrInvalidTransition)
	})
}

func TestOrder_OverrideStatus(t *testing.T) {
	now := time.Now()

	t.Run("bypasses guards for known statuses", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.OverrideStatus(order.StatusDelivered, now))
		assert.Equal(t, order.StatusDelivered, o.Status())
		assert.NotNil(t, o.DeliveredAt())
	})

	t.Run("accepts custom status strings", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.OverrideStatus(order.Status("on_hold"), now))
		assert.Equal(t, order.Status("on_hold"), o.Status())
	})

	t.Run("terminal orders reject overrides", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodOnline)
		require.NoError(t, o.Cancel(now))
		require.ErrorIs(t, o.OverrideStatus(order.StatusConfirmed, now), order.ErrInvalidTransition)
	})
}

func TestOrder_EnsureOtp(t *testing.T) {
	o := newTestOrder(t, order.PaymentMethodOnline)
	require.NoError(t, o.EnsureOtp("9999"))
	// Existing OTP is never regenerated.
	assert.Equal(t, "4821", o.DeliveryOtp())
}

func TestRestoreOrder(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		now := time.Now()
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		require.NoError(t, o.AssignCourier(testSnapshot(), now))

		restored, err := order.RestoreOrder(order.RestoreOrderProps{
			ID:             o.ID(),
			Code:           o.Code(),
			CustomerID:     o.CustomerID(),
			Items:          o.Items(),
			Address:        o.Address(),
			Subtotal:       o.Subtotal(),
			DeliveryCharge: o.DeliveryCharge(),
			PlatformFee:    o.PlatformFee(),
			GST:            o.GST(),
			Total:          o.Total(),
			PaymentMethod:  o.PaymentMethod(),
			Status:         o.Status(),
			DeliveryOtp:    o.DeliveryOtp(),
			ETA:            o.ETA(),
			Courier:        o.Courier(),
			AssignedAt:     o.AssignedAt(),
			CreatedAt:      o.CreatedAt(),
			Version:        3,
		})
		require.NoError(t, err)

		assert.True(t, restored.IsEqual(o))
		assert.Equal(t, o.Total(), restored.Total())
		assert.Equal(t, o.Status(), restored.Status())
		assert.Equal(t, 3, restored.Version())
		require.NoError(t, restored.Validate())
	})

	t.Run("otp verified requires delivered status", func(t *testing.T) {
		o := newTestOrder(t, order.PaymentMethodCashOnDelivery)
		_, err := order.RestoreOrder(order.RestoreOrderProps{
			ID:            o.ID(),
			Code:          o.Code(),
			CustomerID:    o.CustomerID(),
			Items:         o.Items(),
			Address:       o.Address(),
			Subtotal:      o.Subtotal(),
			Total:         o.Total(),
			PaymentMethod: o.PaymentMethod(),
			Status:        order.StatusOutForDelivery,
			OtpVerified:   true,
			CreatedAt:     o.CreatedAt(),
		})
		require.Error(t, err)
	})
}

func TestLineItem(t *testing.T) {
	t.Run("line total multiplies price by quantity", func(t *testing.T) {
		item, err := order.NewLineItem(kernel.NewUUID(), "Biryani", kernel.NewMoneyFromFloat(149.50), 3)
		require.NoError(t, err)
		assert.Equal(t, kernel.NewMoneyFromFloat(448.50), item.LineTotal())
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), "Biryani", kernel.NewMoneyFromFloat(149.50), 0)
		require.Error(t, err)
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), "", kernel.NewMoneyFromFloat(10), 1)
		require.Error(t, err)
	})
}
