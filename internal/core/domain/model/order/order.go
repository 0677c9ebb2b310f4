package order

import (
	"crypto/subtle"
	"errors"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/pkg/errs"
	"quickbite/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrOrderNotReady is returned when a courier assignment is attempted on
	// an order that is not ready for pickup (confirmed or preparing).
	ErrOrderNotReady = errors.New("order is not ready for pickup")
	// ErrCourierAlreadyAssigned is returned when an order already has a
	// courier; an order holds at most one assigned courier at a time.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")
	// ErrInvalidOtp is returned when a submitted delivery code does not match
	// the order's OTP. The order is left unchanged.
	ErrInvalidOtp = errors.New("delivery otp does not match")
	// ErrNoLineItems is returned when attempting to create an order without items.
	ErrNoLineItems = errs.NewValueIsRequiredError("order must contain at least one line item")
)

// defaultDeliveryETA is the estimated time from order placement to handoff.
const defaultDeliveryETA = 45 * time.Minute

// PaymentMethod identifies how the customer pays for the order.
type PaymentMethod string

const (
	// PaymentMethodOnline requires gateway signature verification before the
	// order is confirmed.
	PaymentMethodOnline PaymentMethod = "online"
	// PaymentMethodCashOnDelivery confirms the order immediately; payment is
	// settled at handoff.
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Validate checks that the payment method is one of the supported values.
func (m PaymentMethod) Validate() error {
	if m != PaymentMethodOnline && m != PaymentMethodCashOnDelivery {
		return errs.NewValueIsInvalidError("payment method")
	}
	return nil
}

// DeliveryAddress is the drop-off destination of an order: a free-form
// address line plus optional geographic coordinates. Orders without
// coordinates are legal; the fee calculator then charges no delivery fee.
type DeliveryAddress struct {
	Line  string
	Point *kernel.GeoPoint
}

// Validate checks the address line is present and any coordinates are valid.
func (a DeliveryAddress) Validate() error {
	if a.Line == "" {
		return errs.NewValueIsRequiredError("address line")
	}
	if a.Point != nil {
		return a.Point.Validate()
	}
	return nil
}

// CourierSnapshot is the denormalized identity of the courier at assignment
// time. It is a deliberate historical snapshot, not a live reference: later
// agent profile edits must not change what the order records.
type CourierSnapshot struct {
	AgentID kernel.UUID
	Name    string
	Phone   string
}

// Validate checks the snapshot carries a valid agent identity.
func (c CourierSnapshot) Validate() error {
	if err := c.AgentID.Validate(); err != nil {
		return err
	}
	if c.Name == "" {
		return errs.NewValueIsRequiredError("courier name")
	}
	if c.Phone == "" {
		return errs.NewValueIsRequiredError("courier phone")
	}
	return nil
}

// Order is the aggregate root coordinating the lifecycle of a food-delivery
// order from placement through payment confirmation, preparation, courier
// assignment, and OTP-verified handoff.
//
// Invariants maintained by the aggregate:
//   - total = subtotal + deliveryCharge + platformFee + gst, fixed at two decimals
//   - otpVerified implies status == delivered
//   - at most one assigned courier at a time
//   - status transitions follow the Status state machine; each transition
//     stamps its timestamp together with the status change
//
// Orders are never deleted; terminal orders remain for audit history.
type Order struct {
	id         kernel.UUID
	code       string
	customerID string

	items   []LineItem
	address DeliveryAddress

	subtotal       kernel.Money
	deliveryCharge kernel.Money
	platformFee    kernel.Money
	gst            kernel.Money
	total          kernel.Money

	paymentMethod    PaymentMethod
	gatewayOrderID   string
	gatewayPaymentID string
	gatewaySignature string
	paid             bool

	status      Status
	deliveryOtp string
	otpVerified bool
	eta         time.Time

	courier     *CourierSnapshot
	assignedAt  *time.Time
	confirmedAt *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	createdAt time.Time
	version   int

	guard guard.ConstructorGuard
}

// NewOrder creates an order in pending status with its fee breakdown and
// delivery OTP fixed atomically at creation time.
//
// The subtotal is derived from the line-item snapshots; the money invariant
// total = subtotal + deliveryCharge + platformFee + gst holds by construction.
// Cash-on-delivery orders start confirmed (there is no payment gate to pass).
func NewOrder(
	id kernel.UUID,
	code string,
	customerID string,
	items []LineItem,
	address DeliveryAddress,
	paymentMethod PaymentMethod,
	deliveryCharge kernel.Money,
	platformFee kernel.Money,
	gst kernel.Money,
	deliveryOtp string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    StatusPending,
		createdAt: now,
		eta:       now.Add(defaultDeliveryETA),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setPaymentMethod(paymentMethod),
		o.setCharges(deliveryCharge, platformFee, gst),
		o.setDeliveryOtp(deliveryOtp),
	); err != nil {
		return nil, err
	}

	if paymentMethod == PaymentMethodCashOnDelivery {
		o.status = StatusConfirmed
		confirmedAt := now
		o.confirmedAt = &confirmedAt
	}

	return o, nil
}

// RestoreOrderProps carries the persisted state of an order for RestoreOrder.
type RestoreOrderProps struct {
	ID               kernel.UUID
	Code             string
	CustomerID       string
	Items            []LineItem
	Address          DeliveryAddress
	Subtotal         kernel.Money
	DeliveryCharge   kernel.Money
	PlatformFee      kernel.Money
	GST              kernel.Money
	Total            kernel.Money
	PaymentMethod    PaymentMethod
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
	Paid             bool
	Status           Status
	DeliveryOtp      string
	OtpVerified      bool
	ETA              time.Time
	Courier          *CourierSnapshot
	AssignedAt       *time.Time
	ConfirmedAt      *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
	CreatedAt        time.Time
	Version          int
}

// RestoreOrder reconstructs an order aggregate from persistent storage.
// Unlike NewOrder it accepts the stored money fields and status verbatim;
// it still refuses structurally impossible combinations (an OTP-verified
// order that is not delivered, a courier on a pending order's own terms).
func RestoreOrder(props RestoreOrderProps) (*Order, error) {
	o := &Order{
		subtotal:         props.Subtotal,
		deliveryCharge:   props.DeliveryCharge,
		platformFee:      props.PlatformFee,
		gst:              props.GST,
		total:            props.Total,
		gatewayOrderID:   props.GatewayOrderID,
		gatewayPaymentID: props.GatewayPaymentID,
		gatewaySignature: props.GatewaySignature,
		paid:             props.Paid,
		status:           props.Status,
		otpVerified:      props.OtpVerified,
		eta:              props.ETA,
		courier:          props.Courier,
		assignedAt:       props.AssignedAt,
		confirmedAt:      props.ConfirmedAt,
		deliveredAt:      props.DeliveredAt,
		cancelledAt:      props.CancelledAt,
		createdAt:        props.CreatedAt,
		version:          props.Version,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(props.ID),
		o.setCode(props.Code),
		o.setCustomerID(props.CustomerID),
		o.setItems(props.Items),
		o.setAddress(props.Address),
		o.setPaymentMethod(props.PaymentMethod),
	); err != nil {
		return nil, err
	}

	o.deliveryOtp = props.DeliveryOtp

	if o.otpVerified && o.status != StatusDelivered {
		return nil, errs.NewValueIsInvalidError("otpVerified on a non-delivered order")
	}

	return o, nil
}

// Validate ensures the Order was constructed via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the internal unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Code returns the externally visible, human-readable order code.
func (o *Order) Code() string { return o.code }

// CustomerID returns the owning customer identity. Immutable after creation.
func (o *Order) CustomerID() string { return o.customerID }

// Items returns a copy of the line-item snapshots.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Address returns the delivery destination.
func (o *Order) Address() DeliveryAddress { return o.address }

// Subtotal returns the sum of all line totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// DeliveryCharge returns the distance-based delivery charge.
func (o *Order) DeliveryCharge() kernel.Money { return o.deliveryCharge }

// PlatformFee returns the platform fee computed at creation.
func (o *Order) PlatformFee() kernel.Money { return o.platformFee }

// GST returns the tax amount computed at creation.
func (o *Order) GST() kernel.Money { return o.gst }

// Total returns subtotal + deliveryCharge + platformFee + gst.
func (o *Order) Total() kernel.Money { return o.total }

// PaymentMethod returns the chosen payment method.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// GatewayOrderID returns the payment gateway's order identifier.
func (o *Order) GatewayOrderID() string { return o.gatewayOrderID }

// GatewayPaymentID returns the payment gateway's payment identifier.
func (o *Order) GatewayPaymentID() string { return o.gatewayPaymentID }

// GatewaySignature returns the verified gateway signature, if any.
func (o *Order) GatewaySignature() string { return o.gatewaySignature }

// IsPaid reports whether payment has been verified.
func (o *Order) IsPaid() bool { return o.paid }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// DeliveryOtp returns the 4-digit handoff confirmation code.
func (o *Order) DeliveryOtp() string { return o.deliveryOtp }

// IsOtpVerified reports whether the handoff OTP was verified.
func (o *Order) IsOtpVerified() bool { return o.otpVerified }

// ETA returns the estimated delivery timestamp.
func (o *Order) ETA() time.Time { return o.eta }

// Courier returns the assigned courier snapshot, or nil if unassigned.
func (o *Order) Courier() *CourierSnapshot { return o.courier }

// AssignedAt returns when the courier was assigned, or nil.
func (o *Order) AssignedAt() *time.Time { return o.assignedAt }

// ConfirmedAt returns when payment was confirmed, or nil.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Version returns the optimistic-concurrency version of the aggregate.
// The repository increments it on every successful update; a stale version
// means another operation committed first.
func (o *Order) Version() int { return o.version }

// ConfirmPayment records the verified gateway payment and transitions
// pending -> confirmed. The signature itself must already have been checked
// by the payment verifier; this method only applies the state change.
func (o *Order) ConfirmPayment(gatewayOrderID, gatewayPaymentID, gatewaySignature string, now time.Time) error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.gatewayOrderID = gatewayOrderID
	o.gatewayPaymentID = gatewayPaymentID
	o.gatewaySignature = gatewaySignature
	o.paid = true
	confirmedAt := now
	o.confirmedAt = &confirmedAt
	return nil
}

// StartPreparing transitions confirmed -> preparing (kitchen started).
func (o *Order) StartPreparing() error {
	newStatus, err := o.status.StartPreparing()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// AssignCourier attaches a courier snapshot and dispatches the order.
//
// Preconditions: the order is ready for pickup (confirmed or preparing) and
// has no courier yet. Returns ErrOrderNotReady or ErrCourierAlreadyAssigned
// when violated; the order is left unchanged on failure.
func (o *Order) AssignCourier(snapshot CourierSnapshot, now time.Time) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}
	if o.courier != nil {
		return ErrCourierAlreadyAssigned
	}
	if !o.status.IsReadyForPickup() {
		return ErrOrderNotReady
	}

	newStatus, err := o.status.Dispatch()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courier = &snapshot
	assignedAt := now
	o.assignedAt = &assignedAt
	return nil
}

// EnsureOtp stores a delivery OTP if the order does not have one yet.
// The OTP is produced once; re-reads never regenerate it.
func (o *Order) EnsureOtp(otp string) error {
	if o.deliveryOtp != "" {
		return nil
	}
	return o.setDeliveryOtp(otp)
}

// VerifyDeliveryOtp completes the handoff: the submitted code must equal the
// stored OTP (compared in constant time, as strings) and the order must be
// out for delivery. On success the order becomes delivered with the delivery
// timestamp stamped; on mismatch it returns ErrInvalidOtp and stays unchanged.
func (o *Order) VerifyDeliveryOtp(code string, now time.Time) error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	if len(code) == 0 || len(code) != len(o.deliveryOtp) ||
		subtle.ConstantTimeCompare([]byte(code), []byte(o.deliveryOtp)) != 1 {
		return ErrInvalidOtp
	}

	o.status = newStatus
	o.otpVerified = true
	deliveredAt := now
	o.deliveredAt = &deliveredAt
	return nil
}

// Cancel transitions any non-terminal order to cancelled.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}
	o.status = newStatus
	cancelledAt := now
	o.cancelledAt = &cancelledAt
	return nil
}

// OverrideStatus applies an administrative status change, bypassing the
// transition guards. Terminal orders still reject overrides: nothing is
// reachable from delivered or cancelled. Timestamps associated with known
// target statuses are stamped as in the guarded paths.
func (o *Order) OverrideStatus(target Status, now time.Time) error {
	if target == "" {
		return errs.NewValueIsRequiredError("status")
	}
	if o.status.IsTerminal() {
		return ErrInvalidTransition
	}

	o.status = target
	switch target {
	case StatusConfirmed:
		confirmedAt := now
		o.confirmedAt = &confirmedAt
	case StatusDelivered:
		deliveredAt := now
		o.deliveredAt = &deliveredAt
	case StatusCancelled:
		cancelledAt := now
		o.cancelledAt = &cancelledAt
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customer id")
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}

	subtotal := kernel.Money(0)
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		subtotal = subtotal.Add(item.LineTotal())
	}

	o.items = make([]LineItem, len(items))
	copy(o.items, items)

	// RestoreOrder passes stored money fields; only NewOrder derives them.
	if o.subtotal.IsZero() && o.total.IsZero() {
		o.subtotal = subtotal
	}
	return nil
}

func (o *Order) setAddress(address DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setCharges(deliveryCharge, platformFee, gst kernel.Money) error {
	if err := errors.Join(deliveryCharge.Validate(), platformFee.Validate(), gst.Validate()); err != nil {
		return err
	}
	o.deliveryCharge = deliveryCharge
	o.platformFee = platformFee
	o.gst = gst
	o.total = o.subtotal.Add(deliveryCharge).Add(platformFee).Add(gst)
	return nil
}

func (o *Order) setDeliveryOtp(otp string) error {
	if len(otp) != 4 {
		return errs.NewValueIsInvalidError("delivery otp")
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return errs.NewValueIsInvalidError("delivery otp")
		}
	}
	o.deliveryOtp = otp
	return nil
}
