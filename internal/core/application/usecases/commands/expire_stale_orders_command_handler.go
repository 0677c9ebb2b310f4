package commands

import (
	"context"
	"time"

	"quickbite/internal/core/domain/model/kernel"
	"quickbite/internal/core/ports"
)

// ExpireStaleOrdersCommandHandler cancels unpaid pending orders whose
// payment never arrived. Each stale order is cancelled in its own
// transaction so one conflicting row cannot block the sweep; an order paid
// concurrently simply fails its version check and is skipped.
type ExpireStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.NotificationSink
	pendingTTL time.Duration
}

// NewExpireStaleOrdersCommandHandler creates a handler for the expiry sweep.
// pendingTTL sets how long an unpaid pending order may live.
func NewExpireStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	notifier ports.NotificationSink,
	pendingTTL time.Duration,
) ExpireStaleOrdersCommandHandler {
	return ExpireStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		pendingTTL: pendingTTL,
	}
}

// Handle processes the expiry sweep command.
// Collects pending orders older than the TTL and cancels each one,
// publishing the standard cancellation notification per cancelled order.
// Returns the last per-order error after finishing the whole sweep.
func (h ExpireStaleOrdersCommandHandler) Handle(ctx context.Context, cmd ExpireStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now()

	stale, err := h.collectStale(ctx, now.Add(-h.pendingTTL))
	if err != nil {
		return err
	}

	var sweepErr error
	for _, orderID := range stale {
		if err := h.expireOne(ctx, orderID, now); err != nil {
			sweepErr = err
		}
	}

	return sweepErr
}

func (h ExpireStaleOrdersCommandHandler) collectStale(
	ctx context.Context,
	cutoff time.Time,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	stale, err := uow.OrderRepository().GetStalePending(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(stale))
	for _, staleOrder := range stale {
		ids = append(ids, staleOrder.ID())
	}

	return ids, nil
}

func (h ExpireStaleOrdersCommandHandler) expireOne(
	ctx context.Context,
	orderID kernel.UUID,
	now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	staleOrder, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if err = staleOrder.Cancel(now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, staleOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	notifyOrderStatus(ctx, h.notifier, staleOrder, nil)

	return nil
}
