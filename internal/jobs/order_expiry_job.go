package jobs

import (
	"context"
	"log/slog"

	"quickbite/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// OrderExpiryJob periodically cancels unpaid pending orders whose payment
// window has elapsed.
type OrderExpiryJob struct {
	handler  commands.ExpireStaleOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewOrderExpiryJob creates the expiry job. The schedule is a standard
// five-field cron expression, typically running once a minute.
func NewOrderExpiryJob(
	handler commands.ExpireStaleOrdersCommandHandler,
	schedule string,
	logger *slog.Logger,
) *OrderExpiryJob {
	return &OrderExpiryJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "order_expiry_job"),
	}
}

// Start begins the expiry sweep on the configured schedule.
func (j *OrderExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd := commands.NewExpireStaleOrdersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Order expiry sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order expiry job started", "schedule", j.schedule)
	return nil
}

// Stop stops the expiry job.
func (j *OrderExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order expiry job stopped")
}
