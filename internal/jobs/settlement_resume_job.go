package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/order"
)

// SettlementResumeJob manages the scheduled retry of unfinished settlements.
// Runs every ten seconds to pick up delivered orders whose settlement was
// interrupted and re-invoke the settlement orchestration for them. Every
// settlement step is guarded by its own completion marker, so re-invoking a
// partially settled order never double-credits anything.
type SettlementResumeJob struct {
	uowFactory commands.OrderUoWFactory
	settler    commands.SettleOrderCommandHandler
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewSettlementResumeJob creates a new job for resuming interrupted settlements.
func NewSettlementResumeJob(
	uowFactory commands.OrderUoWFactory,
	settler commands.SettleOrderCommandHandler,
	logger *slog.Logger,
) *SettlementResumeJob {
	return &SettlementResumeJob{
		uowFactory: uowFactory,
		settler:    settler,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "settlement_resume_job"),
	}
}

// Start begins the settlement resume job to run every ten seconds.
func (j *SettlementResumeJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := j.run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Settlement resume job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Settlement resume job started (running every ten seconds)")
	return nil
}

// Stop stops the settlement resume job.
func (j *SettlementResumeJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Settlement resume job stopped")
}

// run scans for unsettled delivered orders and re-enters settlement for each.
// One order failing does not block the rest of the batch.
func (j *SettlementResumeJob) run(ctx context.Context) error {
	pending, err := j.scanPending(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range pending {
		cmd, cmdErr := commands.NewSettleOrderCommand(aggregate.ID())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Invalid settlement candidate",
				"orderId", aggregate.ID(), "error", cmdErr)
			continue
		}

		if _, settleErr := j.settler.Handle(ctx, cmd); settleErr != nil {
			j.logger.WarnContext(ctx, "Settlement retry failed",
				"orderId", aggregate.ID(), "error", settleErr)
		}
	}

	return nil
}

// scanPending reads the settlement backlog in a short-lived read-only transaction.
func (j *SettlementResumeJob) scanPending(ctx context.Context) ([]*order.Order, error) {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().GetSettlementPending(ctx)
}
