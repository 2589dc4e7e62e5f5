package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldwork/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	// reconciliationSchedule sweeps once a minute. A sweep only touches
	// credits older than staleAfter, so frequent runs stay cheap.
	reconciliationSchedule = "0 * * * * *"

	// staleAfter keeps a sweep away from credits whose post-commit
	// increment may still be in flight.
	staleAfter = 5 * time.Minute

	// batchSize bounds one sweep.
	batchSize = 100
)

// EarningsReconciliationJob applies earnings credits whose post-commit
// increment was lost. The synchronous completion flow never retries; this
// job is the only path that converges worker totals after a crash.
type EarningsReconciliationJob struct {
	handler commands.ReconcileEarningsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewEarningsReconciliationJob creates the reconciliation job.
func NewEarningsReconciliationJob(
	handler commands.ReconcileEarningsCommandHandler,
	logger *slog.Logger,
) *EarningsReconciliationJob {
	return &EarningsReconciliationJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "earnings_reconciliation_job"),
	}
}

// Start begins the reconciliation job on its schedule.
func (j *EarningsReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(reconciliationSchedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReconcileEarningsCommand(staleAfter, batchSize)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Earnings reconciliation command rejected", "error", cmdErr)
			return
		}

		applied, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Earnings reconciliation sweep failed",
				"applied", applied, "error", handleErr)
			return
		}

		if applied > 0 {
			j.logger.InfoContext(ctx, "Earnings reconciliation sweep applied stale credits",
				"applied", applied)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Earnings reconciliation job started (running every minute)")
	return nil
}

// Stop stops the reconciliation job.
func (j *EarningsReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Earnings reconciliation job stopped")
}
