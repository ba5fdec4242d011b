package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshSchedule runs the refresh daily at 09:00 server time.
const DefaultRefreshSchedule = "0 0 9 * * *"

type refreshHandler interface {
	Handle(ctx context.Context, cmd commands.RefreshExchangeRatesCommand) error
}

// ExchangeRateRefreshJob re-fetches every known exchange rate on a cron
// schedule. A failed run is logged; the provider keeps serving what it has.
type ExchangeRateRefreshJob struct {
	handler  refreshHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewExchangeRateRefreshJob creates the job. schedule is a six-field cron
// expression (with seconds); timeout bounds one run.
func NewExchangeRateRefreshJob(
	handler refreshHandler,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *ExchangeRateRefreshJob {
	if schedule == "" {
		schedule = DefaultRefreshSchedule
	}
	return &ExchangeRateRefreshJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "exchange_rate_refresh_job"),
	}
}

func (j *ExchangeRateRefreshJob) Name() string {
	return "exchange rate refresh"
}

// Start schedules the job. An invalid schedule is returned as an error and
// nothing is started.
func (j *ExchangeRateRefreshJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		_ = j.Run(context.Background())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Exchange rate refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh immediately.
func (j *ExchangeRateRefreshJob) Run(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.handler.Handle(ctx, commands.NewRefreshExchangeRatesCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Exchange rate refresh job failed", "error", err)
		return err
	}
	return nil
}

// Stop stops scheduling and waits for a running refresh to finish.
func (j *ExchangeRateRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Exchange rate refresh job stopped")
}
