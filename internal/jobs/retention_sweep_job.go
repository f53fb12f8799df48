package jobs

import (
	"context"
	"fmt"
	"time"

	"kds/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SweepHandler is the sweep use case as seen by the job.
type SweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepOrdersCommand) (int64, error)
}

// RetentionSweepJob periodically deletes finished orders whose last change is older
// than the retention period.
type RetentionSweepJob struct {
	handler        SweepHandler
	schedule       string
	retentionHours int
	timeout        time.Duration
	cron           *cron.Cron
	logger         *zap.Logger
}

func NewRetentionSweepJob(handler SweepHandler, schedule string, retentionHours int, logger *zap.Logger) *RetentionSweepJob {
	logger = logger.With(zap.String("component", "retention_sweep_job"))
	return &RetentionSweepJob{
		handler:        handler,
		schedule:       schedule,
		retentionHours: retentionHours,
		timeout:        time.Minute,
		cron:           newCron(logger),
		logger:         logger,
	}
}

func (j *RetentionSweepJob) Name() string {
	return "retention_sweep"
}

// Start validates the retention before scheduling, so a bad configuration fails at boot.
func (j *RetentionSweepJob) Start() error {
	if _, err := commands.NewSweepOrdersCommand(j.retentionHours); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("retention sweep job started",
		zap.String("schedule", j.schedule),
		zap.Int("retention_hours", j.retentionHours),
	)
	return nil
}

// Run performs one sweep.
func (j *RetentionSweepJob) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	cmd, err := commands.NewSweepOrdersCommand(j.retentionHours)
	if err != nil {
		return 0, err
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("retention sweep failed", zap.Error(err))
		return 0, err
	}

	if removed > 0 {
		j.logger.Info("finished orders removed", zap.Int64("removed", removed))
	}
	return removed, nil
}

// Stop waits for a running sweep to finish.
func (j *RetentionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("retention sweep job stopped")
}
