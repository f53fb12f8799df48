package jobs

import (
	"context"
	"fmt"
	"time"

	"kds/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// OrderSimulator creates one random order.
type OrderSimulator interface {
	SimulateRandom(ctx context.Context) (order.ID, error)
}

// SimulationJob feeds the board with fake channel orders.
type SimulationJob struct {
	simulator OrderSimulator
	schedule  string
	cron      *cron.Cron
	logger    *zap.Logger
}

func NewSimulationJob(simulator OrderSimulator, schedule string, logger *zap.Logger) *SimulationJob {
	logger = logger.With(zap.String("component", "simulation_job"))
	return &SimulationJob{
		simulator: simulator,
		schedule:  schedule,
		cron:      newCron(logger),
		logger:    logger,
	}
}

func (j *SimulationJob) Name() string {
	return "simulation"
}

func (j *SimulationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { _ = j.Run(context.Background()) }); err != nil {
		return fmt.Errorf("schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("simulation job started", zap.String("schedule", j.schedule))
	return nil
}

// Run creates a single order.
func (j *SimulationJob) Run(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := j.simulator.SimulateRandom(ctx); err != nil {
		j.logger.Error("order simulation failed", zap.Error(err))
		return err
	}
	return nil
}

func (j *SimulationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("simulation job stopped")
}
