// Package simulator fakes incoming orders from the delivery channels, for demos and
// load checks of the board. Orders go through the regular create use case.
package simulator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"kds/internal/core/application/usecases/commands"
	"kds/internal/core/domain/model/order"
	"kds/internal/pkg/errs"

	"go.uber.org/zap"
)

// MaxCount bounds the number of orders one Simulate call creates.
const MaxCount = 1000

// OrderCreator is the create use case as seen by the simulator.
type OrderCreator interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (order.ID, error)
}

type Simulator struct {
	creator OrderCreator
	intn    func(int) int
	logger  *zap.Logger
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithRandom replaces the source of randomness, mostly for tests.
func WithRandom(intn func(int) int) Option {
	return func(s *Simulator) {
		s.intn = intn
	}
}

func New(creator OrderCreator, logger *zap.Logger, opts ...Option) *Simulator {
	s := &Simulator{
		creator: creator,
		intn:    rand.IntN,
		logger:  logger.With(zap.String("component", "simulator")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample returns a random order for the channel without creating it.
func (s *Simulator) Sample(source order.Source) (Sample, error) {
	if err := source.Validate(); err != nil {
		return Sample{}, err
	}
	return catalogs[source].pick(s.intn), nil
}

// Simulate creates count random orders from one channel and returns their ids.
// It stops at the first failure and returns the ids created so far.
func (s *Simulator) Simulate(ctx context.Context, source order.Source, count int) ([]order.ID, error) {
	if err := source.Validate(); err != nil {
		return nil, err
	}
	if count < 0 || count > MaxCount {
		return nil, errs.NewValueIsOutOfRangeError("count", count, 0, MaxCount)
	}

	ids := make([]order.ID, 0, count)
	for range count {
		if err := ctx.Err(); err != nil {
			return ids, err
		}

		sample, err := s.Sample(source)
		if err != nil {
			return ids, err
		}

		cmd, err := commands.NewCreateOrderCommand(source.String(), sample.ClientName, sample.Description)
		if err != nil {
			return ids, err
		}

		id, err := s.creator.Handle(ctx, cmd)
		if err != nil {
			return ids, fmt.Errorf("simulate %s order: %w", source, err)
		}

		s.logger.Info("simulated order created",
			zap.Int64("order_id", int64(id)),
			zap.String("source", source.String()),
			zap.String("client_name", sample.ClientName),
		)
		ids = append(ids, id)
	}

	return ids, nil
}

// SimulateRandom creates one order from a random channel.
func (s *Simulator) SimulateRandom(ctx context.Context) (order.ID, error) {
	sources := order.Sources()
	ids, err := s.Simulate(ctx, sources[s.intn(len(sources))], 1)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}
