package station

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// StartSimulation starts the pumps, sends numCars cars through the station
// and blocks until the station is quiescent and every pump has stopped.
func (s *implStation) StartSimulation(ctx context.Context, numCars int) error {
	if numCars < 0 {
		return fmt.Errorf("start simulation with %d cars: %w", numCars, ErrNegativeCars)
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	s.events.start()
	defer s.events.close()

	startedAt := s.clock.Now()
	s.logger.Info(ctx, "Simulation started: %d pumps, queue capacity %d, %d cars, admission %s",
		s.cfg.Pumps, s.cfg.QueueCapacity, numCars, s.cfg.Admission)

	pumps, pumpCtx := errgroup.WithContext(context.WithoutCancel(ctx))
	s.pumps = make([]*Pump, s.cfg.Pumps)
	for i := range s.pumps {
		p := s.newPump(i + 1)
		s.pumps[i] = p
		pumps.Go(func() error {
			return p.Run(pumpCtx)
		})
	}

	runErr := s.runArrivals(ctx, numCars)
	if runErr == nil {
		runErr = s.awaitQuiescence(ctx)
	}

	for _, p := range s.pumps {
		p.Stop()
	}
	if err := pumps.Wait(); err != nil && runErr == nil {
		runErr = fmt.Errorf("pump: %w", err)
	}

	if runErr != nil {
		s.logger.Warn(context.WithoutCancel(ctx), "Simulation aborted after %s: %v", s.clock.Since(startedAt), runErr)
		return runErr
	}

	s.events.emit(Event{Type: EventSimulationComplete, At: s.clock.Now()})
	s.logger.Info(ctx, "Simulation complete in %s", s.clock.Since(startedAt))
	return nil
}

// runArrivals spawns one task per car, spaced by the arrival interval, and
// waits until every car has finished its admission attempt.
func (s *implStation) runArrivals(ctx context.Context, numCars int) error {
	cars, carCtx := errgroup.WithContext(ctx)

	for id := 1; id <= numCars; id++ {
		car := Car{ID: id, ArrivedAt: s.clock.Now()}
		cars.Go(func() error {
			return s.arrive(carCtx, car)
		})

		if id == numCars {
			break
		}
		gap := s.sampler.between(s.cfg.Timing.ArrivalMin, s.cfg.Timing.ArrivalMax)
		if gap <= 0 {
			continue
		}
		select {
		case <-s.clock.After(gap):
		case <-carCtx.Done():
		}
		if carCtx.Err() != nil {
			break
		}
	}

	if err := cars.Wait(); err != nil {
		return fmt.Errorf("car arrivals: %w", err)
	}
	return ctx.Err()
}

// awaitQuiescence polls until the queue is empty and every bay is free.
// It is only called after all arrivals are done, so nothing can enter the
// queue once it has been seen empty.
func (s *implStation) awaitQuiescence(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.cfg.Timing.PollInterval)
	defer ticker.Stop()

	for {
		if s.area.quiescent(s.bays, s.cfg.Pumps) {
			return nil
		}
		select {
		case <-ticker.Chan():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
