package station

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/pkg/semaphore"
)

// PumpState is a step of the pump service loop
type PumpState int32

const (
	PumpIdle PumpState = iota
	PumpWaitingForCar
	PumpDispatching
	PumpInService
	PumpStopping
	PumpStopped
)

func (s PumpState) String() string {
	switch s {
	case PumpIdle:
		return "idle"
	case PumpWaitingForCar:
		return "waiting-for-car"
	case PumpDispatching:
		return "dispatching"
	case PumpInService:
		return "in-service"
	case PumpStopping:
		return "stopping"
	case PumpStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Pump is a service bay worker. It serves one car at a time until stopped.
type Pump struct {
	id      int
	area    *WaitingArea
	bays    *semaphore.Semaphore
	timing  Timing
	sampler *sampler
	clock   clockwork.Clock
	events  *dispatcher
	logger  logger.Logger

	state    atomic.Int32
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func (s *implStation) newPump(id int) *Pump {
	return &Pump{
		id:      id,
		area:    s.area,
		bays:    s.bays,
		timing:  s.cfg.Timing,
		sampler: s.sampler,
		clock:   s.clock,
		events:  s.events,
		logger:  s.logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// ID returns the bay number, starting at 1
func (p *Pump) ID() int {
	return p.id
}

// State returns the current step of the service loop
func (p *Pump) State() PumpState {
	return PumpState(p.state.Load())
}

func (p *Pump) setState(s PumpState) {
	p.state.Store(int32(s))
}

// Stop asks the pump to exit. A pump blocked waiting for a car or a bay
// wakes up at once; a car in service is finished first.
func (p *Pump) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// Done is closed when Run has returned
func (p *Pump) Done() <-chan struct{} {
	return p.done
}

// Run executes the service loop until Stop is called or ctx ends.
// Cancellation is the normal way out, so Run returns nil for it.
func (p *Pump) Run(ctx context.Context) error {
	defer close(p.done)
	defer p.setState(PumpStopped)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-p.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	p.logger.Debug(ctx, "Pump %d: started", p.id)
	for {
		p.setState(PumpIdle)
		if ctx.Err() != nil {
			break
		}
		if err := p.serveNext(ctx); err != nil {
			break
		}
	}

	p.setState(PumpStopping)
	p.logger.Debug(context.WithoutCancel(ctx), "Pump %d: stopped", p.id)
	return nil
}

// serveNext waits for a car and a free bay, then serves the oldest car.
// It returns an error only when ctx ends while waiting.
func (p *Pump) serveNext(ctx context.Context) error {
	p.setState(PumpWaitingForCar)
	if err := p.area.waiting.Acquire(ctx); err != nil {
		return err
	}
	if err := p.bays.Acquire(ctx); err != nil {
		// hand the car signal back for another pump
		_ = p.area.waiting.Release()
		return err
	}

	p.setState(PumpDispatching)
	car, ok := p.area.dequeue()
	if !ok {
		// The waiting permit had no car behind it; return the bay and drop
		// the stray permit. Releasing it again would hand the same empty
		// queue to a pump on every loop, and waiting permits must match
		// queued cars for quiescence to hold.
		p.logger.Warn(ctx, "Pump %d: %v", p.id, ErrInvariantViolation)
		p.releaseBay(ctx)
		return nil
	}
	if err := p.area.vacate(); err != nil {
		p.logger.Error(ctx, "Pump %d: release queue slot for C%d: %v", p.id, car.ID, err)
	}

	p.events.emit(Event{Type: EventPumpOccupied, PumpID: p.id, CarID: car.ID, At: p.clock.Now()})
	p.logger.Debug(ctx, "Pump %d: C%d occupied", p.id, car.ID)

	p.setState(PumpInService)
	d := p.sampler.between(p.timing.ServiceMin, p.timing.ServiceMax)
	p.events.emit(Event{Type: EventPumpServiceBegin, PumpID: p.id, CarID: car.ID, At: p.clock.Now()})
	p.clock.Sleep(d)
	p.events.emit(Event{Type: EventPumpServiceEnd, PumpID: p.id, CarID: car.ID, At: p.clock.Now()})

	p.releaseBay(ctx)
	p.events.emit(Event{Type: EventPumpFreed, PumpID: p.id, At: p.clock.Now()})
	return nil
}

func (p *Pump) releaseBay(ctx context.Context) {
	if err := p.bays.Release(); err != nil {
		p.logger.Error(ctx, "Pump %d: release bay: %v", p.id, err)
	}
}
