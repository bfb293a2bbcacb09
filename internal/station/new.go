package station

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"github.com/nguyentantai21042004/pump-station/pkg/semaphore"
)

const (
	minSize = 1
	maxSize = 10

	// DefaultPumps is used when no pump count is configured
	DefaultPumps = 3
	// DefaultQueueCapacity is used when no queue capacity is configured
	DefaultQueueCapacity = 5
)

// AdmissionPolicy decides what an arriving car does when the waiting area is full
type AdmissionPolicy string

const (
	// AdmissionBlock makes the car wait for a free slot
	AdmissionBlock AdmissionPolicy = "block"
	// AdmissionDrop turns the car away
	AdmissionDrop AdmissionPolicy = "drop"
)

// Config describes a station
type Config struct {
	Pumps         int
	QueueCapacity int
	Admission     AdmissionPolicy
	Timing        Timing
}

// Option customises a station
type Option func(*implStation)

// WithClock replaces the real clock, mainly for tests
func WithClock(c clockwork.Clock) Option {
	return func(s *implStation) {
		s.clock = c
	}
}

// WithHandler registers an event handler
func WithHandler(h Handler) Option {
	return func(s *implStation) {
		s.handlers = append(s.handlers, h)
	}
}

// WithSeed fixes the source used for service and arrival durations
func WithSeed(seed uint64) Option {
	return func(s *implStation) {
		s.sampler = newSampler(seed)
	}
}

type implStation struct {
	cfg      Config
	warnings []*ConfigurationError
	logger   logger.Logger
	clock    clockwork.Clock
	sampler  *sampler
	handlers []Handler
	events   *dispatcher

	area  *WaitingArea
	bays  *semaphore.Semaphore
	pumps []*Pump

	started atomic.Bool
}

// New creates a station. Pump count and queue capacity outside [1,10] are
// clamped to the nearest bound; every substitution is logged and kept in
// Warnings().
func New(cfg Config, log logger.Logger, opts ...Option) Station {
	s := &implStation{
		logger: log,
		clock:  clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sampler == nil {
		s.sampler = newSampler(uint64(time.Now().UnixNano()))
	}

	ctx := context.Background()
	cfg.Pumps = s.clamp(ctx, "pumps", cfg.Pumps)
	cfg.QueueCapacity = s.clamp(ctx, "queue capacity", cfg.QueueCapacity)
	if cfg.Admission != AdmissionDrop {
		cfg.Admission = AdmissionBlock
	}
	cfg.Timing = cfg.Timing.withDefaults()
	s.cfg = cfg

	// sizes are in range here, so construction cannot fail
	s.area = mustWaitingArea(cfg.QueueCapacity)
	s.bays = mustSemaphore(cfg.Pumps, cfg.Pumps)
	s.events = newDispatcher(s.handlers)

	return s
}

// ClampSize limits a pump count or queue capacity to [1,10]
func ClampSize(v int) int {
	switch {
	case v < minSize:
		return minSize
	case v > maxSize:
		return maxSize
	default:
		return v
	}
}

func (s *implStation) clamp(ctx context.Context, field string, v int) int {
	applied := ClampSize(v)
	if applied == v {
		return v
	}

	cerr := &ConfigurationError{Field: field, Value: v, Applied: applied}
	s.warnings = append(s.warnings, cerr)
	s.logger.Warn(ctx, "Invalid configuration: %v", cerr)
	return applied
}

func (s *implStation) Pumps() int {
	return s.cfg.Pumps
}

func (s *implStation) QueueCapacity() int {
	return s.cfg.QueueCapacity
}

func (s *implStation) Warnings() []*ConfigurationError {
	return s.warnings
}

func mustSemaphore(initial, max int) *semaphore.Semaphore {
	sem, err := semaphore.New(initial, max)
	if err != nil {
		panic(fmt.Sprintf("station: %v", err))
	}
	return sem
}
