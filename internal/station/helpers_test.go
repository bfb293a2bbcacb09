package station

import (
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/pump-station/internal/logger"
	"go.uber.org/zap/zaptest"
)

// fastTiming keeps simulations in the millisecond range
func fastTiming() Timing {
	return Timing{
		ServiceMin:   time.Millisecond,
		ServiceMax:   3 * time.Millisecond,
		ArrivalMin:   0,
		ArrivalMax:   time.Millisecond,
		PollInterval: 2 * time.Millisecond,
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Handle(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) ofType(t EventType) []Event {
	var out []Event
	for _, e := range r.all() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestStation(t *testing.T, cfg Config, opts ...Option) (*implStation, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]Option{WithHandler(rec), WithSeed(42)}, opts...)
	s := New(cfg, logger.NewFromZap(zaptest.NewLogger(t).Sugar()), opts...)
	return s.(*implStation), rec
}
