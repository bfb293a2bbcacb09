package station

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Timing holds the pacing of a run. Service and arrival durations are drawn
// uniformly from [Min, Max).
type Timing struct {
	ServiceMin   time.Duration
	ServiceMax   time.Duration
	ArrivalMin   time.Duration
	ArrivalMax   time.Duration
	PollInterval time.Duration
}

// DefaultTiming returns the pacing of the reference station: service takes
// 2-5s, cars arrive every 1-3s and quiescence is polled once a second.
func DefaultTiming() Timing {
	return Timing{
		ServiceMin:   2 * time.Second,
		ServiceMax:   5 * time.Second,
		ArrivalMin:   1 * time.Second,
		ArrivalMax:   3 * time.Second,
		PollInterval: time.Second,
	}
}

func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.ServiceMin < 0 {
		t.ServiceMin = 0
	}
	if t.ArrivalMin < 0 {
		t.ArrivalMin = 0
	}
	if t.ServiceMax < t.ServiceMin {
		t.ServiceMax = t.ServiceMin
	}
	if t.ArrivalMax < t.ArrivalMin {
		t.ArrivalMax = t.ArrivalMin
	}
	if t.PollInterval <= 0 {
		t.PollInterval = def.PollInterval
	}
	return t
}

// sampler draws durations from a single seeded source shared by all tasks.
type sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSampler(seed uint64) *sampler {
	return &sampler{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *sampler) between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return min + time.Duration(s.rng.Int64N(int64(max-min)))
}
