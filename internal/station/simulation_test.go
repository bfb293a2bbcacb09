package station

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

// assertDrained checks the resting state after a run: empty queue, every
// capacity and bay permit returned, no waiting-car permit left over, all
// pumps stopped.
func assertDrained(t *testing.T, s *implStation) {
	t.Helper()
	assert.Equal(t, s.area.Len(), 0)
	assert.Equal(t, s.area.AvailableSlots(), s.cfg.QueueCapacity)
	assert.Equal(t, s.area.waiting.Available(), 0)
	assert.Equal(t, s.bays.Available(), s.cfg.Pumps)
	for _, p := range s.pumps {
		assert.Equal(t, p.State(), PumpStopped, "pump %d", p.ID())
	}
}

// assertServedOnce checks that every car in ids began and ended service
// exactly once, and that no pump served two cars at the same time.
func assertServedOnce(t *testing.T, rec *recorder, ids []int) {
	t.Helper()

	begins := map[int]int{}
	ends := map[int]int{}
	busy := map[int]int{}
	for _, e := range rec.all() {
		switch e.Type {
		case EventPumpServiceBegin:
			begins[e.CarID]++
			if other, ok := busy[e.PumpID]; ok {
				t.Errorf("pump %d began C%d while serving C%d", e.PumpID, e.CarID, other)
			}
			busy[e.PumpID] = e.CarID
		case EventPumpServiceEnd:
			ends[e.CarID]++
			delete(busy, e.PumpID)
		}
	}

	for _, id := range ids {
		assert.Equal(t, begins[id], 1, "C%d service begin", id)
		assert.Equal(t, ends[id], 1, "C%d service end", id)
	}
	assert.Equal(t, len(begins), len(ids))
}

func carIDs(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

func TestSimulationSinglePumpSingleSlot(t *testing.T) {
	s, rec := newTestStation(t, Config{Pumps: 1, QueueCapacity: 1, Timing: fastTiming()})

	assert.NilError(t, s.StartSimulation(context.Background(), 3))

	assertDrained(t, s)
	assertServedOnce(t, rec, carIDs(3))

	inService := 0
	for _, e := range rec.all() {
		switch e.Type {
		case EventPumpServiceBegin:
			inService++
			assert.Assert(t, inService <= 1, "more than one car in service")
		case EventPumpServiceEnd:
			inService--
		case EventCarEnteredQueue:
			assert.Assert(t, e.Position <= 1, "C%d entered at position %d", e.CarID, e.Position)
		}
	}

	// a single pump serves in queue order
	var entered, served []int
	for _, e := range rec.ofType(EventCarEnteredQueue) {
		entered = append(entered, e.CarID)
	}
	for _, e := range rec.ofType(EventPumpOccupied) {
		served = append(served, e.CarID)
	}
	assert.DeepEqual(t, served, entered)

	events := rec.all()
	assert.Equal(t, events[len(events)-1].Type, EventSimulationComplete)
}

func TestSimulationCapacityUnderLoad(t *testing.T) {
	timing := fastTiming()
	timing.ArrivalMax = 0

	s, rec := newTestStation(t, Config{Pumps: 4, QueueCapacity: 2, Timing: timing})

	assert.NilError(t, s.StartSimulation(context.Background(), 40))

	assertDrained(t, s)
	assertServedOnce(t, rec, carIDs(40))
	for _, e := range rec.ofType(EventCarEnteredQueue) {
		assert.Assert(t, e.Position >= 1 && e.Position <= 2, "C%d entered at position %d", e.CarID, e.Position)
	}
	assert.Equal(t, len(rec.ofType(EventCarArrived)), 40)
	assert.Equal(t, len(rec.ofType(EventPumpFreed)), 40)
	assert.Equal(t, len(rec.ofType(EventSimulationComplete)), 1)
}

func TestSimulationClampedQueue(t *testing.T) {
	s, rec := newTestStation(t, Config{Pumps: 2, QueueCapacity: 0, Timing: fastTiming()})

	assert.Equal(t, s.QueueCapacity(), 1)
	assert.Equal(t, len(s.Warnings()), 1)

	assert.NilError(t, s.StartSimulation(context.Background(), 5))
	assertDrained(t, s)
	assertServedOnce(t, rec, carIDs(5))
}

func TestSimulationZeroCars(t *testing.T) {
	s, rec := newTestStation(t, Config{Pumps: 3, QueueCapacity: 5, Timing: fastTiming()})

	assert.NilError(t, s.StartSimulation(context.Background(), 0))
	assertDrained(t, s)

	events := rec.all()
	assert.Equal(t, len(events), 1)
	assert.Equal(t, events[0].Type, EventSimulationComplete)
}

func TestSimulationRejectsBadCalls(t *testing.T) {
	s, _ := newTestStation(t, Config{Pumps: 1, QueueCapacity: 1, Timing: fastTiming()})

	err := s.StartSimulation(context.Background(), -1)
	assert.Assert(t, errors.Is(err, ErrNegativeCars))

	assert.NilError(t, s.StartSimulation(context.Background(), 1))
	err = s.StartSimulation(context.Background(), 1)
	assert.Assert(t, errors.Is(err, ErrAlreadyStarted))
}

func TestSimulationDropPolicy(t *testing.T) {
	timing := fastTiming()
	timing.ArrivalMax = 0
	timing.ServiceMin = 20 * time.Millisecond
	timing.ServiceMax = 20 * time.Millisecond

	s, rec := newTestStation(t, Config{Pumps: 1, QueueCapacity: 1, Admission: AdmissionDrop, Timing: timing})

	assert.NilError(t, s.StartSimulation(context.Background(), 6))
	assertDrained(t, s)

	dropped := rec.ofType(EventCarDropped)
	served := rec.ofType(EventPumpServiceEnd)
	assert.Assert(t, len(dropped) > 0, "no car was turned away")
	assert.Equal(t, len(dropped)+len(served), 6)

	var servedIDs []int
	for _, e := range served {
		servedIDs = append(servedIDs, e.CarID)
	}
	assertServedOnce(t, rec, servedIDs)
}

func TestSimulationCancelled(t *testing.T) {
	timing := fastTiming()
	timing.ArrivalMax = 0
	timing.ServiceMin = 30 * time.Millisecond
	timing.ServiceMax = 30 * time.Millisecond

	s, rec := newTestStation(t, Config{Pumps: 1, QueueCapacity: 1, Timing: timing})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.StartSimulation(ctx, 10)
	}()

	select {
	case err := <-done:
		assert.Assert(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("StartSimulation did not return after cancellation")
	}

	// no permit leaked: queued cars plus free slots still add up
	assert.Equal(t, s.area.AvailableSlots()+s.area.Len(), s.cfg.QueueCapacity)
	assert.Equal(t, s.area.waiting.Available(), s.area.Len())
	assert.Equal(t, s.bays.Available(), s.cfg.Pumps)
	for _, p := range s.pumps {
		assert.Equal(t, p.State(), PumpStopped)
	}
	assert.Equal(t, len(rec.ofType(EventSimulationComplete)), 0)
}

func TestSimulationFIFOAcrossPumps(t *testing.T) {
	timing := fastTiming()
	timing.ArrivalMax = 0

	s, rec := newTestStation(t, Config{Pumps: 3, QueueCapacity: 3, Timing: timing})

	// runs under the queue mutex, so the slice needs no lock of its own
	var dequeued []int
	s.area.dequeued = func(c Car) {
		dequeued = append(dequeued, c.ID)
	}

	assert.NilError(t, s.StartSimulation(context.Background(), 30))
	assertDrained(t, s)

	var entered []int
	for _, e := range rec.ofType(EventCarEnteredQueue) {
		entered = append(entered, e.CarID)
	}
	assert.Equal(t, len(entered), 30)
	assert.DeepEqual(t, dequeued, entered)
}

// counts reads the queue length and both queue permits under the mutex
func counts(a *WaitingArea) (slots, queued, waiting int) {
	a.lock()
	defer a.unlock()
	return a.available.Available(), a.cars.Len(), a.waiting.Available()
}

func TestSimulationConservationWhileRunning(t *testing.T) {
	timing := fastTiming()
	timing.ArrivalMax = 0

	s, rec := newTestStation(t, Config{Pumps: 4, QueueCapacity: 2, Timing: timing})

	var (
		mu       sync.Mutex
		problems []string
		samples  int
	)
	stop := make(chan struct{})
	sampled := make(chan struct{})
	go func() {
		defer close(sampled)
		for {
			select {
			case <-stop:
				return
			default:
			}

			slots, queued, waiting := counts(s.area)
			free := s.bays.Available()

			mu.Lock()
			samples++
			if slots+queued > s.cfg.QueueCapacity {
				problems = append(problems, fmt.Sprintf("slots %d + queued %d > capacity %d", slots, queued, s.cfg.QueueCapacity))
			}
			if waiting > queued {
				problems = append(problems, fmt.Sprintf("waiting permits %d > queued cars %d", waiting, queued))
			}
			if free < 0 || free > s.cfg.Pumps {
				problems = append(problems, fmt.Sprintf("free bays %d outside [0,%d]", free, s.cfg.Pumps))
			}
			mu.Unlock()

			time.Sleep(50 * time.Microsecond)
		}
	}()

	err := s.StartSimulation(context.Background(), 40)
	close(stop)
	<-sampled
	assert.NilError(t, err)

	assertDrained(t, s)
	assertServedOnce(t, rec, carIDs(40))
	assert.Assert(t, samples > 0)
	assert.Equal(t, len(problems), 0, "%v", problems)
}
