package station

import (
	"sync"
	"time"

	"github.com/gammazero/deque"
)

// EventType names a state change reported to handlers
type EventType string

const (
	EventCarArrived         EventType = "car-arrived"
	EventCarEnteredQueue    EventType = "car-entered-queue"
	EventCarDropped         EventType = "car-dropped"
	EventPumpOccupied       EventType = "pump-occupied"
	EventPumpServiceBegin   EventType = "pump-service-begin"
	EventPumpServiceEnd     EventType = "pump-service-end"
	EventPumpFreed          EventType = "pump-freed"
	EventSimulationComplete EventType = "simulation-complete"
)

// Event is a point-in-time notification. Fields that do not apply to the
// type are zero.
type Event struct {
	Type     EventType
	CarID    int
	PumpID   int
	Position int
	At       time.Time
}

// dispatcher delivers events to handlers in emission order on its own
// goroutine. emit only appends to an unbounded queue, so a slow handler
// delays delivery but never a car or a pump.
type dispatcher struct {
	handlers []Handler

	mu      sync.Mutex
	pending deque.Deque[Event]
	closed  bool

	notify chan struct{}
	done   chan struct{}
}

func newDispatcher(handlers []Handler) *dispatcher {
	return &dispatcher{
		handlers: handlers,
		notify:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (d *dispatcher) start() {
	go d.loop()
}

func (d *dispatcher) emit(e Event) {
	if len(d.handlers) == 0 {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.pending.PushBack(e)
	d.mu.Unlock()

	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// close stops accepting events and waits until everything queued so far
// has been delivered.
func (d *dispatcher) close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.mu.Unlock()

	select {
	case d.notify <- struct{}{}:
	default:
	}
	<-d.done
}

func (d *dispatcher) loop() {
	defer close(d.done)

	for range d.notify {
		for {
			d.mu.Lock()
			if d.pending.Len() == 0 {
				closed := d.closed
				d.mu.Unlock()
				if closed {
					return
				}
				break
			}
			e := d.pending.PopFront()
			d.mu.Unlock()

			for _, h := range d.handlers {
				h.Handle(e)
			}
		}
	}
}
