package stats

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/pump-station/internal/station"
)

// PumpSummary is the share of work done by one bay
type PumpSummary struct {
	ID     int
	Served int
	Busy   time.Duration
}

// Summary describes a finished or running simulation
type Summary struct {
	Pumps         int
	QueueCapacity int
	Arrived       int
	Served        int
	Dropped       int
	Waiting       int
	PeakQueue     int
	AvgWait       time.Duration
	MaxWait       time.Duration
	AvgService    time.Duration
	Duration      time.Duration
	Complete      bool
	PerPump       []PumpSummary
	Violations    []string
	// Warnings lists configuration values the station replaced
	Warnings []string
}

// Handle records one event. Events must arrive in emission order.
func (c *implCollector) Handle(e station.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.firstEvent.IsZero() {
		c.firstEvent = e.At
	}

	switch e.Type {
	case station.EventCarArrived:
		c.arrived++
		c.car(e.CarID).arrived = e.At

	case station.EventCarEnteredQueue:
		c.car(e.CarID).queued = e.At
		c.waiting++
		if e.Position > c.peakQueue {
			c.peakQueue = e.Position
		}
		if e.Position > c.capacity {
			c.violate("C%d entered at position %d, capacity is %d", e.CarID, e.Position, c.capacity)
		}

	case station.EventCarDropped:
		c.dropped++

	case station.EventPumpOccupied:
		c.waiting--
		p := c.pump(e.PumpID)
		if p.car != 0 {
			c.violate("pump %d took C%d while serving C%d", e.PumpID, e.CarID, p.car)
		}
		p.car = e.CarID

	case station.EventPumpServiceBegin:
		car := c.car(e.CarID)
		car.services++
		if car.services > 1 {
			c.violate("C%d began service %d times", e.CarID, car.services)
		}
		car.begin = e.At
		car.pumpID = e.PumpID
		if !car.queued.IsZero() {
			wait := e.At.Sub(car.queued)
			c.totalWait += wait
			if wait > c.maxWait {
				c.maxWait = wait
			}
		}

	case station.EventPumpServiceEnd:
		c.served++
		car := c.car(e.CarID)
		service := e.At.Sub(car.begin)
		c.totalServe += service
		p := c.pump(e.PumpID)
		p.served++
		p.busy += service

	case station.EventPumpFreed:
		c.pump(e.PumpID).car = 0

	case station.EventSimulationComplete:
		c.completeAt = e.At
	}
}

func (c *implCollector) car(id int) *carRecord {
	r, ok := c.cars[id]
	if !ok {
		r = &carRecord{}
		c.cars[id] = r
	}
	return r
}

func (c *implCollector) pump(id int) *pumpRecord {
	r, ok := c.pumpRecs[id]
	if !ok {
		r = &pumpRecord{}
		c.pumpRecs[id] = r
	}
	return r
}

func (c *implCollector) violate(format string, args ...interface{}) {
	c.violations = append(c.violations, fmt.Sprintf(format, args...))
}

// Summary returns a snapshot of the statistics
func (c *implCollector) Summary() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Summary{
		Pumps:         c.pumps,
		QueueCapacity: c.capacity,
		Arrived:       c.arrived,
		Served:        c.served,
		Dropped:       c.dropped,
		Waiting:       c.waiting,
		PeakQueue:     c.peakQueue,
		MaxWait:       c.maxWait,
		Complete:      !c.completeAt.IsZero(),
		Violations:    append([]string(nil), c.violations...),
	}
	if c.served > 0 {
		s.AvgWait = c.totalWait / time.Duration(c.served)
		s.AvgService = c.totalServe / time.Duration(c.served)
	}
	if s.Complete {
		s.Duration = c.completeAt.Sub(c.firstEvent)
	}

	for id := 1; id <= c.pumps; id++ {
		ps := PumpSummary{ID: id}
		if r, ok := c.pumpRecs[id]; ok {
			ps.Served = r.served
			ps.Busy = r.busy
		}
		s.PerPump = append(s.PerPump, ps)
	}
	return s
}
