package stats

import (
	"sync"
	"time"
)

type carRecord struct {
	arrived  time.Time
	queued   time.Time
	begin    time.Time
	pumpID   int
	services int
}

type pumpRecord struct {
	served int
	busy   time.Duration
	car    int
}

type implCollector struct {
	mu sync.Mutex

	pumps    int
	capacity int

	cars     map[int]*carRecord
	pumpRecs map[int]*pumpRecord

	waiting    int
	peakQueue  int
	arrived    int
	served     int
	dropped    int
	totalWait  time.Duration
	maxWait    time.Duration
	totalServe time.Duration

	firstEvent time.Time
	completeAt time.Time
	violations []string
}

// New creates a Collector for a station with the given pump count and queue capacity
func New(pumps, queueCapacity int) Collector {
	return &implCollector{
		pumps:    pumps,
		capacity: queueCapacity,
		cars:     make(map[int]*carRecord),
		pumpRecs: make(map[int]*pumpRecord),
	}
}
