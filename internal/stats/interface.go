package stats

import "github.com/nguyentantai21042004/pump-station/internal/station"

// Collector aggregates station events into run statistics
type Collector interface {
	station.Handler
	// Summary returns the statistics gathered so far
	Summary() Summary
}
