package console

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/pump-station/internal/station"
)

// Handle logs the event
func (p *implPrinter) Handle(e station.Event) {
	line := Format(e)
	if line == "" {
		return
	}
	if p.prefix != "" {
		line = "[" + p.prefix + "] " + line
	}
	p.logger.Info(context.Background(), "%s", line)
}

// Format renders an event the way the station operator reads it
func Format(e station.Event) string {
	switch e.Type {
	case station.EventCarArrived:
		return fmt.Sprintf("C%d arrived", e.CarID)
	case station.EventCarEnteredQueue:
		if e.Position == 1 {
			return fmt.Sprintf("C%d entered queue", e.CarID)
		}
		return fmt.Sprintf("C%d arrived and waiting (position %d)", e.CarID, e.Position)
	case station.EventCarDropped:
		return fmt.Sprintf("C%d left - queue full", e.CarID)
	case station.EventPumpOccupied:
		return fmt.Sprintf("Pump %d: C%d Occupied", e.PumpID, e.CarID)
	case station.EventPumpServiceBegin:
		return fmt.Sprintf("Pump %d: C%d begins service at Bay %d", e.PumpID, e.CarID, e.PumpID)
	case station.EventPumpServiceEnd:
		return fmt.Sprintf("Pump %d: C%d finishes service", e.PumpID, e.CarID)
	case station.EventPumpFreed:
		return fmt.Sprintf("Pump %d: Bay %d is now free", e.PumpID, e.PumpID)
	case station.EventSimulationComplete:
		return "All cars processed; simulation ends"
	default:
		return ""
	}
}
