package station

import "context"

// Station runs one service station simulation
type Station interface {
	// StartSimulation serves numCars cars and returns once every car has
	// been admitted and served and all pumps have stopped.
	StartSimulation(ctx context.Context, numCars int) error
	// Pumps returns the effective number of pumps after validation
	Pumps() int
	// QueueCapacity returns the effective waiting area capacity after validation
	QueueCapacity() int
	// Warnings returns the configuration substitutions made by New
	Warnings() []*ConfigurationError
}

// Handler consumes station events. Handle is called from a single
// dispatcher goroutine, in emission order.
type Handler interface {
	Handle(e Event)
}

// HandlerFunc adapts a function to the Handler interface
type HandlerFunc func(e Event)

func (f HandlerFunc) Handle(e Event) {
	f(e)
}
