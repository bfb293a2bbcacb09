package station

import (
	"context"
)

// arrive runs the admission protocol for one car. It returns a non-nil
// error only when ctx ends while the car waits for a free slot.
func (s *implStation) arrive(ctx context.Context, car Car) error {
	s.events.emit(Event{Type: EventCarArrived, CarID: car.ID, At: car.ArrivedAt})
	s.logger.Debug(ctx, "C%d arrived", car.ID)

	entered := func(position int) {
		s.events.emit(Event{Type: EventCarEnteredQueue, CarID: car.ID, Position: position, At: s.clock.Now()})
	}

	if s.cfg.Admission == AdmissionDrop {
		if !s.area.tryAdmit(car, entered) {
			s.logger.Info(ctx, "C%d left, queue full", car.ID)
			s.events.emit(Event{Type: EventCarDropped, CarID: car.ID, At: s.clock.Now()})
		}
		return nil
	}

	if err := s.area.admit(ctx, car, entered); err != nil {
		s.logger.Debug(ctx, "C%d gave up waiting for a slot: %v", car.ID, err)
		return err
	}
	return nil
}
