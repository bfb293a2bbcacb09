package station

import (
	"context"
	"time"

	"github.com/gammazero/deque"
	"github.com/nguyentantai21042004/pump-station/pkg/semaphore"
)

// Car is a customer waiting for or receiving service
type Car struct {
	ID        int
	ArrivedAt time.Time
}

// WaitingArea is the bounded FIFO in front of the pumps. The queue is only
// touched while holding mutex; its size is tied to the available and
// waiting permits, which move in pairs with every enqueue and dequeue.
type WaitingArea struct {
	capacity int
	cars     deque.Deque[Car]

	mutex     *semaphore.Semaphore
	available *semaphore.Semaphore
	waiting   *semaphore.Semaphore

	// dequeued, when set, sees every removed car under the mutex
	dequeued func(Car)
}

// NewWaitingArea creates an empty waiting area with the given capacity
func NewWaitingArea(capacity int) (*WaitingArea, error) {
	mutex, err := semaphore.New(1, 1)
	if err != nil {
		return nil, err
	}
	available, err := semaphore.New(capacity, capacity)
	if err != nil {
		return nil, err
	}
	waiting, err := semaphore.New(0, capacity)
	if err != nil {
		return nil, err
	}

	return &WaitingArea{
		capacity:  capacity,
		mutex:     mutex,
		available: available,
		waiting:   waiting,
	}, nil
}

func mustWaitingArea(capacity int) *WaitingArea {
	a, err := NewWaitingArea(capacity)
	if err != nil {
		panic("station: " + err.Error())
	}
	return a
}

// Capacity returns the maximum number of waiting cars
func (a *WaitingArea) Capacity() int {
	return a.capacity
}

// AvailableSlots returns the free capacity permits. Observability only.
func (a *WaitingArea) AvailableSlots() int {
	return a.available.Available()
}

// lock takes the mutual-exclusion permit. It ignores cancellation: the
// holder never blocks while holding it, so the wait is always short.
func (a *WaitingArea) lock() {
	_ = a.mutex.Acquire(context.Background())
}

func (a *WaitingArea) unlock() {
	_ = a.mutex.Release()
}

// admit reserves a slot, blocking while the area is full, then enqueues car.
// Cancellation is honoured only while waiting for the slot; once a slot is
// reserved the car always enters the queue.
func (a *WaitingArea) admit(ctx context.Context, car Car, entered func(position int)) error {
	if err := a.available.Acquire(ctx); err != nil {
		return err
	}
	a.enqueue(car, entered)
	return nil
}

// tryAdmit is the drop policy: it enqueues car only if a slot is free now.
func (a *WaitingArea) tryAdmit(car Car, entered func(position int)) bool {
	if !a.available.TryAcquire() {
		return false
	}
	a.enqueue(car, entered)
	return true
}

// enqueue appends a car whose slot is already reserved and makes it
// visible to the pumps. entered runs under the mutex with the car's
// 1-based position, before any pump can see the car.
func (a *WaitingArea) enqueue(car Car, entered func(position int)) {
	a.lock()
	a.cars.PushBack(car)
	if entered != nil {
		entered(a.cars.Len())
	}
	a.unlock()

	// cannot overflow: one waiting permit per queued car, at most capacity cars
	_ = a.waiting.Release()
}

// dequeue removes the oldest car. ok is false when the queue is empty.
func (a *WaitingArea) dequeue() (Car, bool) {
	a.lock()
	defer a.unlock()

	if a.cars.Len() == 0 {
		return Car{}, false
	}
	car := a.cars.PopFront()
	if a.dequeued != nil {
		a.dequeued(car)
	}
	return car, true
}

// vacate frees the slot of a car that has left the queue
func (a *WaitingArea) vacate() error {
	return a.available.Release()
}

// Len returns the number of waiting cars
func (a *WaitingArea) Len() int {
	a.lock()
	defer a.unlock()
	return a.cars.Len()
}

// Snapshot returns the waiting car ids, oldest first
func (a *WaitingArea) Snapshot() []int {
	a.lock()
	defer a.unlock()

	ids := make([]int, 0, a.cars.Len())
	for i := 0; i < a.cars.Len(); i++ {
		ids = append(ids, a.cars.At(i).ID)
	}
	return ids
}

// quiescent reports whether the queue is empty and every bay permit is
// back. Both reads happen under the queue mutex; a pump takes its bay
// permit before it dequeues, so an in-flight dispatch always shows up as
// either a queued car or a missing bay permit.
func (a *WaitingArea) quiescent(bays *semaphore.Semaphore, pumps int) bool {
	a.lock()
	defer a.unlock()
	return a.cars.Len() == 0 && bays.Available() == pumps
}
