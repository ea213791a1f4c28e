package cruise

import (
	"context"
	"cruise/pkg/domain"
	"cruise/pkg/rowreader"
	"sync"
)

// synchronized guards a Registry with a read-write lock. Mutations run under
// the write lock as one unit, which keeps the whole assignment check-and-set
// atomic. Reads hand out cabin copies so callers never observe a cabin while
// it is being assigned.
type synchronized struct {
	mu    sync.RWMutex
	inner Registry
}

// NewSynchronized wraps inner so it can be shared between goroutines. inner
// must not be used directly afterwards.
func NewSynchronized(inner Registry) Registry {
	return &synchronized{inner: inner}
}

func (s *synchronized) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inner.Name()
}

func (s *synchronized) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inner.SetName(name)
}

func (s *synchronized) Load(ctx context.Context, reader rowreader.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inner.Load(ctx, reader)
}

func (s *synchronized) FindCabin(code string) (*domain.Cabin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cabin, ok := s.inner.FindCabin(code)
	if !ok {
		return nil, false
	}

	return cabin.Clone(), true
}

func (s *synchronized) FindPassenger(code string) (*domain.Passenger, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inner.FindPassenger(code)
}

func (s *synchronized) AssignPassenger(ctx context.Context, cabinCode, passengerCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inner.AssignPassenger(ctx, cabinCode, passengerCode)
}

func (s *synchronized) Cabins() []*domain.Cabin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.inner.Cabins())
}

func (s *synchronized) Passengers() []*domain.Passenger {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inner.Passengers()
}

func (s *synchronized) CabinsByPrice() []*domain.Cabin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.inner.CabinsByPrice())
}

func (s *synchronized) AvailableCabins() []*domain.Cabin {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneAll(s.inner.AvailableCabins())
}

func (s *synchronized) ListPassengers() []PassengerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inner.ListPassengers()
}

func (s *synchronized) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.inner.Summary()
}

func cloneAll(cabins []*domain.Cabin) []*domain.Cabin {
	clones := make([]*domain.Cabin, len(cabins))
	for i, cabin := range cabins {
		clones[i] = cabin.Clone()
	}

	return clones
}
