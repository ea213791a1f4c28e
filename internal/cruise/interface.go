package cruise

import (
	"context"
	"cruise/pkg/domain"
	"cruise/pkg/rowreader"
)

// Registry owns the cabins and passengers of one cruise and enforces the
// assignment rules between them.
type Registry interface {
	Name() string
	SetName(name string)

	Load(ctx context.Context, reader rowreader.Reader) error

	FindCabin(code string) (*domain.Cabin, bool)
	FindPassenger(code string) (*domain.Passenger, bool)
	AssignPassenger(ctx context.Context, cabinCode, passengerCode string) error

	Cabins() []*domain.Cabin
	Passengers() []*domain.Passenger
	CabinsByPrice() []*domain.Cabin
	AvailableCabins() []*domain.Cabin
	ListPassengers() []PassengerEntry
	Summary() Summary
}
