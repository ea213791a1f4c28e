package cruise

import "cruise/pkg/domain"

// PassengerEntry pairs a passenger with the code of the cabin they occupy.
// CabinCode is empty for a passenger without a cabin.
type PassengerEntry struct {
	Passenger *domain.Passenger
	CabinCode string
}

// Assigned reports whether the passenger occupies a cabin.
func (e PassengerEntry) Assigned() bool { return e.CabinCode != "" }

func (e PassengerEntry) String() string {
	if !e.Assigned() {
		return "- " + e.Passenger.String()
	}

	return "- " + e.Passenger.String() + " --> cabin " + e.CabinCode
}

// Summary counts what a registry holds.
type Summary struct {
	Name           string
	Cabins         int
	Passengers     int
	AssignedCabins int
}
