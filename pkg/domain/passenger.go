package domain

import (
	"cruise/pkg/serrors"
	"strings"
)

// PassengerPrefix marks a record whose first field is a passenger code.
const PassengerPrefix = "P"

// passengerFields is the number of fields of a passenger record:
// code, first name, last name.
const passengerFields = 3

// Passenger is an immutable passenger identity. Two passengers are the same
// passenger when their codes match.
type Passenger struct {
	// Code uniquely identifies the passenger.
	Code string
	// FirstName is the passenger's given name.
	FirstName string
	// LastName is the passenger's family name.
	LastName string
}

// NewPassenger returns a passenger with the given identity.
func NewPassenger(code, firstName, lastName string) *Passenger {
	return &Passenger{Code: code, FirstName: firstName, LastName: lastName}
}

// ParsePassenger builds a passenger from a record of exactly three fields.
func ParsePassenger(record []string) (*Passenger, error) {
	if len(record) != passengerFields {
		return nil, serrors.With(serrors.ErrMalformedRecord,
			"passenger record %q has %d fields, expected %d",
			strings.Join(record, ","), len(record), passengerFields)
	}

	return NewPassenger(record[0], record[1], record[2]), nil
}

// Equal reports whether p and other denote the same passenger.
func (p *Passenger) Equal(other *Passenger) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.Code == other.Code
}

func (p *Passenger) String() string {
	return p.Code + " " + p.FirstName + " " + p.LastName
}
