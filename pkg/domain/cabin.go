package domain

import (
	"cmp"
	"cruise/pkg/serrors"
	"math"
	"strconv"
	"strings"
)

// CabinPrefix marks a record whose first field is a cabin code.
const CabinPrefix = "CAB"

// DeluxeMultiplier scales the base price of deluxe cabins. It is 1: the
// amenity tags a deluxe cabin without changing what it costs.
const DeluxeMultiplier = 1.0

const (
	baseCabinFields    = 4
	variantCabinFields = 5
)

// CabinKind tags the variant of a cabin.
type CabinKind string

const (
	// CabinKindBase is a plain cabin priced at its base price.
	CabinKindBase CabinKind = "base"
	// CabinKindAnimal is a cabin that accepts animals for an extra fee.
	CabinKindAnimal CabinKind = "animal"
	// CabinKindDeluxe is a cabin tagged with an amenity.
	CabinKindDeluxe CabinKind = "deluxe"
)

// Cabin is a bookable cabin. Its variant is fixed at construction by Kind;
// AnimalFee is only meaningful for animal cabins and Amenity only for deluxe
// ones.
type Cabin struct {
	// Code uniquely identifies the cabin within a cruise.
	Code string
	// Deck is the deck the cabin is on.
	Deck string
	// Capacity is the number of berths, at least 1.
	Capacity int
	// BasePrice is the price before any variant surcharge.
	BasePrice float64
	// Kind is the cabin variant.
	Kind CabinKind
	// AnimalFee is the surcharge of an animal cabin.
	AnimalFee int
	// Amenity is the free-text tag of a deluxe cabin.
	Amenity string

	// passenger is the occupant. The cabin does not own it.
	passenger *Passenger
}

// NewBaseCabin returns a base cabin.
func NewBaseCabin(code, deck string, capacity int, basePrice float64) *Cabin {
	return &Cabin{Code: code, Deck: deck, Capacity: capacity, BasePrice: basePrice, Kind: CabinKindBase}
}

// NewAnimalCabin returns an animal cabin charging fee on top of basePrice.
func NewAnimalCabin(code, deck string, capacity int, basePrice float64, fee int) *Cabin {
	c := NewBaseCabin(code, deck, capacity, basePrice)
	c.Kind = CabinKindAnimal
	c.AnimalFee = fee

	return c
}

// NewDeluxeCabin returns a deluxe cabin tagged with amenity.
func NewDeluxeCabin(code, deck string, capacity int, basePrice float64, amenity string) *Cabin {
	c := NewBaseCabin(code, deck, capacity, basePrice)
	c.Kind = CabinKindDeluxe
	c.Amenity = amenity

	return c
}

// ParseCabin builds a cabin from a record. The record shape selects the variant:
//   - 4 fields (code, deck, capacity, base price): base cabin
//   - 5 fields with a digits-only 5th field: animal cabin, the 5th field is the fee
//   - 5 fields otherwise: deluxe cabin, the 5th field is the amenity
//
// Any other shape, or a capacity or base price that does not parse, is a
// malformed record.
func ParseCabin(record []string) (*Cabin, error) {
	if len(record) != baseCabinFields && len(record) != variantCabinFields {
		return nil, serrors.With(serrors.ErrMalformedRecord,
			"cabin record %q has %d fields, expected %d or %d",
			strings.Join(record, ","), len(record), baseCabinFields, variantCabinFields)
	}

	code, deck := record[0], record[1]

	capacity, err := strconv.Atoi(record[2])
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformedRecord, err, "cabin %s: invalid capacity %q", code, record[2])
	}
	if capacity < 1 {
		return nil, serrors.With(serrors.ErrMalformedRecord, "cabin %s: capacity must be at least 1, got %d", code, capacity)
	}

	basePrice, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformedRecord, err, "cabin %s: invalid base price %q", code, record[3])
	}
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) {
		return nil, serrors.With(serrors.ErrMalformedRecord, "cabin %s: base price %q is not a finite number", code, record[3])
	}
	if basePrice < 0 {
		return nil, serrors.With(serrors.ErrMalformedRecord, "cabin %s: negative base price %q", code, record[3])
	}

	if len(record) == baseCabinFields {
		return NewBaseCabin(code, deck, capacity, basePrice), nil
	}

	extra := record[4]
	if !isDigits(extra) {
		return NewDeluxeCabin(code, deck, capacity, basePrice, extra), nil
	}

	fee, err := strconv.Atoi(extra)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrMalformedRecord, err, "cabin %s: invalid animal fee %q", code, extra)
	}

	return NewAnimalCabin(code, deck, capacity, basePrice, fee), nil
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// Price returns the effective price of the cabin for its variant.
func (c *Cabin) Price() float64 {
	switch c.Kind {
	case CabinKindAnimal:
		return c.BasePrice + float64(c.AnimalFee)
	case CabinKindDeluxe:
		return c.BasePrice * DeluxeMultiplier
	default:
		return c.BasePrice
	}
}

// IsAvailable reports whether no passenger occupies the cabin.
func (c *Cabin) IsAvailable() bool { return c.passenger == nil }

// Passenger returns the occupant, or nil.
func (c *Cabin) Passenger() *Passenger { return c.passenger }

// Assign makes p the occupant of the cabin. An occupied cabin is never
// overwritten; uniqueness of the passenger across cabins is the registry's job.
func (c *Cabin) Assign(p *Passenger) error {
	if c.passenger != nil {
		return serrors.With(serrors.ErrAlreadyAssigned,
			"cabin %s is already assigned to passenger %s", c.Code, c.passenger.Code)
	}
	c.passenger = p

	return nil
}

// Clone returns a copy of the cabin that shares its occupant.
func (c *Cabin) Clone() *Cabin {
	clone := *c

	return &clone
}

func (c *Cabin) String() string {
	var b strings.Builder
	b.WriteString(c.Code)
	b.WriteString(" deck=")
	b.WriteString(c.Deck)
	b.WriteString(" capacity=")
	b.WriteString(strconv.Itoa(c.Capacity))
	b.WriteString(" price=")
	b.WriteString(FormatPrice(c.Price()))

	switch c.Kind {
	case CabinKindAnimal:
		b.WriteString(" animal_fee=")
		b.WriteString(strconv.Itoa(c.AnimalFee))
	case CabinKindDeluxe:
		b.WriteString(" amenity=")
		b.WriteString(c.Amenity)
	}

	return b.String()
}

// FormatPrice renders a price with the fewest digits that round-trip.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

// ByPrice orders cabins by ascending price. Pair it with a stable sort to keep
// equally priced cabins in their original order.
func ByPrice(a, b *Cabin) int {
	return cmp.Compare(a.Price(), b.Price())
}
