// Package cruise implements the cruise registry: it loads cabins and
// passengers from a row source, assigns passengers to cabins and reports on
// both collections.
package cruise

import (
	"context"
	"cruise/internal/config"
	"cruise/pkg/domain"
	"cruise/pkg/logger"
	"cruise/pkg/rowreader"
	"cruise/pkg/serrors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Options configure a new registry.
type Options struct {
	// Name is the initial name of the cruise.
	Name string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Name: cfg.Cruise.Name,
	}
}

// cruise is the single-owner Registry implementation. It is not safe for
// concurrent use; wrap it with NewSynchronized when it is shared.
type cruise struct {
	name string
	// cabins and passengers keep source order.
	cabins     []*domain.Cabin
	passengers []*domain.Passenger
	// assignments maps a passenger code to the code of the cabin they occupy.
	assignments map[string]string
}

// New creates an empty registry configured with options.
func New(options Options) Registry {
	return &cruise{
		name:        options.Name,
		assignments: map[string]string{},
	}
}

func (c *cruise) Name() string { return c.name }

func (c *cruise) SetName(name string) { c.name = name }

// Load replaces the registry contents with the records of reader. Records
// starting with the cabin prefix become cabins, records starting with the
// passenger prefix become passengers, anything else is skipped. Any failure
// leaves the registry empty.
func (c *cruise) Load(ctx context.Context, reader rowreader.Reader) error {
	c.cabins = nil
	c.passengers = nil
	c.assignments = map[string]string{}

	records, err := reader.ReadRecords(ctx)
	if err != nil {
		return fmt.Errorf("could not read records: %w", err)
	}

	var (
		cabins     []*domain.Cabin
		passengers []*domain.Passenger
		cabinCodes = map[string]struct{}{}
		paxCodes   = map[string]struct{}{}
		skipped    int
	)
	for i, record := range records {
		if isBlank(record) {
			continue
		}

		code := record[0]
		switch {
		case strings.HasPrefix(code, domain.CabinPrefix):
			cabin, err := domain.ParseCabin(record)
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			if _, ok := cabinCodes[cabin.Code]; ok {
				return serrors.With(serrors.ErrMalformedRecord, "record %d: duplicate cabin code %s", i+1, cabin.Code)
			}
			cabinCodes[cabin.Code] = struct{}{}
			cabins = append(cabins, cabin)
		case strings.HasPrefix(code, domain.PassengerPrefix):
			passenger, err := domain.ParsePassenger(record)
			if err != nil {
				return fmt.Errorf("record %d: %w", i+1, err)
			}
			if _, ok := paxCodes[passenger.Code]; ok {
				return serrors.With(serrors.ErrMalformedRecord,
					"record %d: duplicate passenger code %s", i+1, passenger.Code)
			}
			paxCodes[passenger.Code] = struct{}{}
			passengers = append(passengers, passenger)
		default:
			skipped++
			logger.Debug(ctx, "skipping unrecognized record", zap.Int("record", i+1), zap.String("code", code))
		}
	}

	c.cabins = cabins
	c.passengers = passengers

	logger.Info(ctx, "cruise loaded",
		zap.String("cruise", c.name),
		zap.Int("cabins", len(cabins)),
		zap.Int("passengers", len(passengers)),
		zap.Int("skipped", skipped),
	)

	return nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}

	return true
}

func (c *cruise) FindCabin(code string) (*domain.Cabin, bool) {
	for _, cabin := range c.cabins {
		if cabin.Code == code {
			return cabin, true
		}
	}

	return nil, false
}

func (c *cruise) FindPassenger(code string) (*domain.Passenger, bool) {
	for _, passenger := range c.passengers {
		if passenger.Code == code {
			return passenger, true
		}
	}

	return nil, false
}

// AssignPassenger puts a passenger in a cabin. Checks run in a fixed order:
// the cabin must exist, then the passenger, then the cabin must be free and
// finally the passenger must not already occupy any cabin.
func (c *cruise) AssignPassenger(ctx context.Context, cabinCode, passengerCode string) error {
	cabin, ok := c.FindCabin(cabinCode)
	if !ok {
		return serrors.With(serrors.ErrCabinNotFound, "cabin %s not found", cabinCode)
	}
	passenger, ok := c.FindPassenger(passengerCode)
	if !ok {
		return serrors.With(serrors.ErrPassengerNotFound, "passenger %s not found", passengerCode)
	}
	if !cabin.IsAvailable() {
		return serrors.With(serrors.ErrCabinUnavailable, "cabin %s is not available", cabinCode)
	}
	for _, other := range c.cabins {
		if passenger.Equal(other.Passenger()) {
			return serrors.With(serrors.ErrPassengerAlreadyAssigned,
				"passenger %s is already assigned to cabin %s", passengerCode, other.Code)
		}
	}

	if err := cabin.Assign(passenger); err != nil {
		return fmt.Errorf("could not assign passenger: %w", err)
	}
	c.assignments[passenger.Code] = cabin.Code

	logger.Info(ctx, "passenger assigned",
		zap.String("cabin", cabin.Code),
		zap.String("passenger", passenger.Code),
	)

	return nil
}

func (c *cruise) Cabins() []*domain.Cabin { return slices.Clone(c.cabins) }

func (c *cruise) Passengers() []*domain.Passenger { return slices.Clone(c.passengers) }

// CabinsByPrice returns the cabins sorted by ascending price. Cabins with the
// same price keep their source order.
func (c *cruise) CabinsByPrice() []*domain.Cabin {
	sorted := slices.Clone(c.cabins)
	slices.SortStableFunc(sorted, domain.ByPrice)

	return sorted
}

func (c *cruise) AvailableCabins() []*domain.Cabin {
	var available []*domain.Cabin
	for _, cabin := range c.cabins {
		if cabin.IsAvailable() {
			available = append(available, cabin)
		}
	}

	return available
}

// ListPassengers reports every passenger in source order with the cabin they
// occupy, if any.
func (c *cruise) ListPassengers() []PassengerEntry {
	entries := make([]PassengerEntry, 0, len(c.passengers))
	for _, passenger := range c.passengers {
		entries = append(entries, PassengerEntry{
			Passenger: passenger,
			CabinCode: c.assignments[passenger.Code],
		})
	}

	return entries
}

func (c *cruise) Summary() Summary {
	return Summary{
		Name:           c.name,
		Cabins:         len(c.cabins),
		Passengers:     len(c.passengers),
		AssignedCabins: len(c.assignments),
	}
}
