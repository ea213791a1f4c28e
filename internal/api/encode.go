package api

import (
	"cruise/internal/cruise"
	"cruise/pkg/domain"

	"github.com/go-faster/jx"
)

func encodeCabin(e *jx.Encoder, c *domain.Cabin) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(c.Code) })
		e.Field("deck", func(e *jx.Encoder) { e.Str(c.Deck) })
		e.Field("capacity", func(e *jx.Encoder) { e.Int(c.Capacity) })
		e.Field("kind", func(e *jx.Encoder) { e.Str(string(c.Kind)) })
		e.Field("basePrice", func(e *jx.Encoder) { e.Float64(c.BasePrice) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(c.Price()) })
		switch c.Kind {
		case domain.CabinKindAnimal:
			e.Field("animalFee", func(e *jx.Encoder) { e.Int(c.AnimalFee) })
		case domain.CabinKindDeluxe:
			e.Field("amenity", func(e *jx.Encoder) { e.Str(c.Amenity) })
		}
		e.Field("available", func(e *jx.Encoder) { e.Bool(c.IsAvailable()) })
		if p := c.Passenger(); p != nil {
			e.Field("passenger", func(e *jx.Encoder) { e.Str(p.Code) })
		}
	})
}

func encodeCabins(e *jx.Encoder, cabins []*domain.Cabin) {
	e.Arr(func(e *jx.Encoder) {
		for _, c := range cabins {
			encodeCabin(e, c)
		}
	})
}

func encodeEntry(e *jx.Encoder, entry cruise.PassengerEntry) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(entry.Passenger.Code) })
		e.Field("firstName", func(e *jx.Encoder) { e.Str(entry.Passenger.FirstName) })
		e.Field("lastName", func(e *jx.Encoder) { e.Str(entry.Passenger.LastName) })
		e.Field("cabin", func(e *jx.Encoder) {
			if !entry.Assigned() {
				e.Null()

				return
			}
			e.Str(entry.CabinCode)
		})
	})
}

func encodeEntries(e *jx.Encoder, entries []cruise.PassengerEntry) {
	e.Arr(func(e *jx.Encoder) {
		for _, entry := range entries {
			encodeEntry(e, entry)
		}
	})
}

func encodeSummary(e *jx.Encoder, s cruise.Summary) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(s.Name) })
		e.Field("cabins", func(e *jx.Encoder) { e.Int(s.Cabins) })
		e.Field("passengers", func(e *jx.Encoder) { e.Int(s.Passengers) })
		e.Field("assignedCabins", func(e *jx.Encoder) { e.Int(s.AssignedCabins) })
	})
}

// assignmentRequest is the body of POST /v1/assignments.
type assignmentRequest struct {
	Cabin     string
	Passenger string
}

func decodeAssignment(d *jx.Decoder) (assignmentRequest, error) {
	var req assignmentRequest
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "cabin":
			req.Cabin, err = d.Str()
		case "passenger":
			req.Passenger, err = d.Str()
		default:
			err = d.Skip()
		}

		return err
	})

	return req, err
}
