// Package rowreader defines the collaborator the cruise registry reads its
// records from. A record is one row of fields; the registry decides what the
// row means, the reader only knows how to get rows out of a source.
//
//go:generate mockgen -package mockrowreader -source=interface.go -destination=mock/mockrowreader.go *
package rowreader

import "context"

// Reader returns every record of its source, in source order.
//
// Implementations report a source that cannot be opened with
// serrors.ErrSourceNotFound and a source that cannot be split into records
// with serrors.ErrMalformedRecord. Blank rows may be dropped or returned as
// empty records; callers skip empty records either way.
type Reader interface {
	ReadRecords(ctx context.Context) ([][]string, error)
}
