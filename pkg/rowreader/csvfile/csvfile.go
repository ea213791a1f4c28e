// Package csvfile reads cruise records from a comma-separated file on disk.
package csvfile

import (
	"context"
	"cruise/pkg/rowreader"
	"cruise/pkg/serrors"
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
)

// Reader reads every record of a CSV file. The file has no header row and
// records may have different field counts.
type Reader struct {
	path string
}

// Ensure Reader implements rowreader.Reader.
var _ rowreader.Reader = (*Reader)(nil)

// New returns a reader for the file at path. The file is opened on every
// ReadRecords call, so a reader can be reused to reload the same source.
func New(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the file the reader reads from.
func (r *Reader) Path() string { return r.path }

// ReadRecords opens the file and returns its records with surrounding
// whitespace trimmed from every field. Blank lines are skipped.
func (r *Reader) ReadRecords(ctx context.Context) ([][]string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrSourceNotFound, err, "could not open %s", r.path)
	}
	defer func() { _ = f.Close() }()

	records, err := Parse(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", r.path)
	}

	return records, nil
}

// Parse splits src into trimmed CSV records.
func Parse(ctx context.Context, src io.Reader) ([][]string, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	var records [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "parse interrupted")
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, serrors.Wrap(serrors.ErrMalformedRecord, err, "invalid csv at line %d", parseErr.Line)
		}
		if err != nil {
			return nil, errors.Wrap(err, "read record")
		}

		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		records = append(records, record)
	}
}
