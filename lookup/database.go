// Package lookup opens a PLB database and answers point-in-polygon
// queries against it: a coarse latitude-sorted bounding-box scan followed
// by a fine quadrant-walk winding-number test, with an optional safe-zone
// distance to the nearest boundary. The package never panics past its
// boundary and never calls os.Exit; every failure is reported through a
// return value, matching the propagation policy of the database it reads.
package lookup

import (
	"golang.org/x/exp/mmap"

	"github.com/geozone/zdgeo/format"
)

// Database is an opened, read-only PLB file. A Database is safe for
// concurrent Lookup calls: all of its state past Open is immutable.
type Database struct {
	reader *mmap.ReaderAt
	data   []byte
	header *format.Header
	closed bool
}

// Open memory-maps path and parses its header. The mapping's bytes are
// copied once into an in-process buffer so the rest of the package can
// decode directly off a plain []byte the way the format package expects;
// golang.org/x/exp/mmap.ReaderAt does not expose its underlying slice, so
// this single bulk ReadAt is the price of that API boundary. Nothing past
// Open allocates per vertex — the hot path still streams.
func Open(path string) (*Database, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		r.Close()
		return nil, err
	}

	header, err := format.ParseHeader(data)
	if err != nil {
		r.Close()
		return nil, err
	}

	return &Database{reader: r, data: data, header: header}, nil
}

// Close unmaps the database. It is safe to call more than once.
func (db *Database) Close() error {
	if db.closed {
		return nil
	}
	db.closed = true
	db.data = nil

	return db.reader.Close()
}

// Notice returns the database's embedded notice string (license, source
// attribution, build timestamp — whatever the builder was given).
func (db *Database) Notice() string { return db.header.Notice }

// TableType reports whether this is a timezone ('T') or country ('C')
// database.
func (db *Database) TableType() format.TableType { return db.header.TableType }

// FieldNames returns the declared metadata field names in schema order.
func (db *Database) FieldNames() []string { return db.header.FieldNames }
