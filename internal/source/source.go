// Package source provides the pagination backends a virtualized list can
// be fed from. Every source returns records synchronously and in append
// order; a short page means nothing more is available right now.
package source

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/vscroll/internal/scroller"
)

// Kind names a source backend.
type Kind string

const (
	KindGenerator Kind = "gen"
	KindFile      Kind = "file"
	KindSQLite    Kind = "sqlite"
	KindPebble    Kind = "pebble"
)

// Kinds lists the supported backends.
var Kinds = []Kind{KindGenerator, KindFile, KindSQLite, KindPebble}

// Record is one list item.
type Record struct {
	Seq       int64     `json:"seq" yaml:"seq"`
	Body      string    `json:"body" yaml:"body"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Source is a closable record loader.
type Source interface {
	scroller.Loader[Record]
	io.Closer
}

// Options configures Open.
type Options struct {
	Kind Kind
	// Path is the file, database file or database directory. Unused by the
	// generator.
	Path string
	// Limit caps the generator. Zero means unbounded.
	Limit int64
	// FromStart makes the file source read the existing content before
	// following new lines.
	FromStart bool
}

// Open opens the backend described by opts.
func Open(ctx context.Context, opts Options) (Source, error) {
	switch opts.Kind {
	case KindGenerator, "":
		return NewGenerator(opts.Limit), nil
	case KindFile:
		return OpenFollow(opts.Path, opts.FromStart)
	case KindSQLite:
		return OpenSQLite(ctx, opts.Path)
	case KindPebble:
		return OpenPebble(opts.Path)
	default:
		return nil, fmt.Errorf("unknown source %q", opts.Kind)
	}
}

// Seeder appends records to a writable store kept open for its lifetime.
type Seeder interface {
	// Count returns how many records the store holds.
	Count() int64
	Append(ctx context.Context, bodies []string) error
	io.Closer
}

var (
	_ Seeder = (*SQLiteSeeder)(nil)
	_ Seeder = (*PebbleSeeder)(nil)
)

// OpenSeeder opens a SQLite or Pebble store for appending.
func OpenSeeder(ctx context.Context, kind Kind, path string) (Seeder, error) {
	switch kind {
	case KindSQLite:
		return OpenSQLiteSeeder(ctx, path)
	case KindPebble:
		return OpenPebbleSeeder(path)
	default:
		return nil, fmt.Errorf("cannot seed a %q source, use sqlite or pebble", kind)
	}
}
