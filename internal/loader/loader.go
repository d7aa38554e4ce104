// Package loader implements the page-load pipeline: resolve a resource file
// against the base path, retrieve it, and parse it into header-keyed rows.
//
// Every call is independent. Nothing is cached between loads and no state is
// shared, so a Loader may be used from many goroutines at once.
package loader

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/annwoerpel/visual-analytics-books/internal/csv"
	"github.com/annwoerpel/visual-analytics-books/internal/logging"
	"github.com/annwoerpel/visual-analytics-books/internal/resource"
)

// Resolver turns a resource file name into an address.
type Resolver interface {
	Resolve(file string) (resource.Reference, error)
}

// Loader loads CSV resources.
type Loader struct {
	resolver  Resolver
	retriever Retriever
	opts      csv.Options
	timeout   time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithDelimiter sets the field delimiter. The default is ','.
func WithDelimiter(d rune) Option {
	return func(l *Loader) {
		l.opts.Delimiter = d
	}
}

// WithTimeout bounds each retrieval. Zero leaves retrieval unbounded apart
// from the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

func New(resolver Resolver, retriever Retriever, opts ...Option) *Loader {
	l := &Loader{
		resolver:  resolver,
		retriever: retriever,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Options returns the parse options used by the loader.
func (l *Loader) Options() csv.Options {
	return l.opts
}

// Load resolves file, retrieves it and parses it. Retrieval failures are
// returned as *FetchError and undecodable content as *ParseError; in both
// cases no rows are returned. Rows whose width differs from the header are
// kept and reported in the result's diagnostics.
func (l *Loader) Load(ctx context.Context, file string) (*csv.Result, error) {
	logger := logging.FromContext(ctx).With("load_id", uuid.NewString(), "file", file)

	ref, err := l.resolver.Resolve(file)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	logger = logger.With("address", ref.Address)

	fetchCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	data, err := l.retriever.Retrieve(fetchCtx, ref.Address)
	if err != nil {
		logger.Warn("retrieval failed", "error", err)
		return nil, &FetchError{Address: ref.Address, Err: err}
	}
	logger.Debug("retrieved resource", "bytes", len(data), "duration_ms", time.Since(start).Milliseconds())

	text, err := csv.Decode(data)
	if err != nil {
		logger.Warn("decode failed", "error", err)
		return nil, &ParseError{Address: ref.Address, Err: err}
	}
	res, err := csv.Parse(text, l.opts)
	if err != nil {
		logger.Warn("parse failed", "error", err)
		return nil, &ParseError{Address: ref.Address, Err: err}
	}

	if len(res.Diagnostics) > 0 {
		logger.Warn("malformed rows", "count", len(res.Diagnostics))
	}
	logger.Info("loaded resource", "rows", len(res.Rows), "fields", len(res.Header))
	return res, nil
}
