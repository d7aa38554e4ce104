package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/annwoerpel/visual-analytics-books/internal/resource"
)

// Retriever returns the raw content stored at a resolved address.
type Retriever interface {
	Retrieve(ctx context.Context, address string) ([]byte, error)
}

// RetrieverFunc adapts a function to Retriever.
type RetrieverFunc func(ctx context.Context, address string) ([]byte, error)

func (f RetrieverFunc) Retrieve(ctx context.Context, address string) ([]byte, error) {
	return f(ctx, address)
}

// Mux dispatches on the address scheme. Addresses without a scheme use the
// "file" entry.
type Mux map[string]Retriever

func (m Mux) Retrieve(ctx context.Context, address string) ([]byte, error) {
	scheme := resource.Scheme(address)
	if scheme == "" {
		scheme = "file"
	}
	r, ok := m[scheme]
	if !ok {
		return nil, fmt.Errorf("unsupported scheme %q", scheme)
	}
	return r.Retrieve(ctx, address)
}

// FileRetriever reads local files given as plain paths or file:// URLs.
type FileRetriever struct{}

func (FileRetriever) Retrieve(ctx context.Context, address string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := address
	if resource.Scheme(address) == "file" {
		path = address[len("file://"):]
	}
	return os.ReadFile(path)
}
