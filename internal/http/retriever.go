package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/annwoerpel/visual-analytics-books/internal/request"
)

// Retriever fetches resource content over HTTP(S).
type Retriever struct {
	client  Doer
	factory *request.Factory
}

func NewRetriever(client Doer, factory *request.Factory) *Retriever {
	if factory == nil {
		factory = request.NewFactory(http.MethodGet, "")
	}
	return &Retriever{
		client:  client,
		factory: factory,
	}
}

// Retrieve returns the response body of address. Only 2xx responses succeed;
// the response content type is not checked.
func (r *Retriever) Retrieve(ctx context.Context, address string) ([]byte, error) {
	req, err := r.factory.Build(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return readBody(resp, address)
}
