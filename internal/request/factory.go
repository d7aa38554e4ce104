package request

import (
	"context"
	"net/http"
	"strings"
)

// CSVContentType is advertised on every retrieval. Servers are free to ignore it.
const CSVContentType = "text/csv"

type Factory struct {
	method string
	header http.Header
}

// NewFactory returns a factory for method requests. extraHeaders holds
// "Name: value" lines added to every request; malformed lines are skipped.
func NewFactory(method, extraHeaders string) *Factory {
	if method == "" {
		method = http.MethodGet
	}
	header := make(http.Header)
	for _, line := range strings.Split(extraHeaders, "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		header.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return &Factory{
		method: method,
		header: header,
	}
}

func (f *Factory) Build(ctx context.Context, address string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, f.method, address, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", CSVContentType)
	req.Header.Set("Content-Type", CSVContentType)
	for name, values := range f.header {
		req.Header[name] = append([]string(nil), values...)
	}
	return req, nil
}
