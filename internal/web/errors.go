package web

import (
	"errors"
	"net/http"

	"github.com/annwoerpel/visual-analytics-books/internal/loader"
	"github.com/annwoerpel/visual-analytics-books/internal/logging"
)

// Error codes returned to clients.
const (
	CodeUnknownVariant = "VAR001"
	CodeFetchFailed    = "FETCH001"
	CodeFetchTimeout   = "FETCH002"
	CodeParseFailed    = "PARSE001"
	CodeRateLimited    = "RATE001"
	CodeInternal       = "INT001"
)

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respondError logs err with request context and writes a sanitized JSON
// error. Fetch failures map to 502 (504 on timeout) and parse failures to 422.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := classify(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", resp.Code,
		"error", err.Error(),
	)

	writeJSON(w, status, resp)
}

func classify(err error) (int, ErrorResponse) {
	var (
		fetchErr *loader.FetchError
		parseErr *loader.ParseError
	)
	switch {
	case errors.As(err, &fetchErr):
		if isTimeout(err) {
			return http.StatusGatewayTimeout, ErrorResponse{Error: "retrieving the data timed out", Code: CodeFetchTimeout}
		}
		return http.StatusBadGateway, ErrorResponse{Error: "the data could not be retrieved", Code: CodeFetchFailed}
	case errors.As(err, &parseErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: "the data is not valid CSV text", Code: CodeParseFailed}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error", Code: CodeInternal}
	}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
