package http

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}))
	defer server.Close()

	client := NewClient(0)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClient_Do_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(50 * time.Millisecond)
	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := client.Do(req)
	assert.Error(t, err)
}

func TestNewClient_Timeout(t *testing.T) {
	assert.Equal(t, 2*time.Second, NewClient(2*time.Second).Timeout())
	assert.Zero(t, NewClient(0).Timeout())
}

func TestReadBody(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status string
		want   string
		errNil bool
	}{
		{name: "ok", code: http.StatusOK, status: "200 OK", want: "title\n", errNil: true},
		{name: "no content", code: http.StatusNoContent, status: "204 No Content", errNil: true},
		{name: "redirect not followed", code: http.StatusNotModified, status: "304 Not Modified"},
		{name: "not found", code: http.StatusNotFound, status: "404 Not Found"},
		{name: "server error", code: http.StatusInternalServerError, status: "500 Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.code,
				Status:     tt.status,
				Body:       io.NopCloser(strings.NewReader(tt.want)),
			}

			body, err := readBody(resp, "https://example.org/data.csv")
			if tt.errNil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, string(body))
				return
			}

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.code, statusErr.StatusCode())
			assert.Contains(t, err.Error(), "https://example.org/data.csv")
		})
	}
}
