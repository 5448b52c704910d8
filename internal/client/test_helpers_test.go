package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/internal/client"
	"github.com/platzio/platz-go/pkg/platz"
)

const testToken = "test-token"

// newTestClient returns a client authenticated against server with a static bearer token.
func newTestClient(t *testing.T, server *httptest.Server, config *platz.Config) *client.Client {
	t.Helper()

	resolver, err := auth.NewStaticResolver(server.URL, platz.SchemeBearer, testToken)
	require.NoError(t, err)

	if config == nil {
		config = &platz.Config{}
	}

	c, err := client.NewWithResolver(config, resolver)
	require.NoError(t, err)

	return c
}

// servePages writes items as a paginated listing, perPage items per page.
func servePages[T any](t *testing.T, writer http.ResponseWriter, request *http.Request, items []T, perPage int) {
	t.Helper()

	page := 1
	if raw := request.URL.Query().Get("page"); raw != "" {
		var err error

		page, err = strconv.Atoi(raw)
		require.NoError(t, err)
	}

	start := min((page-1)*perPage, len(items))
	end := min(start+perPage, len(items))

	writer.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(writer).Encode(platz.Page[T]{
		Page:     int64(page),
		PerPage:  int64(perPage),
		Items:    items[start:end],
		NumTotal: int64(len(items)),
	})
}

func writeJSON(writer http.ResponseWriter, status int, body interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}
