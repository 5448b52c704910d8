package platzclient

import (
	"context"
	"fmt"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/internal/client"
	"github.com/platzio/platz-go/pkg/platz"
)

// New creates a new Platz API client. Credentials are resolved lazily, on the
// first request.
func New(_ context.Context, config *platz.Config) (platz.Client, error) {
	if config == nil {
		return nil, platz.ErrConfigRequired
	}

	c, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithToken creates a client that sends token as a bearer token to serverURL.
func NewWithToken(ctx context.Context, serverURL, token string) (platz.Client, error) {
	return newStatic(ctx, serverURL, platz.SchemeBearer, token)
}

// NewWithAPIToken creates a client that sends token in the x-platz-token header.
func NewWithAPIToken(ctx context.Context, serverURL, token string) (platz.Client, error) {
	return newStatic(ctx, serverURL, platz.SchemePlatzToken, token)
}

func newStatic(ctx context.Context, serverURL string, scheme platz.AuthScheme, token string) (platz.Client, error) {
	resolver, err := auth.NewStaticResolver(serverURL, scheme, token)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	return New(ctx, &platz.Config{Resolvers: []platz.Resolver{resolver}})
}
