package client

import (
	"context"
	"fmt"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const envsResource = "envs"

// EnvsClient implements platz.EnvsClient.
type EnvsClient struct {
	httpClient *internalhttp.Client
}

// NewEnvsClient creates a new envs client.
func NewEnvsClient(httpClient *internalhttp.Client) *EnvsClient {
	return &EnvsClient{httpClient: httpClient}
}

// List implements platz.EnvsClient.List.
func (c *EnvsClient) List(ctx context.Context, filters *platz.EnvFilters) ([]platz.Env, error) {
	envs, err := platz.CollectAll[platz.Env](ctx, c.httpClient, resourcePath(envsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing envs: %w", err)
	}

	return envs, nil
}

// FindOne implements platz.EnvsClient.FindOne.
func (c *EnvsClient) FindOne(ctx context.Context, filters *platz.EnvFilters) (*platz.Env, error) {
	env, err := platz.CollectExactlyOne[platz.Env](ctx, c.httpClient, resourcePath(envsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("finding env: %w", err)
	}

	return &env, nil
}
