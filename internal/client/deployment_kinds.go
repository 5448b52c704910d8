package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const deploymentKindsResource = "deployment-kinds"

// DeploymentKindsClient implements platz.DeploymentKindsClient.
type DeploymentKindsClient struct {
	httpClient *internalhttp.Client
}

// NewDeploymentKindsClient creates a new deployment kinds client.
func NewDeploymentKindsClient(httpClient *internalhttp.Client) *DeploymentKindsClient {
	return &DeploymentKindsClient{httpClient: httpClient}
}

// List implements platz.DeploymentKindsClient.List.
func (c *DeploymentKindsClient) List(ctx context.Context, filters *platz.DeploymentKindFilters) ([]platz.DeploymentKind, error) {
	kinds, err := platz.CollectAll[platz.DeploymentKind](ctx, c.httpClient, resourcePath(deploymentKindsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing deployment kinds: %w", err)
	}

	return kinds, nil
}

// Get implements platz.DeploymentKindsClient.Get.
func (c *DeploymentKindsClient) Get(ctx context.Context, id uuid.UUID) (*platz.DeploymentKind, error) {
	kind, err := platz.Get[platz.DeploymentKind](ctx, c.httpClient, resourcePath(deploymentKindsResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment kind: %w", err)
	}

	return &kind, nil
}
