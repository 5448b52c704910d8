package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const deploymentResourceTypesResource = "deployment-resource-types"

// DeploymentResourceTypesClient implements platz.DeploymentResourceTypesClient.
type DeploymentResourceTypesClient struct {
	httpClient *internalhttp.Client
}

// NewDeploymentResourceTypesClient creates a new deployment resource types client.
func NewDeploymentResourceTypesClient(httpClient *internalhttp.Client) *DeploymentResourceTypesClient {
	return &DeploymentResourceTypesClient{httpClient: httpClient}
}

// List implements platz.DeploymentResourceTypesClient.List.
func (c *DeploymentResourceTypesClient) List(
	ctx context.Context,
	filters *platz.DeploymentResourceTypeFilters,
) ([]platz.DeploymentResourceType, error) {
	types, err := platz.CollectAll[platz.DeploymentResourceType](ctx, c.httpClient, resourcePath(deploymentResourceTypesResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing deployment resource types: %w", err)
	}

	return types, nil
}

// Get implements platz.DeploymentResourceTypesClient.Get.
func (c *DeploymentResourceTypesClient) Get(ctx context.Context, id uuid.UUID) (*platz.DeploymentResourceType, error) {
	resourceType, err := platz.Get[platz.DeploymentResourceType](ctx, c.httpClient, resourcePath(deploymentResourceTypesResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment resource type: %w", err)
	}

	return &resourceType, nil
}

// FindOne implements platz.DeploymentResourceTypesClient.FindOne. Types are
// keyed by deployment kind and key, optionally scoped to an env.
func (c *DeploymentResourceTypesClient) FindOne(
	ctx context.Context,
	filters *platz.DeploymentResourceTypeFilters,
) (*platz.DeploymentResourceType, error) {
	resourceType, err := platz.CollectExactlyOne[platz.DeploymentResourceType](ctx, c.httpClient, resourcePath(deploymentResourceTypesResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("finding deployment resource type: %w", err)
	}

	return &resourceType, nil
}
