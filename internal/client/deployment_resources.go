package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const deploymentResourcesResource = "deployment-resources"

// DeploymentResourcesClient implements platz.DeploymentResourcesClient.
type DeploymentResourcesClient struct {
	httpClient *internalhttp.Client
}

// NewDeploymentResourcesClient creates a new deployment resources client.
func NewDeploymentResourcesClient(httpClient *internalhttp.Client) *DeploymentResourcesClient {
	return &DeploymentResourcesClient{httpClient: httpClient}
}

// List implements platz.DeploymentResourcesClient.List.
func (c *DeploymentResourcesClient) List(
	ctx context.Context,
	filters *platz.DeploymentResourceFilters,
) ([]platz.DeploymentResource, error) {
	resources, err := platz.CollectAll[platz.DeploymentResource](ctx, c.httpClient, resourcePath(deploymentResourcesResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing deployment resources: %w", err)
	}

	return resources, nil
}

// Get implements platz.DeploymentResourcesClient.Get.
func (c *DeploymentResourcesClient) Get(ctx context.Context, id uuid.UUID) (*platz.DeploymentResource, error) {
	resource, err := platz.Get[platz.DeploymentResource](ctx, c.httpClient, resourcePath(deploymentResourcesResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment resource: %w", err)
	}

	return &resource, nil
}

// Create implements platz.DeploymentResourcesClient.Create.
func (c *DeploymentResourcesClient) Create(
	ctx context.Context,
	request *platz.DeploymentResourceCreateRequest,
) (*platz.DeploymentResource, error) {
	resource, err := platz.Send[platz.DeploymentResource](ctx, c.httpClient, http.MethodPost, resourcePath(deploymentResourcesResource), request)
	if err != nil {
		return nil, fmt.Errorf("creating deployment resource: %w", err)
	}

	return &resource, nil
}
