package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const deploymentsResource = "deployments"

// DeploymentsClient implements platz.DeploymentsClient.
type DeploymentsClient struct {
	httpClient *internalhttp.Client
}

// NewDeploymentsClient creates a new deployments client.
func NewDeploymentsClient(httpClient *internalhttp.Client) *DeploymentsClient {
	return &DeploymentsClient{httpClient: httpClient}
}

// List implements platz.DeploymentsClient.List.
func (c *DeploymentsClient) List(ctx context.Context, filters *platz.DeploymentFilters) ([]platz.Deployment, error) {
	deployments, err := platz.CollectAll[platz.Deployment](ctx, c.httpClient, resourcePath(deploymentsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing deployments: %w", err)
	}

	return deployments, nil
}

// Get implements platz.DeploymentsClient.Get.
func (c *DeploymentsClient) Get(ctx context.Context, id uuid.UUID) (*platz.Deployment, error) {
	deployment, err := platz.Get[platz.Deployment](ctx, c.httpClient, resourcePath(deploymentsResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment: %w", err)
	}

	return &deployment, nil
}

// FindOne implements platz.DeploymentsClient.FindOne.
func (c *DeploymentsClient) FindOne(ctx context.Context, filters *platz.DeploymentFilters) (*platz.Deployment, error) {
	deployment, err := platz.CollectExactlyOne[platz.Deployment](ctx, c.httpClient, resourcePath(deploymentsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("finding deployment: %w", err)
	}

	return &deployment, nil
}

// Create implements platz.DeploymentsClient.Create.
func (c *DeploymentsClient) Create(ctx context.Context, request *platz.DeploymentCreateRequest) (*platz.Deployment, error) {
	deployment, err := platz.Send[platz.Deployment](ctx, c.httpClient, http.MethodPost, resourcePath(deploymentsResource), request)
	if err != nil {
		return nil, fmt.Errorf("creating deployment: %w", err)
	}

	return &deployment, nil
}

// Update implements platz.DeploymentsClient.Update.
func (c *DeploymentsClient) Update(ctx context.Context, id uuid.UUID, request *platz.DeploymentUpdateRequest) (*platz.Deployment, error) {
	deployment, err := platz.Send[platz.Deployment](ctx, c.httpClient, http.MethodPut, resourcePath(deploymentsResource, id.String()), request)
	if err != nil {
		return nil, fmt.Errorf("updating deployment: %w", err)
	}

	return &deployment, nil
}
