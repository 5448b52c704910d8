package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const deploymentTasksResource = "deployment-tasks"

// DeploymentTasksClient implements platz.DeploymentTasksClient.
type DeploymentTasksClient struct {
	httpClient *internalhttp.Client
}

// NewDeploymentTasksClient creates a new deployment tasks client.
func NewDeploymentTasksClient(httpClient *internalhttp.Client) *DeploymentTasksClient {
	return &DeploymentTasksClient{httpClient: httpClient}
}

// List implements platz.DeploymentTasksClient.List.
func (c *DeploymentTasksClient) List(ctx context.Context, filters *platz.DeploymentTaskFilters) ([]platz.DeploymentTask, error) {
	tasks, err := platz.CollectAll[platz.DeploymentTask](ctx, c.httpClient, resourcePath(deploymentTasksResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing deployment tasks: %w", err)
	}

	return tasks, nil
}

// Get implements platz.DeploymentTasksClient.Get.
func (c *DeploymentTasksClient) Get(ctx context.Context, id uuid.UUID) (*platz.DeploymentTask, error) {
	task, err := platz.Get[platz.DeploymentTask](ctx, c.httpClient, resourcePath(deploymentTasksResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting deployment task: %w", err)
	}

	return &task, nil
}
