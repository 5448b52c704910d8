package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const k8sResourcesResource = "k8s-resources"

// K8sResourcesClient implements platz.K8sResourcesClient.
type K8sResourcesClient struct {
	httpClient *internalhttp.Client
}

// NewK8sResourcesClient creates a new Kubernetes resources client.
func NewK8sResourcesClient(httpClient *internalhttp.Client) *K8sResourcesClient {
	return &K8sResourcesClient{httpClient: httpClient}
}

// List implements platz.K8sResourcesClient.List.
func (c *K8sResourcesClient) List(ctx context.Context, filters *platz.K8sResourceFilters) ([]platz.K8sResource, error) {
	resources, err := platz.CollectAll[platz.K8sResource](ctx, c.httpClient, resourcePath(k8sResourcesResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing k8s resources: %w", err)
	}

	return resources, nil
}

// Get implements platz.K8sResourcesClient.Get.
func (c *K8sResourcesClient) Get(ctx context.Context, id uuid.UUID) (*platz.K8sResource, error) {
	resource, err := platz.Get[platz.K8sResource](ctx, c.httpClient, resourcePath(k8sResourcesResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting k8s resource: %w", err)
	}

	return &resource, nil
}
