package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const k8sClustersResource = "k8s-clusters"

// K8sClustersClient implements platz.K8sClustersClient.
type K8sClustersClient struct {
	httpClient *internalhttp.Client
}

// NewK8sClustersClient creates a new k8s clusters client.
func NewK8sClustersClient(httpClient *internalhttp.Client) *K8sClustersClient {
	return &K8sClustersClient{httpClient: httpClient}
}

// List implements platz.K8sClustersClient.List.
func (c *K8sClustersClient) List(ctx context.Context, filters *platz.K8sClusterFilters) ([]platz.K8sCluster, error) {
	clusters, err := platz.CollectAll[platz.K8sCluster](ctx, c.httpClient, resourcePath(k8sClustersResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing k8s clusters: %w", err)
	}

	return clusters, nil
}

// Get implements platz.K8sClustersClient.Get.
func (c *K8sClustersClient) Get(ctx context.Context, id uuid.UUID) (*platz.K8sCluster, error) {
	cluster, err := platz.Get[platz.K8sCluster](ctx, c.httpClient, resourcePath(k8sClustersResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting k8s cluster: %w", err)
	}

	return &cluster, nil
}
