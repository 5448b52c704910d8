package client

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const helmChartsResource = "helm-charts"

// HelmChartsClient implements platz.HelmChartsClient.
type HelmChartsClient struct {
	httpClient *internalhttp.Client
}

// NewHelmChartsClient creates a new helm charts client.
func NewHelmChartsClient(httpClient *internalhttp.Client) *HelmChartsClient {
	return &HelmChartsClient{httpClient: httpClient}
}

// List implements platz.HelmChartsClient.List.
func (c *HelmChartsClient) List(ctx context.Context, filters *platz.HelmChartFilters) ([]platz.HelmChart, error) {
	charts, err := platz.CollectAll[platz.HelmChart](ctx, c.httpClient, resourcePath(helmChartsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing helm charts: %w", err)
	}

	return charts, nil
}

// Get implements platz.HelmChartsClient.Get.
func (c *HelmChartsClient) Get(ctx context.Context, id uuid.UUID) (*platz.HelmChart, error) {
	chart, err := platz.Get[platz.HelmChart](ctx, c.httpClient, resourcePath(helmChartsResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting helm chart: %w", err)
	}

	return &chart, nil
}
