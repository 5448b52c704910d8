package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const helmRegistriesResource = "helm-registries"

// HelmRegistriesClient implements platz.HelmRegistriesClient.
type HelmRegistriesClient struct {
	httpClient *internalhttp.Client
}

// NewHelmRegistriesClient creates a new helm registries client.
func NewHelmRegistriesClient(httpClient *internalhttp.Client) *HelmRegistriesClient {
	return &HelmRegistriesClient{httpClient: httpClient}
}

// List implements platz.HelmRegistriesClient.List.
func (c *HelmRegistriesClient) List(ctx context.Context, filters *platz.HelmRegistryFilters) ([]platz.HelmRegistry, error) {
	registries, err := platz.CollectAll[platz.HelmRegistry](ctx, c.httpClient, resourcePath(helmRegistriesResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing helm registries: %w", err)
	}

	return registries, nil
}

// Get implements platz.HelmRegistriesClient.Get.
func (c *HelmRegistriesClient) Get(ctx context.Context, id uuid.UUID) (*platz.HelmRegistry, error) {
	registry, err := platz.Get[platz.HelmRegistry](ctx, c.httpClient, resourcePath(helmRegistriesResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting helm registry: %w", err)
	}

	return &registry, nil
}

// Update implements platz.HelmRegistriesClient.Update.
func (c *HelmRegistriesClient) Update(
	ctx context.Context,
	id uuid.UUID,
	request *platz.HelmRegistryUpdateRequest,
) (*platz.HelmRegistry, error) {
	registry, err := platz.Send[platz.HelmRegistry](ctx, c.httpClient, http.MethodPut, resourcePath(helmRegistriesResource, id.String()), request)
	if err != nil {
		return nil, fmt.Errorf("updating helm registry: %w", err)
	}

	return &registry, nil
}
