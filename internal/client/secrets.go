package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const secretsResource = "secrets"

// SecretsClient implements platz.SecretsClient.
type SecretsClient struct {
	httpClient *internalhttp.Client
}

// NewSecretsClient creates a new secrets client.
func NewSecretsClient(httpClient *internalhttp.Client) *SecretsClient {
	return &SecretsClient{httpClient: httpClient}
}

// List implements platz.SecretsClient.List.
func (c *SecretsClient) List(ctx context.Context, filters *platz.SecretFilters) ([]platz.Secret, error) {
	secrets, err := platz.CollectAll[platz.Secret](ctx, c.httpClient, resourcePath(secretsResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing secrets: %w", err)
	}

	return secrets, nil
}

// Get implements platz.SecretsClient.Get.
func (c *SecretsClient) Get(ctx context.Context, id uuid.UUID) (*platz.Secret, error) {
	secret, err := platz.Get[platz.Secret](ctx, c.httpClient, resourcePath(secretsResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting secret: %w", err)
	}

	return &secret, nil
}

// Create implements platz.SecretsClient.Create.
func (c *SecretsClient) Create(ctx context.Context, request *platz.SecretCreateRequest) (*platz.Secret, error) {
	secret, err := platz.Send[platz.Secret](ctx, c.httpClient, http.MethodPost, resourcePath(secretsResource), request)
	if err != nil {
		return nil, fmt.Errorf("creating secret: %w", err)
	}

	return &secret, nil
}

// Update implements platz.SecretsClient.Update.
func (c *SecretsClient) Update(ctx context.Context, id uuid.UUID, request *platz.SecretUpdateRequest) (*platz.Secret, error) {
	secret, err := platz.Send[platz.Secret](ctx, c.httpClient, http.MethodPut, resourcePath(secretsResource, id.String()), request)
	if err != nil {
		return nil, fmt.Errorf("updating secret: %w", err)
	}

	return &secret, nil
}
