package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const userTokensResource = "user-tokens"

// UserTokensClient implements platz.UserTokensClient.
type UserTokensClient struct {
	httpClient *internalhttp.Client
}

// NewUserTokensClient creates a new user tokens client.
func NewUserTokensClient(httpClient *internalhttp.Client) *UserTokensClient {
	return &UserTokensClient{httpClient: httpClient}
}

// List implements platz.UserTokensClient.List.
func (c *UserTokensClient) List(ctx context.Context, filters *platz.UserTokenFilters) ([]platz.UserToken, error) {
	tokens, err := platz.CollectAll[platz.UserToken](ctx, c.httpClient, resourcePath(userTokensResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing user tokens: %w", err)
	}

	return tokens, nil
}

// Get implements platz.UserTokensClient.Get.
func (c *UserTokensClient) Get(ctx context.Context, id uuid.UUID) (*platz.UserToken, error) {
	token, err := platz.Get[platz.UserToken](ctx, c.httpClient, resourcePath(userTokensResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user token: %w", err)
	}

	return &token, nil
}

// Create implements platz.UserTokensClient.Create.
func (c *UserTokensClient) Create(ctx context.Context, request *platz.UserTokenCreateRequest) (*platz.UserTokenCreateResponse, error) {
	if request == nil {
		request = &platz.UserTokenCreateRequest{}
	}

	created, err := platz.Send[platz.UserTokenCreateResponse](ctx, c.httpClient, http.MethodPost, resourcePath(userTokensResource), request)
	if err != nil {
		return nil, fmt.Errorf("creating user token: %w", err)
	}

	return &created, nil
}

// Delete implements platz.UserTokensClient.Delete.
func (c *UserTokensClient) Delete(ctx context.Context, id uuid.UUID) error {
	err := platz.SendNoResponse(ctx, c.httpClient, http.MethodDelete, resourcePath(userTokensResource, id.String()), nil)
	if err != nil {
		return fmt.Errorf("deleting user token: %w", err)
	}

	return nil
}
