package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	internalhttp "github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

const usersResource = "users"

// UsersClient implements platz.UsersClient.
type UsersClient struct {
	httpClient *internalhttp.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *internalhttp.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// List implements platz.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, filters *platz.UserFilters) ([]platz.User, error) {
	users, err := platz.CollectAll[platz.User](ctx, c.httpClient, resourcePath(usersResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return users, nil
}

// Get implements platz.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, id uuid.UUID) (*platz.User, error) {
	user, err := platz.Get[platz.User](ctx, c.httpClient, resourcePath(usersResource, id.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return &user, nil
}

// FindOne implements platz.UsersClient.FindOne.
func (c *UsersClient) FindOne(ctx context.Context, filters *platz.UserFilters) (*platz.User, error) {
	user, err := platz.CollectExactlyOne[platz.User](ctx, c.httpClient, resourcePath(usersResource), filters.ToQuery())
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}

	return &user, nil
}

// Update implements platz.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, id uuid.UUID, request *platz.UserUpdateRequest) (*platz.User, error) {
	user, err := platz.Send[platz.User](ctx, c.httpClient, http.MethodPut, resourcePath(usersResource, id.String()), request)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return &user, nil
}
