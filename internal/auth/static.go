package auth

import (
	"context"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// StaticResolver always yields the same credentials.
type StaticResolver struct {
	creds *platz.Credentials
}

// NewStaticResolver validates the inputs and builds a fixed resolver.
func NewStaticResolver(serverURL string, scheme platz.AuthScheme, secret string) (*StaticResolver, error) {
	u, err := platz.ParseServerURL(serverURL)
	if err != nil {
		return nil, err
	}

	creds, err := platz.NewCredentials(constants.SourceStatic, u, scheme, secret, nil)
	if err != nil {
		return nil, err
	}

	return &StaticResolver{creds: creds}, nil
}

// Name returns the source name.
func (r *StaticResolver) Name() string {
	return constants.SourceStatic
}

// Resolve implements platz.Resolver.
func (r *StaticResolver) Resolve(_ context.Context) (*platz.Credentials, error) {
	return r.creds, nil
}
