package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/pkg/platz"
)

// DefaultSources is the default credential precedence.
var DefaultSources = []string{constants.SourceEnv, constants.SourceProfile, constants.SourceMounted}

const chainName = "chain"

// Chain walks resolvers in order until one finds credentials.
type Chain struct {
	resolvers []platz.Resolver
	logger    platz.Logger
}

// NewChain creates a chain over resolvers. logger may be nil.
func NewChain(logger platz.Logger, resolvers ...platz.Resolver) *Chain {
	return &Chain{resolvers: resolvers, logger: logger}
}

// NewChainFromConfig builds the chain described by config: config.Resolvers
// when set, otherwise the named sources in config.CredentialSources (or the
// default order).
func NewChainFromConfig(config *platz.Config) (*Chain, error) {
	if config == nil {
		return nil, platz.ErrConfigRequired
	}

	if len(config.Resolvers) > 0 {
		return NewChain(config.Logger, config.Resolvers...), nil
	}

	sources := config.CredentialSources
	if len(sources) == 0 {
		sources = DefaultSources
	}

	resolvers := make([]platz.Resolver, 0, len(sources))

	for _, source := range sources {
		switch source {
		case constants.SourceEnv:
			resolvers = append(resolvers, NewEnvResolver())
		case constants.SourceProfile:
			resolvers = append(resolvers, NewProfileResolver(config.Profile, config.ProfileDirs))
		case constants.SourceMounted:
			resolvers = append(resolvers, NewMountedSecretResolver(config.MountedSecretsDir))
		default:
			return nil, fmt.Errorf("%w: %q", platz.ErrUnknownSource, source)
		}
	}

	return NewChain(config.Logger, resolvers...), nil
}

// Name implements platz.Resolver so a chain can back a credential store.
func (c *Chain) Name() string {
	return chainName
}

// Names returns the resolver names in precedence order.
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.resolvers))
	for _, resolver := range c.resolvers {
		names = append(names, resolver.Name())
	}

	return names
}

// Resolve returns the credentials of the first resolver that finds any. A
// resolver error other than ErrSourceNotApplicable stops the walk.
func (c *Chain) Resolve(ctx context.Context) (*platz.Credentials, error) {
	for _, resolver := range c.resolvers {
		creds, err := resolver.Resolve(ctx)
		if errors.Is(err, platz.ErrSourceNotApplicable) {
			c.debug("Credential source not applicable", map[string]interface{}{"source": resolver.Name()})

			continue
		}

		if err != nil {
			return nil, fmt.Errorf("resolving %s credentials: %w", resolver.Name(), err)
		}

		c.debug("Resolved credentials", map[string]interface{}{
			"source": resolver.Name(),
			"server": creds.ServerURL().String(),
			"scheme": creds.Scheme().String(),
		})

		return creds, nil
	}

	return nil, fmt.Errorf("%w (tried %v)", platz.ErrNoConfigFound, c.Names())
}

func (c *Chain) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}
