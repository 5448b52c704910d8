//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/platzio/platz-go/pkg/platz"
	"github.com/platzio/platz-go/pkg/platzclient"
)

// PlatzIntegrationTestSuite runs read-mostly checks against a live Platz server.
type PlatzIntegrationTestSuite struct {
	suite.Suite

	config *TestConfig
	runner *CommandRunner
	client platz.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *PlatzIntegrationTestSuite) SetupSuite() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingConfig(s.T())

	s.runner = NewCommandRunner(s.config, s.T())
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 2*time.Minute)

	client, err := platzclient.New(s.ctx, &platz.Config{CredentialSources: []string{"env"}})
	s.Require().NoError(err)

	s.client = client
}

func (s *PlatzIntegrationTestSuite) TearDownSuite() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *PlatzIntegrationTestSuite) TestCredentialsFromEnv() {
	creds, err := s.client.Credentials(s.ctx)
	s.Require().NoError(err)
	s.Equal("env", creds.Source())
	s.Equal(platz.SchemePlatzToken, creds.Scheme())
}

func (s *PlatzIntegrationTestSuite) TestPageSizeDoesNotChangeResults() {
	all, err := s.client.Envs().List(s.ctx, nil)
	s.Require().NoError(err)

	small, err := platzclient.New(s.ctx, &platz.Config{CredentialSources: []string{"env"}, PageSize: 1})
	s.Require().NoError(err)

	paged, err := small.Envs().List(s.ctx, nil)
	s.Require().NoError(err)

	s.Len(paged, len(all))
}

func (s *PlatzIntegrationTestSuite) TestUnknownDeploymentIsNotFound() {
	_, err := s.client.Deployments().Get(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(platz.IsNotFound(err), "got %v", err)
}

func (s *PlatzIntegrationTestSuite) TestUserTokenLifecycle() {
	if !s.config.AllowWrite {
		s.T().Skip("PLATZ_TEST_ALLOW_WRITE not set")
	}

	before, err := s.client.UserTokens().List(s.ctx, nil)
	s.Require().NoError(err)

	known := make(map[uuid.UUID]bool, len(before))
	for _, token := range before {
		known[token.ID] = true
	}

	created, err := s.client.UserTokens().Create(s.ctx, &platz.UserTokenCreateRequest{})
	s.Require().NoError(err)
	s.NotEmpty(created.CreatedToken)

	tokenClient, err := platzclient.NewWithAPIToken(s.ctx, s.config.ServerURL, created.CreatedToken)
	s.Require().NoError(err)

	after, err := tokenClient.UserTokens().List(s.ctx, nil)
	s.Require().NoError(err)

	var added []platz.UserToken

	for _, token := range after {
		if !known[token.ID] {
			added = append(added, token)
		}
	}

	s.Require().Len(added, 1)
	s.Require().NoError(s.client.UserTokens().Delete(s.ctx, added[0].ID))
}

func (s *PlatzIntegrationTestSuite) TestCLIList() {
	if !s.runner.Available() {
		s.T().Skipf("platz binary not found at %s", s.config.PlatzPath)
	}

	stdout, stderr, err := s.runner.Run("list", "envs", "--output", "json")
	s.Require().NoError(err, stderr)

	var items []json.RawMessage
	s.Require().NoError(json.Unmarshal([]byte(stdout), &items))

	envs, err := s.client.Envs().List(s.ctx, nil)
	s.Require().NoError(err)
	s.Len(items, len(envs))
}

func TestPlatzIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PlatzIntegrationTestSuite))
}
