package client

import (
	"context"

	"github.com/platzio/platz-go/internal/auth"
	"github.com/platzio/platz-go/internal/constants"
	"github.com/platzio/platz-go/internal/http"
	"github.com/platzio/platz-go/pkg/platz"
)

// Client implements the platz.Client interface.
type Client struct {
	httpClient *http.Client
	store      *auth.Store
	logger     platz.Logger

	// Resource clients
	users           platz.UsersClient
	userTokens      platz.UserTokensClient
	envs            platz.EnvsClient
	secrets         platz.SecretsClient
	deployments     platz.DeploymentsClient
	deploymentKinds platz.DeploymentKindsClient
	k8sClusters     platz.K8sClustersClient

	deploymentTasks         platz.DeploymentTasksClient
	deploymentResources     platz.DeploymentResourcesClient
	deploymentResourceTypes platz.DeploymentResourceTypesClient
	k8sResources            platz.K8sResourcesClient
	helmCharts              platz.HelmChartsClient
	helmRegistries          platz.HelmRegistriesClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *platz.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.PageSize > 0 {
		httpOpts = append(httpOpts, http.WithPageSize(config.PageSize))
	}

	chain, err := createInterceptorChain(config)
	if err != nil {
		return nil, err
	}

	httpOpts = append(httpOpts, http.WithInterceptors(chain))

	return httpOpts, nil
}

// createInterceptorChain assembles the built-in interceptors followed by the
// caller's own.
func createInterceptorChain(config *platz.Config) (*platz.InterceptorChain, error) {
	chain := platz.NewInterceptorChain()

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(platz.HeaderInterceptor(config.Headers))
	}

	if config.MetricsRegisterer != nil {
		metrics, err := platz.NewMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}

		chain.AddRequestInterceptor(platz.MetricsRequestInterceptor(metrics))
		chain.AddResponseInterceptor(platz.MetricsResponseInterceptor(metrics))
	}

	if config.Logger != nil {
		chain.AddRequestInterceptor(platz.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(platz.LoggingResponseInterceptor(config.Logger))
	}

	if config.Interceptors != nil {
		chain.Merge(config.Interceptors)
	}

	return chain, nil
}

// New creates a new Platz API client. No credential source is consulted
// until the first request.
func New(config *platz.Config) (*Client, error) {
	if config == nil {
		return nil, platz.ErrConfigRequired
	}

	chain, err := auth.NewChainFromConfig(config)
	if err != nil {
		return nil, err
	}

	return NewWithResolver(config, chain)
}

// NewWithResolver creates a new Platz API client that takes its credentials
// from resolver.
func NewWithResolver(config *platz.Config, resolver platz.Resolver) (*Client, error) {
	if config == nil {
		return nil, platz.ErrConfigRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	store := auth.NewStore(resolver, auth.WithStoreLogger(config.Logger))

	client := &Client{
		httpClient: http.NewClient(store, httpOpts...),
		store:      store,
		logger:     config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.userTokens = NewUserTokensClient(c.httpClient)
	c.envs = NewEnvsClient(c.httpClient)
	c.secrets = NewSecretsClient(c.httpClient)
	c.deployments = NewDeploymentsClient(c.httpClient)
	c.deploymentKinds = NewDeploymentKindsClient(c.httpClient)
	c.k8sClusters = NewK8sClustersClient(c.httpClient)
	c.deploymentTasks = NewDeploymentTasksClient(c.httpClient)
	c.deploymentResources = NewDeploymentResourcesClient(c.httpClient)
	c.deploymentResourceTypes = NewDeploymentResourceTypesClient(c.httpClient)
	c.k8sResources = NewK8sResourcesClient(c.httpClient)
	c.helmCharts = NewHelmChartsClient(c.httpClient)
	c.helmRegistries = NewHelmRegistriesClient(c.httpClient)
}

// Requester implements platz.Client.Requester.
func (c *Client) Requester() platz.Requester {
	return c.httpClient
}

// Credentials implements platz.Client.Credentials.
func (c *Client) Credentials(ctx context.Context) (*platz.Credentials, error) {
	return c.store.Credentials(ctx)
}

// InvalidateCredentials drops the held credentials so the next request
// resolves them again.
func (c *Client) InvalidateCredentials() {
	c.store.Invalidate()
}

// Users implements platz.Client.Users.
func (c *Client) Users() platz.UsersClient {
	return c.users
}

// UserTokens implements platz.Client.UserTokens.
func (c *Client) UserTokens() platz.UserTokensClient {
	return c.userTokens
}

// Envs implements platz.Client.Envs.
func (c *Client) Envs() platz.EnvsClient {
	return c.envs
}

// Secrets implements platz.Client.Secrets.
func (c *Client) Secrets() platz.SecretsClient {
	return c.secrets
}

// Deployments implements platz.Client.Deployments.
func (c *Client) Deployments() platz.DeploymentsClient {
	return c.deployments
}

// DeploymentKinds implements platz.Client.DeploymentKinds.
func (c *Client) DeploymentKinds() platz.DeploymentKindsClient {
	return c.deploymentKinds
}

// K8sClusters implements platz.Client.K8sClusters.
func (c *Client) K8sClusters() platz.K8sClustersClient {
	return c.k8sClusters
}

// DeploymentTasks implements platz.Client.DeploymentTasks.
func (c *Client) DeploymentTasks() platz.DeploymentTasksClient {
	return c.deploymentTasks
}

// DeploymentResources implements platz.Client.DeploymentResources.
func (c *Client) DeploymentResources() platz.DeploymentResourcesClient {
	return c.deploymentResources
}

// DeploymentResourceTypes implements platz.Client.DeploymentResourceTypes.
func (c *Client) DeploymentResourceTypes() platz.DeploymentResourceTypesClient {
	return c.deploymentResourceTypes
}

// K8sResources implements platz.Client.K8sResources.
func (c *Client) K8sResources() platz.K8sResourcesClient {
	return c.k8sResources
}

// HelmCharts implements platz.Client.HelmCharts.
func (c *Client) HelmCharts() platz.HelmChartsClient {
	return c.helmCharts
}

// HelmRegistries implements platz.Client.HelmRegistries.
func (c *Client) HelmRegistries() platz.HelmRegistriesClient {
	return c.helmRegistries
}

func resourcePath(resource string, parts ...string) string {
	path := constants.APIPrefix + "/" + resource
	for _, part := range parts {
		path += "/" + part
	}

	return path
}
