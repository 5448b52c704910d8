package platz

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// CoreResourceClients provides access to identity resource clients.
type CoreResourceClients interface {
	Users() UsersClient
	UserTokens() UserTokensClient
	Envs() EnvsClient
	Secrets() SecretsClient
}

// DeploymentClients provides access to deployment resource clients.
type DeploymentClients interface {
	Deployments() DeploymentsClient
	DeploymentKinds() DeploymentKindsClient
	K8sClusters() K8sClustersClient
	DeploymentTasks() DeploymentTasksClient
	DeploymentResources() DeploymentResourcesClient
	DeploymentResourceTypes() DeploymentResourceTypesClient
	K8sResources() K8sResourcesClient
}

// ChartClients provides access to helm chart resource clients.
type ChartClients interface {
	HelmCharts() HelmChartsClient
	HelmRegistries() HelmRegistriesClient
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	CoreResourceClients
	DeploymentClients
	ChartClients
}

// Client is a Platz API client. A Client owns its credential store and is safe
// for concurrent use.
type Client interface {
	ResourceClients

	// Requester exposes the authenticated pipeline for endpoints without a
	// dedicated resource client.
	Requester() Requester

	// Credentials returns the current credentials, refreshing them if expired.
	Credentials(ctx context.Context) (*Credentials, error)
}

// UsersClient binds the /users endpoints.
type UsersClient interface {
	List(ctx context.Context, filters *UserFilters) ([]User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	FindOne(ctx context.Context, filters *UserFilters) (*User, error)
	Update(ctx context.Context, id uuid.UUID, request *UserUpdateRequest) (*User, error)
}

// UserTokensClient binds the /user-tokens endpoints.
type UserTokensClient interface {
	List(ctx context.Context, filters *UserTokenFilters) ([]UserToken, error)
	Get(ctx context.Context, id uuid.UUID) (*UserToken, error)
	Create(ctx context.Context, request *UserTokenCreateRequest) (*UserTokenCreateResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EnvsClient binds the /envs endpoints.
type EnvsClient interface {
	List(ctx context.Context, filters *EnvFilters) ([]Env, error)
	FindOne(ctx context.Context, filters *EnvFilters) (*Env, error)
}

// SecretsClient binds the /secrets endpoints.
type SecretsClient interface {
	List(ctx context.Context, filters *SecretFilters) ([]Secret, error)
	Get(ctx context.Context, id uuid.UUID) (*Secret, error)
	Create(ctx context.Context, request *SecretCreateRequest) (*Secret, error)
	Update(ctx context.Context, id uuid.UUID, request *SecretUpdateRequest) (*Secret, error)
}

// DeploymentsClient binds the /deployments endpoints.
type DeploymentsClient interface {
	List(ctx context.Context, filters *DeploymentFilters) ([]Deployment, error)
	Get(ctx context.Context, id uuid.UUID) (*Deployment, error)
	FindOne(ctx context.Context, filters *DeploymentFilters) (*Deployment, error)
	Create(ctx context.Context, request *DeploymentCreateRequest) (*Deployment, error)
	Update(ctx context.Context, id uuid.UUID, request *DeploymentUpdateRequest) (*Deployment, error)
}

// DeploymentKindsClient binds the /deployment-kinds endpoints.
type DeploymentKindsClient interface {
	List(ctx context.Context, filters *DeploymentKindFilters) ([]DeploymentKind, error)
	Get(ctx context.Context, id uuid.UUID) (*DeploymentKind, error)
}

// K8sClustersClient binds the /k8s-clusters endpoints.
type K8sClustersClient interface {
	List(ctx context.Context, filters *K8sClusterFilters) ([]K8sCluster, error)
	Get(ctx context.Context, id uuid.UUID) (*K8sCluster, error)
}

// DeploymentTasksClient binds the /deployment-tasks endpoints.
type DeploymentTasksClient interface {
	List(ctx context.Context, filters *DeploymentTaskFilters) ([]DeploymentTask, error)
	Get(ctx context.Context, id uuid.UUID) (*DeploymentTask, error)
}

// DeploymentResourcesClient binds the /deployment-resources endpoints.
type DeploymentResourcesClient interface {
	List(ctx context.Context, filters *DeploymentResourceFilters) ([]DeploymentResource, error)
	Get(ctx context.Context, id uuid.UUID) (*DeploymentResource, error)
	Create(ctx context.Context, request *DeploymentResourceCreateRequest) (*DeploymentResource, error)
}

// DeploymentResourceTypesClient binds the /deployment-resource-types endpoints.
type DeploymentResourceTypesClient interface {
	List(ctx context.Context, filters *DeploymentResourceTypeFilters) ([]DeploymentResourceType, error)
	Get(ctx context.Context, id uuid.UUID) (*DeploymentResourceType, error)
	FindOne(ctx context.Context, filters *DeploymentResourceTypeFilters) (*DeploymentResourceType, error)
}

// K8sResourcesClient binds the /k8s-resources endpoints.
type K8sResourcesClient interface {
	List(ctx context.Context, filters *K8sResourceFilters) ([]K8sResource, error)
	Get(ctx context.Context, id uuid.UUID) (*K8sResource, error)
}

// HelmChartsClient binds the /helm-charts endpoints.
type HelmChartsClient interface {
	List(ctx context.Context, filters *HelmChartFilters) ([]HelmChart, error)
	Get(ctx context.Context, id uuid.UUID) (*HelmChart, error)
}

// HelmRegistriesClient binds the /helm-registries endpoints.
type HelmRegistriesClient interface {
	List(ctx context.Context, filters *HelmRegistryFilters) ([]HelmRegistry, error)
	Get(ctx context.Context, id uuid.UUID) (*HelmRegistry, error)
	Update(ctx context.Context, id uuid.UUID, request *HelmRegistryUpdateRequest) (*HelmRegistry, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a platz.Client.
//
// # Credential precedence
//
// Credentials are resolved by walking an ordered chain of sources. The first
// source that finds credentials wins. A source whose inputs are absent is
// skipped; a source whose inputs are present but malformed aborts resolution.
// The default order is:
//  1. env: PLATZ_URL with PLATZ_API_TOKEN (x-platz-token header) or
//     PLATZ_USER_TOKEN (bearer).
//  2. profile: platz/config.toml under ~/.config, then under the platform
//     config directory.
//  3. mounted: access_token, server_url and expires_at under
//     /var/run/secrets/platz, rotated in place by the platform.
//
// # Refresh
//
// Credentials with an expiry are re-resolved through the full chain once the
// expiry has passed. Only one refresh runs at a time per client.
//
// # Retries
//
// The client makes one attempt per request. Retry policy, if any, belongs to
// the caller.
type Config struct {
	// Profile: name of the profile to use from the profile file. When empty,
	// PLATZ_PROFILE is consulted, then the profile flagged default.
	Profile string

	// CredentialSources: ordered source names ("env", "profile", "mounted").
	// Empty means the default order.
	CredentialSources []string

	// Resolvers: replaces the source chain entirely when non-empty.
	Resolvers []Resolver

	// ProfileDirs: config roots searched for platz/config.toml, in order.
	// Empty means ~/.config followed by the platform config directory.
	ProfileDirs []string

	// MountedSecretsDir: overrides /var/run/secrets/platz.
	MountedSecretsDir string

	// HTTPTimeout: per-request timeout of the underlying HTTP client. Context
	// deadlines passed to calls apply in addition.
	HTTPTimeout time.Duration

	// HTTPClient: optional base client whose transport is reused.
	HTTPClient *http.Client

	// PageSize: when positive, sent as page_size on every list request.
	PageSize int

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool

	// Logger: optional structured logger used by the pipeline.
	Logger Logger

	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// Headers: extra headers added to every request. Credential headers cannot
	// be overridden.
	Headers map[string]string

	// Interceptors: optional caller interceptors run after the built-in ones.
	Interceptors *InterceptorChain

	// MetricsRegisterer: when set, request metrics are registered on it.
	MetricsRegisterer prometheus.Registerer
}
