package platz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a Platz user.
type User struct {
	ID          uuid.UUID `json:"id"           yaml:"id"`
	CreatedAt   time.Time `json:"created_at"   yaml:"created_at"`
	DisplayName string    `json:"display_name" yaml:"display_name"`
	Email       string    `json:"email"        yaml:"email"`
	IsAdmin     bool      `json:"is_admin"     yaml:"is_admin"`
	IsActive    bool      `json:"is_active"    yaml:"is_active"`
}

// UserFilters narrows user listings.
type UserFilters struct {
	DisplayName *string
	Email       *string
	IsActive    *bool
}

// ToQuery converts the filters to query parameters.
func (f *UserFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("display_name", f.DisplayName).
		SetOptional("email", f.Email).
		SetBool("is_active", f.IsActive)
}

// UserUpdateRequest updates a user.
type UserUpdateRequest struct {
	IsAdmin  *bool `json:"is_admin,omitempty"`
	IsActive *bool `json:"is_active,omitempty"`
}

// UserToken represents an API token owned by a user.
type UserToken struct {
	ID        uuid.UUID `json:"id"         yaml:"id"`
	UserID    uuid.UUID `json:"user_id"    yaml:"user_id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// UserTokenFilters narrows user token listings.
type UserTokenFilters struct {
	UserID *uuid.UUID
}

// ToQuery converts the filters to query parameters.
func (f *UserTokenFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f != nil && f.UserID != nil {
		q.Set("user_id", f.UserID.String())
	}

	return q
}

// UserTokenCreateRequest creates a token, for the caller when UserID is nil.
type UserTokenCreateRequest struct {
	UserID *uuid.UUID `json:"user_id"`
}

// UserTokenCreateResponse carries the newly created token secret.
type UserTokenCreateResponse struct {
	CreatedToken string `json:"created_token"`
}

// Env represents a Platz environment.
type Env struct {
	ID              uuid.UUID       `json:"id"                 yaml:"id"`
	CreatedAt       time.Time       `json:"created_at"         yaml:"created_at"`
	Name            string          `json:"name"               yaml:"name"`
	NodeSelector    json.RawMessage `json:"node_selector"      yaml:"-"`
	Tolerations     json.RawMessage `json:"tolerations"        yaml:"-"`
	AutoAddNewUsers bool            `json:"auto_add_new_users" yaml:"auto_add_new_users"`
}

// EnvFilters narrows env listings.
type EnvFilters struct {
	Name            *string
	AutoAddNewUsers *bool
}

// ToQuery converts the filters to query parameters.
func (f *EnvFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("name", f.Name).SetBool("auto_add_new_users", f.AutoAddNewUsers)
}

// Secret represents an env secret. Contents are write-only.
type Secret struct {
	ID         uuid.UUID `json:"id"         yaml:"id"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" yaml:"updated_at"`
	EnvID      uuid.UUID `json:"env_id"     yaml:"env_id"`
	Collection string    `json:"collection" yaml:"collection"`
	Name       string    `json:"name"       yaml:"name"`
}

// SecretFilters narrows secret listings.
type SecretFilters struct {
	Name       *string
	EnvID      *uuid.UUID
	Collection *string
}

// ToQuery converts the filters to query parameters.
func (f *SecretFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	q.SetOptional("name", f.Name)

	if f.EnvID != nil {
		q.Set("env_id", f.EnvID.String())
	}

	return q.SetOptional("collection", f.Collection)
}

// SecretCreateRequest creates a secret.
type SecretCreateRequest struct {
	EnvID      uuid.UUID `json:"env_id"`
	Collection string    `json:"collection"`
	Name       string    `json:"name"`
	Contents   string    `json:"contents"`
}

// SecretUpdateRequest updates a secret.
type SecretUpdateRequest struct {
	Name     *string `json:"name,omitempty"`
	Contents *string `json:"contents,omitempty"`
}

// DeploymentStatus is the lifecycle state of a deployment.
type DeploymentStatus string

// Deployment statuses.
const (
	DeploymentStatusUnknown      DeploymentStatus = "Unknown"
	DeploymentStatusInstalling   DeploymentStatus = "Installing"
	DeploymentStatusRenaming     DeploymentStatus = "Renaming"
	DeploymentStatusUpgrading    DeploymentStatus = "Upgrading"
	DeploymentStatusRunning      DeploymentStatus = "Running"
	DeploymentStatusError        DeploymentStatus = "Error"
	DeploymentStatusUninstalling DeploymentStatus = "Uninstalling"
	DeploymentStatusUninstalled  DeploymentStatus = "Uninstalled"
	DeploymentStatusDeleting     DeploymentStatus = "Deleting"
)

// Deployment represents a deployment of a helm chart to a cluster.
type Deployment struct {
	ID             uuid.UUID        `json:"id"                       yaml:"id"`
	CreatedAt      time.Time        `json:"created_at"               yaml:"created_at"`
	Name           string           `json:"name"                     yaml:"name"`
	KindID         uuid.UUID        `json:"kind_id"                  yaml:"kind_id"`
	ClusterID      uuid.UUID        `json:"cluster_id"               yaml:"cluster_id"`
	Enabled        bool             `json:"enabled"                  yaml:"enabled"`
	Status         DeploymentStatus `json:"status"                   yaml:"status"`
	DescriptionMD  *string          `json:"description_md,omitempty" yaml:"description_md,omitempty"`
	Reason         *string          `json:"reason,omitempty"         yaml:"reason,omitempty"`
	RevisionID     *uuid.UUID       `json:"revision_id,omitempty"    yaml:"revision_id,omitempty"`
	ReportedStatus json.RawMessage  `json:"reported_status"          yaml:"-"`
	HelmChartID    uuid.UUID        `json:"helm_chart_id"            yaml:"helm_chart_id"`
	Config         json.RawMessage  `json:"config"                   yaml:"-"`
	ValuesOverride json.RawMessage  `json:"values_override"          yaml:"-"`
}

// DeploymentFilters narrows deployment listings.
type DeploymentFilters struct {
	Name      *string
	KindID    *string
	ClusterID *uuid.UUID
	Enabled   *bool
	EnvID     *uuid.UUID
}

// ToQuery converts the filters to query parameters.
func (f *DeploymentFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	q.SetOptional("name", f.Name).SetOptional("kind_id", f.KindID)

	if f.ClusterID != nil {
		q.Set("cluster_id", f.ClusterID.String())
	}

	q.SetBool("enabled", f.Enabled)

	if f.EnvID != nil {
		q.Set("env_id", f.EnvID.String())
	}

	return q
}

// DeploymentCreateRequest creates a deployment.
type DeploymentCreateRequest struct {
	Name           string          `json:"name"`
	KindID         uuid.UUID       `json:"kind_id"`
	ClusterID      uuid.UUID       `json:"cluster_id"`
	HelmChartID    uuid.UUID       `json:"helm_chart_id"`
	Config         json.RawMessage `json:"config,omitempty"`
	ValuesOverride json.RawMessage `json:"values_override,omitempty"`
}

// DeploymentUpdateRequest updates a deployment.
type DeploymentUpdateRequest struct {
	Name           *string         `json:"name,omitempty"`
	ClusterID      *uuid.UUID      `json:"cluster_id,omitempty"`
	HelmChartID    *uuid.UUID      `json:"helm_chart_id,omitempty"`
	Config         json.RawMessage `json:"config,omitempty"`
	ValuesOverride json.RawMessage `json:"values_override,omitempty"`
	Enabled        *bool           `json:"enabled,omitempty"`
	DescriptionMD  *string         `json:"description_md,omitempty"`
}

// DeploymentKind represents a kind of deployment.
type DeploymentKind struct {
	ID        uuid.UUID `json:"id"         yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Name      string    `json:"name"       yaml:"name"`
}

// DeploymentKindFilters narrows deployment kind listings.
type DeploymentKindFilters struct {
	Name *string
}

// ToQuery converts the filters to query parameters.
func (f *DeploymentKindFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("name", f.Name)
}

// K8sCluster represents a Kubernetes cluster known to Platz.
type K8sCluster struct {
	ID                    uuid.UUID  `json:"id"                      yaml:"id"`
	EnvID                 *uuid.UUID `json:"env_id"                  yaml:"env_id"`
	ProviderID            string     `json:"provider_id"             yaml:"provider_id"`
	CreatedAt             time.Time  `json:"created_at"              yaml:"created_at"`
	LastSeenAt            time.Time  `json:"last_seen_at"            yaml:"last_seen_at"`
	Name                  string     `json:"name"                    yaml:"name"`
	RegionName            string     `json:"region_name"             yaml:"region_name"`
	IsOK                  bool       `json:"is_ok"                   yaml:"is_ok"`
	NotOKReason           *string    `json:"not_ok_reason"           yaml:"not_ok_reason"`
	Ignore                bool       `json:"ignore"                  yaml:"ignore"`
	IngressDomain         *string    `json:"ingress_domain"          yaml:"ingress_domain"`
	IngressClass          *string    `json:"ingress_class"           yaml:"ingress_class"`
	IngressTLSSecretName  *string    `json:"ingress_tls_secret_name" yaml:"ingress_tls_secret_name"`
	GrafanaURL            *string    `json:"grafana_url"             yaml:"grafana_url"`
	GrafanaDatasourceName *string    `json:"grafana_datasource_name" yaml:"grafana_datasource_name"`
}

// K8sClusterFilters narrows cluster listings.
type K8sClusterFilters struct {
	Name *string
}

// ToQuery converts the filters to query parameters.
func (f *K8sClusterFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("name", f.Name)
}

// DeploymentTaskStatus is the execution state of a deployment task.
type DeploymentTaskStatus string

// Deployment task statuses.
const (
	DeploymentTaskStatusPending DeploymentTaskStatus = "Pending"
	DeploymentTaskStatusStarted DeploymentTaskStatus = "Started"
	DeploymentTaskStatusFailed  DeploymentTaskStatus = "Failed"
	DeploymentTaskStatusDone    DeploymentTaskStatus = "Done"
)

// DeploymentTask is an operation queued against a deployment.
type DeploymentTask struct {
	ID                 uuid.UUID            `json:"id"                   yaml:"id"`
	CreatedAt          time.Time            `json:"created_at"           yaml:"created_at"`
	FirstAttemptedAt   *time.Time           `json:"first_attempted_at"   yaml:"first_attempted_at"`
	StartedAt          *time.Time           `json:"started_at"           yaml:"started_at"`
	FinishedAt         *time.Time           `json:"finished_at"          yaml:"finished_at"`
	ClusterID          uuid.UUID            `json:"cluster_id"           yaml:"cluster_id"`
	DeploymentID       uuid.UUID            `json:"deployment_id"        yaml:"deployment_id"`
	ActingUserID       *uuid.UUID           `json:"acting_user_id"       yaml:"acting_user_id"`
	ActingDeploymentID *uuid.UUID           `json:"acting_deployment_id" yaml:"acting_deployment_id"`
	Operation          json.RawMessage      `json:"operation"            yaml:"-"`
	Status             DeploymentTaskStatus `json:"status"               yaml:"status"`
	Reason             *string              `json:"reason"               yaml:"reason"`
}

var taskOperationNames = map[string]string{
	"InvokeAction":       "Invoke Action",
	"RestartK8sResource": "Restart K8s Resource",
}

// OperationType returns the operation variant, such as "Install" or
// "InvokeAction", or an empty string when the operation cannot be decoded.
func (t *DeploymentTask) OperationType() string {
	var variant string
	if json.Unmarshal(t.Operation, &variant) == nil {
		return variant
	}

	var tagged map[string]json.RawMessage
	if json.Unmarshal(t.Operation, &tagged) != nil || len(tagged) != 1 {
		return ""
	}

	for key := range tagged {
		variant = key
	}

	return variant
}

// OperationName returns a display name for the operation.
func (t *DeploymentTask) OperationName() string {
	variant := t.OperationType()
	if name, ok := taskOperationNames[variant]; ok {
		return name
	}

	return variant
}

// DeploymentTaskFilters narrows deployment task listings.
type DeploymentTaskFilters struct {
	ClusterID    *uuid.UUID
	DeploymentID *uuid.UUID
	ActiveOnly   *bool
	CreatedFrom  *time.Time
}

// ToQuery converts the filters to query parameters.
func (f *DeploymentTaskFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetUUID("cluster_id", f.ClusterID).
		SetUUID("deployment_id", f.DeploymentID).
		SetBool("active_only", f.ActiveOnly).
		SetTime("created_from", f.CreatedFrom)
}

// SyncStatus is the reconciliation state of a deployment resource.
type SyncStatus string

// Sync statuses.
const (
	SyncStatusCreating SyncStatus = "Creating"
	SyncStatusUpdating SyncStatus = "Updating"
	SyncStatusDeleting SyncStatus = "Deleting"
	SyncStatusReady    SyncStatus = "Ready"
	SyncStatusError    SyncStatus = "Error"
)

// DeploymentResource is a resource owned by a deployment, such as a bucket or a queue.
type DeploymentResource struct {
	ID           uuid.UUID       `json:"id"            yaml:"id"`
	CreatedAt    time.Time       `json:"created_at"    yaml:"created_at"`
	TypeID       uuid.UUID       `json:"type_id"       yaml:"type_id"`
	DeploymentID *uuid.UUID      `json:"deployment_id" yaml:"deployment_id"`
	Name         string          `json:"name"          yaml:"name"`
	Exists       bool            `json:"exists"        yaml:"exists"`
	Props        json.RawMessage `json:"props"         yaml:"-"`
	SyncStatus   SyncStatus      `json:"sync_status"   yaml:"sync_status"`
	SyncReason   *string         `json:"sync_reason"   yaml:"sync_reason"`
}

// DeploymentResourceFilters narrows deployment resource listings.
type DeploymentResourceFilters struct {
	TypeID *uuid.UUID
}

// ToQuery converts the filters to query parameters.
func (f *DeploymentResourceFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetUUID("type_id", f.TypeID)
}

// DeploymentResourceCreateRequest creates a deployment resource.
type DeploymentResourceCreateRequest struct {
	ID           *uuid.UUID      `json:"id,omitempty"`
	CreatedAt    *time.Time      `json:"created_at,omitempty"`
	TypeID       uuid.UUID       `json:"type_id"`
	DeploymentID uuid.UUID       `json:"deployment_id"`
	Name         string          `json:"name"`
	Props        json.RawMessage `json:"props"`
	SyncStatus   *SyncStatus     `json:"sync_status,omitempty"`
}

// DeploymentResourceType describes a kind of resource deployments may own.
type DeploymentResourceType struct {
	ID             uuid.UUID       `json:"id"              yaml:"id"`
	CreatedAt      time.Time       `json:"created_at"      yaml:"created_at"`
	EnvID          *uuid.UUID      `json:"env_id"          yaml:"env_id"`
	DeploymentKind string          `json:"deployment_kind" yaml:"deployment_kind"`
	Key            string          `json:"key"             yaml:"key"`
	Spec           json.RawMessage `json:"spec"            yaml:"-"`
}

// DeploymentResourceTypeFilters narrows deployment resource type listings.
type DeploymentResourceTypeFilters struct {
	EnvID          *uuid.UUID
	DeploymentKind *string
	Key            *string
}

// ToQuery converts the filters to query parameters.
func (f *DeploymentResourceTypeFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetUUID("env_id", f.EnvID).
		SetOptional("deployment_kind", f.DeploymentKind).
		SetOptional("key", f.Key)
}

// HelmChart is a chart version discovered in a helm registry.
type HelmChart struct {
	ID             uuid.UUID       `json:"id"               yaml:"id"`
	CreatedAt      time.Time       `json:"created_at"       yaml:"created_at"`
	HelmRegistryID uuid.UUID       `json:"helm_registry_id" yaml:"helm_registry_id"`
	ImageDigest    string          `json:"image_digest"     yaml:"image_digest"`
	ImageTag       string          `json:"image_tag"        yaml:"image_tag"`
	Available      bool            `json:"available"        yaml:"available"`
	ValuesUI       json.RawMessage `json:"values_ui"        yaml:"-"`
	ActionsSchema  json.RawMessage `json:"actions_schema"   yaml:"-"`
	Features       json.RawMessage `json:"features"         yaml:"-"`
	ResourceTypes  json.RawMessage `json:"resource_types"   yaml:"-"`
	Error          *string         `json:"error"            yaml:"error"`
	TagFormatID    *uuid.UUID      `json:"tag_format_id"    yaml:"tag_format_id"`
	ParsedVersion  *string         `json:"parsed_version"   yaml:"parsed_version"`
	ParsedRevision *string         `json:"parsed_revision"  yaml:"parsed_revision"`
	ParsedBranch   *string         `json:"parsed_branch"    yaml:"parsed_branch"`
	ParsedCommit   *string         `json:"parsed_commit"    yaml:"parsed_commit"`
}

// HelmChartFilters narrows helm chart listings.
type HelmChartFilters struct {
	HelmRegistryID *uuid.UUID
	ParsedBranch   *string
	InUse          *bool
	Kind           *string
}

// ToQuery converts the filters to query parameters.
func (f *HelmChartFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetUUID("helm_registry_id", f.HelmRegistryID).
		SetOptional("parsed_branch", f.ParsedBranch).
		SetBool("in_use", f.InUse).
		SetOptional("kind", f.Kind)
}

// HelmRegistry is a container registry repository holding helm charts.
type HelmRegistry struct {
	ID         uuid.UUID `json:"id"          yaml:"id"`
	CreatedAt  time.Time `json:"created_at"  yaml:"created_at"`
	DomainName string    `json:"domain_name" yaml:"domain_name"`
	RepoName   string    `json:"repo_name"   yaml:"repo_name"`
	Kind       string    `json:"kind"        yaml:"kind"`
	Available  bool      `json:"available"   yaml:"available"`
	FaIcon     string    `json:"fa_icon"     yaml:"fa_icon"`
}

// HelmRegistryFilters narrows helm registry listings.
type HelmRegistryFilters struct {
	RepoName *string
	Kind     *string
}

// ToQuery converts the filters to query parameters.
func (f *HelmRegistryFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("repo_name", f.RepoName).SetOptional("kind", f.Kind)
}

// HelmRegistryUpdateRequest updates a helm registry.
type HelmRegistryUpdateRequest struct {
	FaIcon *string `json:"fa_icon,omitempty"`
}

// K8sResource is a Kubernetes object created by a deployment.
type K8sResource struct {
	ID            uuid.UUID       `json:"id"              yaml:"id"`
	LastUpdatedAt time.Time       `json:"last_updated_at" yaml:"last_updated_at"`
	ClusterID     uuid.UUID       `json:"cluster_id"      yaml:"cluster_id"`
	DeploymentID  uuid.UUID       `json:"deployment_id"   yaml:"deployment_id"`
	KindID        uuid.UUID       `json:"kind_id"         yaml:"kind_id"`
	APIVersion    string          `json:"api_version"     yaml:"api_version"`
	Name          string          `json:"name"            yaml:"name"`
	StatusColor   []string        `json:"status_color"    yaml:"status_color"`
	Metadata      json.RawMessage `json:"metadata"        yaml:"-"`
}

// K8sResourceFilters narrows Kubernetes resource listings.
type K8sResourceFilters struct {
	Name         *string
	KindID       *uuid.UUID
	ClusterID    *uuid.UUID
	DeploymentID *uuid.UUID
}

// ToQuery converts the filters to query parameters.
func (f *K8sResourceFilters) ToQuery() *QueryParams {
	q := NewQueryParams()
	if f == nil {
		return q
	}

	return q.SetOptional("name", f.Name).
		SetUUID("kind_id", f.KindID).
		SetUUID("cluster_id", f.ClusterID).
		SetUUID("deployment_id", f.DeploymentID)
}
