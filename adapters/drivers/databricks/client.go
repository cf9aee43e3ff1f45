// Package databricks is a client for the Azure Databricks REST API 2.0
// authenticated with Microsoft Entra ID service principal tokens.
package databricks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/yaegashi/mlpipeops/internal/logging"
)

const (
	moduleName    = "mlpipeops/databricks"
	moduleVersion = "v1"

	// Application ID of the AzureDatabricks first-party app.
	databricksScope = "2ff814a6-3304-4ab8-85cb-cd0e6f879c1d/.default"
	managementScope = "https://management.core.windows.net/.default"

	headerManagementToken     = "X-Databricks-Azure-SP-Management-Token"
	headerWorkspaceResourceID = "X-Databricks-Azure-Workspace-Resource-Id"

	apiPrefix = "/api/2.0/"
)

// Options configures a Client.
type Options struct {
	// WorkspaceResourceID is the ARM ID of the Databricks workspace. It lets a
	// service principal that is not yet a workspace user be provisioned on first call.
	WorkspaceResourceID string
	// ClientOptions overrides transport, retry and telemetry settings.
	ClientOptions policy.ClientOptions
}

// Client calls the Databricks REST API.
type Client struct {
	pl      runtime.Pipeline
	baseURL string
}

// RegionURL returns the regional control plane URL used when the workspace URL is unknown.
func RegionURL(location string) string {
	return fmt.Sprintf("https://%s.azuredatabricks.net", strings.ToLower(strings.ReplaceAll(location, " ", "")))
}

// New returns a client for the workspace at host (with or without https:// scheme).
func New(host string, cred azcore.TokenCredential, opts *Options) (*Client, error) {
	if cred == nil {
		return nil, fmt.Errorf("credential is required")
	}
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return nil, fmt.Errorf("workspace host is required")
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	if opts == nil {
		opts = &Options{}
	}

	perRetry := []policy.Policy{runtime.NewBearerTokenPolicy(cred, []string{databricksScope}, nil)}
	if opts.WorkspaceResourceID != "" {
		perRetry = append(perRetry, &workspaceHeadersPolicy{cred: cred, resourceID: opts.WorkspaceResourceID})
	}
	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{PerRetry: perRetry}, &opts.ClientOptions)
	return &Client{pl: pl, baseURL: host + apiPrefix}, nil
}

// workspaceHeadersPolicy adds the management token and workspace resource ID headers.
type workspaceHeadersPolicy struct {
	cred       azcore.TokenCredential
	resourceID string
}

func (p *workspaceHeadersPolicy) Do(req *policy.Request) (*http.Response, error) {
	tk, err := p.cred.GetToken(req.Raw().Context(), policy.TokenRequestOptions{Scopes: []string{managementScope}})
	if err != nil {
		return nil, fmt.Errorf("acquire management token: %w", err)
	}
	req.Raw().Header.Set(headerManagementToken, tk.Token)
	req.Raw().Header.Set(headerWorkspaceResourceID, p.resourceID)
	return req.Next()
}

// APIError is a non-2xx response from the Databricks API.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
}

func (e *APIError) Error() string {
	if e.ErrorCode == "" {
		return fmt.Sprintf("databricks: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}
	return fmt.Sprintf("databricks: %d %s (%s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.ErrorCode, e.Message)
}

// IsErrorCode reports whether err is an APIError with the given error_code.
func IsErrorCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == code
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	log := logging.FromContext(ctx)

	req, err := runtime.NewRequest(ctx, method, c.baseURL+endpoint)
	if err != nil {
		return fmt.Errorf("new request %s: %w", endpoint, err)
	}
	req.Raw().Header.Set("Accept", "application/json")
	if body != nil {
		if err := runtime.MarshalAsJSON(req, body); err != nil {
			return fmt.Errorf("marshal %s request: %w", endpoint, err)
		}
	}

	resp, err := c.pl.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	log.Debug(ctx, "databricks api call", "method", method, "endpoint", endpoint, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		// Drain so the connection can be reused.
		_, _ = runtime.Payload(resp)
		return nil
	}
	if err := runtime.UnmarshalAsJSON(resp, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		ErrorCode string `json:"error_code"`
		Message   string `json:"message"`
	}
	if err := runtime.UnmarshalAsJSON(resp, &payload); err == nil {
		apiErr.ErrorCode = payload.ErrorCode
		apiErr.Message = payload.Message
	}
	if apiErr.Message == "" {
		if b, err := runtime.Payload(resp); err == nil {
			apiErr.Message = strings.TrimSpace(string(b))
		}
	}
	return apiErr
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	return c.do(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}
