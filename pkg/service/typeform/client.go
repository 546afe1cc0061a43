package typeform

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/utils/safe"
)

type client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*client)

// WithBaseURL overrides the API endpoint
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a Typeform API service
func New(opts ...Option) (Service, error) {
	c := &client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if _, err := url.Parse(c.baseURL); err != nil {
		return nil, goerr.Wrap(err, "invalid Typeform API base URL", goerr.V(model.URLKey, c.baseURL))
	}
	return c, nil
}

// ListWorkspaces calls GET /workspaces
func (c *client) ListWorkspaces(ctx context.Context, accessToken string) (*model.WorkspacesResponse, error) {
	query := url.Values{}
	query.Set("page_size", strconv.Itoa(pageSize))

	var items model.WorkspaceItems
	if err := c.get(ctx, accessToken, "/workspaces", query, &items); err != nil {
		return nil, goerr.Wrap(err, "failed to list Typeform workspaces")
	}
	return &model.WorkspacesResponse{Workspaces: items}, nil
}

// ListForms calls GET /forms?workspace_id=
func (c *client) ListForms(ctx context.Context, accessToken, workspaceID string) (*model.FormsResponse, error) {
	if workspaceID == "" {
		return nil, goerr.New("workspace ID is required")
	}

	query := url.Values{}
	query.Set("workspace_id", workspaceID)
	query.Set("page_size", strconv.Itoa(pageSize))

	var items model.FormItems
	if err := c.get(ctx, accessToken, "/forms", query, &items); err != nil {
		return nil, goerr.Wrap(err, "failed to list Typeform forms", goerr.V(model.WorkspaceIDKey, workspaceID))
	}
	return &model.FormsResponse{Forms: items}, nil
}

func (c *client) get(ctx context.Context, accessToken, path string, query url.Values, out any) error {
	if accessToken == "" {
		return goerr.New("access token is required")
	}

	endpoint := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to build request", goerr.V("path", path))
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "request to Typeform API failed", goerr.V("path", path))
	}
	defer safe.CloseBody(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return goerr.Wrap(apiErr, "unexpected status from Typeform API",
			goerr.V("path", path),
			goerr.V(model.StatusCodeKey, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(err, "failed to decode Typeform API response", goerr.V("path", path))
	}
	return nil
}
