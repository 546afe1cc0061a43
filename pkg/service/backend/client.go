package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/utils/safe"
)

// client implements interfaces.FormsBackend against the companion backend
type client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

var _ interfaces.FormsBackend = &client{}

type Option func(*client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(x *client) {
		x.httpClient = c
	}
}

// WithTimeout sets a request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(x *client) {
		x.httpClient = &http.Client{
			Transport: x.httpClient.Transport,
			Timeout:   d,
		}
	}
}

// New creates a client of the companion backend served at baseURL
func New(baseURL string, opts ...Option) (interfaces.FormsBackend, error) {
	if baseURL == "" {
		return nil, goerr.New("backend base URL is required")
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, goerr.Wrap(err, "invalid backend base URL", goerr.V(model.URLKey, baseURL))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, goerr.New("backend base URL must be http or https", goerr.V(model.URLKey, baseURL))
	}

	c := &client{
		baseURL:    u,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListWorkspaces calls GET /workspaces/{accessToken}
func (c *client) ListWorkspaces(ctx context.Context, accessToken string) ([]model.WorkspaceOption, error) {
	var resp model.WorkspacesResponse
	if err := c.get(ctx, &resp, "workspaces", accessToken); err != nil {
		return nil, goerr.Wrap(err, "failed to list workspaces")
	}
	return resp.Options(), nil
}

// ListForms calls GET /forms/{workspaceId}/{accessToken}
func (c *client) ListForms(ctx context.Context, workspaceID, accessToken string) ([]model.FormOption, error) {
	var resp model.FormsResponse
	if err := c.get(ctx, &resp, "forms", workspaceID, accessToken); err != nil {
		return nil, goerr.Wrap(err, "failed to list forms", goerr.V(model.WorkspaceIDKey, workspaceID))
	}
	return resp.Options(), nil
}

func (c *client) get(ctx context.Context, out any, segments ...string) error {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.Join(escaped, "/")
	u.RawPath = c.baseURL.EscapedPath() + "/" + strings.Join(escaped, "/")

	// The token is part of the path, so only the endpoint kind goes into error values.
	endpoint := segments[0]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return goerr.Wrap(model.ErrFetch, "failed to build request", goerr.V("endpoint", endpoint), goerr.V("cause", err.Error()))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(model.ErrFetch, "request failed", goerr.V("endpoint", endpoint), goerr.V("cause", redact(err.Error(), segments[1:])))
	}
	defer safe.CloseBody(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return goerr.Wrap(model.ErrFetch, "unexpected status from backend",
			goerr.V("endpoint", endpoint),
			goerr.V(model.StatusCodeKey, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return goerr.Wrap(model.ErrFetch, "failed to decode backend response",
			goerr.V("endpoint", endpoint),
			goerr.V("cause", err.Error()))
	}
	return nil
}

// redact removes path secrets from transport error messages, which embed the URL
func redact(msg string, secrets []string) string {
	for _, s := range secrets {
		if s == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, url.PathEscape(s), "[REDACTED]")
		msg = strings.ReplaceAll(msg, s, "[REDACTED]")
	}
	return msg
}
