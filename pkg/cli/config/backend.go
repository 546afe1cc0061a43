package config

import (
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/service/backend"
	"github.com/urfave/cli/v3"
)

// Backend holds CLI flags for the companion backend client
type Backend struct {
	baseURL string
	timeout time.Duration
}

// Flags returns CLI flags for the companion backend client
func (x *Backend) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "backend-url",
			Usage:       "Base URL of the companion backend serving /workspaces and /forms. Typeform is called in process when empty",
			Category:    "Backend",
			Sources:     cli.EnvVars("TYPEFORM_APP_BACKEND_URL"),
			Destination: &x.baseURL,
		},
		&cli.DurationFlag{
			Name:        "backend-timeout",
			Usage:       "Request timeout of the companion backend client (0 for none)",
			Category:    "Backend",
			Sources:     cli.EnvVars("TYPEFORM_APP_BACKEND_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

func (x Backend) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
		slog.Duration("timeout", x.timeout),
	)
}

// Configure creates the companion backend client. It returns nil when no URL is set.
func (x *Backend) Configure() (interfaces.FormsBackend, error) {
	if x.baseURL == "" {
		return nil, nil
	}

	var opts []backend.Option
	if x.timeout > 0 {
		opts = append(opts, backend.WithTimeout(x.timeout))
	}

	client, err := backend.New(x.baseURL, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create backend client")
	}
	return client, nil
}
