package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/service/typeform"
	"github.com/urfave/cli/v3"
)

// Typeform holds CLI flags for the upstream Typeform API
type Typeform struct {
	baseURL string
}

// Flags returns CLI flags for the Typeform API client
func (x *Typeform) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "typeform-api-url",
			Usage:       "Base URL of the Typeform API",
			Category:    "Typeform",
			Value:       typeform.DefaultBaseURL,
			Sources:     cli.EnvVars("TYPEFORM_APP_TYPEFORM_API_URL"),
			Destination: &x.baseURL,
		},
	}
}

func (x Typeform) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", x.baseURL),
	)
}

// Configure creates the Typeform API client
func (x *Typeform) Configure() (typeform.Service, error) {
	svc, err := typeform.New(typeform.WithBaseURL(x.baseURL))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create typeform client")
	}
	return svc, nil
}
