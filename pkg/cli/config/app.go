package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// App holds CLI flags identifying the app installation
type App struct {
	appID       string
	accessToken string
}

// Flags returns CLI flags for the app installation
func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "app-id",
			Usage:       "App definition ID used as widget ID for bound fields",
			Category:    "App",
			Value:       "typeform",
			Sources:     cli.EnvVars("TYPEFORM_APP_APP_ID"),
			Destination: &x.appID,
		},
		&cli.StringFlag{
			Name:        "install-access-token",
			Usage:       "Typeform access token entered at install time",
			Category:    "App",
			Sources:     cli.EnvVars("TYPEFORM_APP_INSTALL_ACCESS_TOKEN"),
			Destination: &x.accessToken,
		},
	}
}

func (x App) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("app_id", x.appID),
		slog.Bool("has_install_access_token", x.accessToken != ""),
	)
}

// AppID returns the validated app ID
func (x *App) AppID() (types.AppID, error) {
	id := types.AppID(x.appID)
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid app ID")
	}
	return id, nil
}

// AccessToken returns the install time access token
func (x *App) AccessToken() string {
	return x.accessToken
}
