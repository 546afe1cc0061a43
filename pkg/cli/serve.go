package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/cli/config"
	httpctrl "github.com/secmon-lab/typeform-app/pkg/controller/http"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var allowedOrigins []string
	var enableConfigAPI bool
	var env environment

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TYPEFORM_APP_ADDR"),
			Destination: &addr,
		},
		&cli.StringSliceFlag{
			Name:        "allowed-origin",
			Usage:       "Origin allowed to call the server from a browser (repeatable)",
			Sources:     cli.EnvVars("TYPEFORM_APP_ALLOWED_ORIGINS"),
			Destination: &allowedOrigins,
		},
		&cli.BoolFlag{
			Name:        "config-api",
			Usage:       "Serve /api/config to load and save the configuration",
			Sources:     cli.EnvVars("TYPEFORM_APP_CONFIG_API"),
			Destination: &enableConfigAPI,
		},
	}
	flags = append(flags, env.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, closer, err := env.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			httpHandler, err := httpctrl.New(uc,
				httpctrl.WithAllowedOrigins(allowedOrigins),
				httpctrl.WithConfigAPI(enableConfigAPI),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr, "config_api", enableConfigAPI)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// environment is the flag set shared by commands that need use cases
type environment struct {
	app      config.App
	repo     config.Repository
	space    config.Space
	backend  config.Backend
	typeform config.Typeform
}

func (x *environment) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.app.Flags()...)
	flags = append(flags, x.repo.Flags()...)
	flags = append(flags, x.space.Flags()...)
	flags = append(flags, x.backend.Flags()...)
	flags = append(flags, x.typeform.Flags()...)
	return flags
}

// Configure builds the use cases. The returned function closes the repository.
func (x *environment) Configure(ctx context.Context) (*usecase.UseCases, func(), error) {
	appID, err := x.app.AppID()
	if err != nil {
		return nil, nil, err
	}

	repo, err := x.repo.Configure(ctx)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize repository")
	}
	closer := func() {
		if err := repo.Close(); err != nil {
			logging.Default().Error("failed to close repository", "error", err.Error())
		}
	}

	if err := x.space.Configure(ctx, repo); err != nil {
		closer()
		return nil, nil, goerr.Wrap(err, "failed to seed space")
	}

	tf, err := x.typeform.Configure()
	if err != nil {
		closer()
		return nil, nil, err
	}

	opts := []usecase.Option{
		usecase.WithTypeform(tf),
		usecase.WithInstallAccessToken(x.app.AccessToken()),
	}

	fb, err := x.backend.Configure()
	if err != nil {
		closer()
		return nil, nil, err
	}
	if fb != nil {
		opts = append(opts, usecase.WithBackend(fb))
	}

	logging.Default().Info("Configured environment",
		"app", x.app,
		"repository", x.repo,
		"backend", x.backend,
		"typeform", x.typeform,
	)

	return usecase.New(repo, appID, opts...), closer, nil
}
