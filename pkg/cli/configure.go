package cli

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdConfigure() *cli.Command {
	var accessToken string
	var workspaceID string
	var selects []string
	var clearSelection bool
	var env environment

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "access-token",
			Usage:       "Typeform access token to save. Keeps the loaded token when omitted",
			Sources:     cli.EnvVars("TYPEFORM_APP_ACCESS_TOKEN"),
			Destination: &accessToken,
		},
		&cli.StringFlag{
			Name:        "workspace-id",
			Usage:       "Typeform workspace ID to save. Keeps the loaded workspace when omitted",
			Destination: &workspaceID,
		},
		&cli.StringSliceFlag{
			Name:        "select",
			Usage:       "Field to bind as <contentTypeId>:<fieldId> (repeatable). Replaces the loaded selection",
			Destination: &selects,
		},
		&cli.BoolFlag{
			Name:        "clear-selection",
			Usage:       "Unbind every field",
			Destination: &clearSelection,
		},
	}
	flags = append(flags, env.Flags()...)

	return &cli.Command{
		Name:  "configure",
		Usage: "Run the configuration screen headless and save the result",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			input := usecase.ConfigInput{}
			if c.IsSet("access-token") {
				input.AccessToken = &accessToken
			}
			if c.IsSet("workspace-id") {
				input.WorkspaceID = &workspaceID
			}

			selected, err := parseSelection(selects)
			if err != nil {
				return err
			}
			switch {
			case clearSelection:
				input.SelectedFields = model.SelectedFields{}
			case len(selected) > 0:
				input.SelectedFields = selected
			}

			uc, closer, err := env.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			notifier := &usecase.MessageNotifier{}
			result, err := uc.Config.Save(ctx, input, notifier)
			if err != nil {
				for _, msg := range notifier.Messages {
					logging.Default().Warn(msg)
				}
				return goerr.Wrap(err, "failed to configure")
			}

			enc := json.NewEncoder(c.Root().Writer)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return goerr.Wrap(err, "failed to write result")
			}
			return nil
		},
	}
}

// parseSelection parses <contentTypeId>:<fieldId> pairs keeping their order
func parseSelection(values []string) (model.SelectedFields, error) {
	selected := model.SelectedFields{}
	for _, v := range values {
		ctID, fieldID, ok := strings.Cut(v, ":")
		if !ok || ctID == "" || fieldID == "" {
			return nil, goerr.New("selection must be <contentTypeId>:<fieldId>", goerr.V("value", v))
		}
		selected.Add(types.ContentTypeID(ctID), types.FieldID(fieldID))
	}
	return selected, nil
}
