package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdField() *cli.Command {
	var ctID string
	var entryID string
	var fieldID string
	var selectHref string
	var reset bool
	var waitTimeout time.Duration
	var env environment

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "content-type",
			Usage:       "Content type ID of the entry",
			Required:    true,
			Destination: &ctID,
		},
		&cli.StringFlag{
			Name:        "entry",
			Usage:       "Entry ID",
			Required:    true,
			Destination: &entryID,
		},
		&cli.StringFlag{
			Name:        "field",
			Usage:       "Field ID bound to a form",
			Required:    true,
			Destination: &fieldID,
		},
		&cli.StringFlag{
			Name:        "select",
			Usage:       "Bind the form with this href",
			Destination: &selectHref,
		},
		&cli.BoolFlag{
			Name:        "reset",
			Usage:       "Clear the bound form",
			Destination: &reset,
		},
		&cli.DurationFlag{
			Name:        "wait",
			Usage:       "How long to wait for forms to load",
			Value:       30 * time.Second,
			Destination: &waitTimeout,
		},
	}
	flags = append(flags, env.Flags()...)

	return &cli.Command{
		Name:  "field",
		Usage: "Open the field widget of an entry field and show or change its bound form",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if reset && selectHref != "" {
				return goerr.New("--select and --reset are exclusive")
			}

			uc, closer, err := env.Configure(ctx)
			if err != nil {
				return err
			}
			defer closer()

			widget, err := uc.Field.Open(ctx, types.ContentTypeID(ctID), types.EntryID(entryID), types.FieldID(fieldID))
			if err != nil {
				return goerr.Wrap(err, "failed to open field widget")
			}
			defer widget.Unmount()

			select {
			case <-widget.Ready():
			case <-time.After(waitTimeout):
				return goerr.New("timed out waiting for forms", goerr.V("wait", waitTimeout))
			case <-ctx.Done():
				return ctx.Err()
			}

			switch {
			case reset:
				if err := widget.Reset(ctx); err != nil {
					return goerr.Wrap(err, "failed to reset field")
				}
			case selectHref != "":
				if err := widget.UpdateValue(ctx, selectHref); err != nil {
					return goerr.Wrap(err, "failed to select form")
				}
			}

			printWidget(c.Root().Writer, widget)
			return nil
		},
	}
}

var (
	labelColor = color.New(color.FgHiBlack)
	okColor    = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow, color.Bold)
	errColor   = color.New(color.FgRed, color.Bold)
)

func printWidget(w io.Writer, widget *usecase.FieldWidget) {
	state := widget.State()

	switch state.Status() {
	case usecase.WidgetError:
		_, _ = errColor.Fprintln(w, "Failed to load forms. Please check the app configuration.")
		return
	case usecase.WidgetLoading:
		_, _ = warnColor.Fprintln(w, "Loading forms")
		return
	}

	_, _ = labelColor.Fprint(w, "status: ")
	switch state.ValueState() {
	case usecase.ValueEmpty:
		_, _ = fmt.Fprintln(w, widget.Placeholder())
	case usecase.ValueValid:
		if state.SelectedForm.IsEmpty() {
			_, _ = okColor.Fprintln(w, "bound")
		} else {
			_, _ = okColor.Fprintln(w, state.SelectedForm.Name)
		}
		_, _ = labelColor.Fprint(w, "href: ")
		_, _ = fmt.Fprintln(w, state.Value)
		if url, err := widget.EditURL(); err == nil {
			_, _ = labelColor.Fprint(w, "edit: ")
			_, _ = fmt.Fprintln(w, url)
		}
		if !state.SelectedForm.IsPublic {
			_, _ = warnColor.Fprintln(w, "This form is private and cannot be previewed")
		}
	case usecase.ValueStale:
		_, _ = warnColor.Fprintln(w, "The bound form no longer exists. Run with --reset to clear the field.")
		_, _ = labelColor.Fprint(w, "href: ")
		_, _ = fmt.Fprintln(w, state.Value)
	}

	_, _ = labelColor.Fprintln(w, "forms:")
	for _, form := range state.Forms {
		marker := " "
		if form.Href == state.Value && state.Value != "" {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, " %s %s (%s)\n", marker, form.Name, form.Href)
	}
}
