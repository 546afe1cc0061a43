package config_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/cli/config"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

func TestLogHandlerRedactsSecrets(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			handler, err := config.NewLogHandler(&buf, format, slog.LevelDebug)
			gt.NoError(t, err).Required()

			logger := slog.New(handler)
			logger.Info("saved",
				"params", model.InstallationParameters{AccessToken: "secret-token-value", WorkspaceID: "ws1"},
				"raw", "tfp_abcdefghijk",
			)

			out := buf.String()
			gt.Bool(t, strings.Contains(out, "secret-token-value")).False()
			gt.Bool(t, strings.Contains(out, "tfp_abcdefghijk")).False()
			gt.Bool(t, strings.Contains(out, "ws1")).True()
		})
	}
}

func TestLogHandlerInvalidFormat(t *testing.T) {
	_, err := config.NewLogHandler(&bytes.Buffer{}, "xml", slog.LevelInfo)
	gt.Error(t, err)
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("invalid level", func(t *testing.T) {
		logger := config.NewLoggerForTest("verbose", "json", "stderr")
		_, err := logger.Configure()
		gt.Error(t, err)
	})

	t.Run("file output", func(t *testing.T) {
		path := t.TempDir() + "/app.log"
		logger := config.NewLoggerForTest("info", "json", path)
		closer, err := logger.Configure()
		gt.NoError(t, err).Required()
		closer()
	})
}
