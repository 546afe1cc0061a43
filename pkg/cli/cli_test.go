package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/cli"
)

const spacePath = "config/testdata/space.toml"

// newTypeformAPI fakes the Typeform API for the token of the space fixture
func newTypeformAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	authorized := func(w http.ResponseWriter, r *http.Request) bool {
		switch r.Header.Get("Authorization") {
		case "Bearer tfp_fixture", "Bearer tfp_other":
			return true
		}
		w.WriteHeader(http.StatusUnauthorized)
		return false
	}
	mux.HandleFunc("GET /workspaces", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"ws1","name":"Marketing"}]}`))
	})
	mux.HandleFunc("GET /forms", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		_, _ = w.Write([]byte(`{"items":[
			{"id":"abc","title":"Survey","settings":{"is_public":true},"_links":{"display":"https://f.typeform.com/to/abc"}},
			{"id":"def","title":"Feedback","settings":{"is_public":false},"_links":{"display":"https://f.typeform.com/to/def"}}
		]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	argv := append([]string{"typeform-app", "--log-level", "error"}, args...)
	err := cli.RunWithWriter(context.Background(), argv, "test", &out)
	return out.String(), err
}

type configureOutput struct {
	Parameters struct {
		AccessToken string `json:"accessToken"`
		WorkspaceID string `json:"workspaceId"`
	} `json:"parameters"`
	TargetState map[string]struct {
		EditorInterface struct {
			Controls []struct {
				FieldID         string `json:"fieldId"`
				WidgetID        string `json:"widgetId"`
				WidgetNamespace string `json:"widgetNamespace"`
			} `json:"controls"`
		} `json:"editorInterface"`
	} `json:"targetState"`
}

func TestConfigureCommand(t *testing.T) {
	api := newTypeformAPI(t)

	t.Run("saves selection", func(t *testing.T) {
		out, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--workspace-id", " ws1 ",
			"--select", "blogPost:title",
			"--select", "blogPost:signupForm",
		)
		gt.NoError(t, err).Required()

		var result configureOutput
		gt.NoError(t, json.Unmarshal([]byte(out), &result)).Required()
		gt.Value(t, result.Parameters.AccessToken).Equal("tfp_fixture")
		gt.Value(t, result.Parameters.WorkspaceID).Equal("ws1")

		blog, ok := result.TargetState["blogPost"]
		gt.Bool(t, ok).True()
		gt.Array(t, blog.EditorInterface.Controls).Length(2)
		gt.Value(t, blog.EditorInterface.Controls[0].FieldID).Equal("title")
		gt.Value(t, blog.EditorInterface.Controls[0].WidgetID).Equal("typeform")
		gt.Value(t, blog.EditorInterface.Controls[0].WidgetNamespace).Equal("app")
		gt.Value(t, blog.EditorInterface.Controls[1].FieldID).Equal("signupForm")

		author, ok := result.TargetState["author"]
		gt.Bool(t, ok).True()
		gt.Array(t, author.EditorInterface.Controls).Length(0)
	})

	t.Run("keeps loaded selection", func(t *testing.T) {
		out, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
		)
		gt.NoError(t, err).Required()

		var result configureOutput
		gt.NoError(t, json.Unmarshal([]byte(out), &result)).Required()
		controls := result.TargetState["blogPost"].EditorInterface.Controls
		gt.Array(t, controls).Length(2)
		gt.Value(t, controls[0].WidgetID).Equal("singleLine")
		gt.Value(t, controls[1].WidgetID).Equal("typeform")
	})

	t.Run("clears selection", func(t *testing.T) {
		out, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--clear-selection",
		)
		gt.NoError(t, err).Required()

		var result configureOutput
		gt.NoError(t, json.Unmarshal([]byte(out), &result)).Required()
		controls := result.TargetState["blogPost"].EditorInterface.Controls
		gt.Array(t, controls).Length(1)
		gt.Value(t, controls[0].FieldID).Equal("title")
		gt.Value(t, controls[0].WidgetID).Equal("singleLine")
	})

	t.Run("rejects empty workspace", func(t *testing.T) {
		out, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--workspace-id", "  ",
		)
		gt.Value(t, err).NotNil()
		gt.Value(t, out).Equal("")
	})

	t.Run("rejects incompatible field", func(t *testing.T) {
		_, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--select", "blogPost:body",
		)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects malformed selection", func(t *testing.T) {
		_, err := runCLI(t, "configure",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--select", "blogPost",
		)
		gt.Value(t, err).NotNil()
	})
}

func TestFieldCommand(t *testing.T) {
	api := newTypeformAPI(t)
	base := []string{"field",
		"--space", spacePath,
		"--typeform-api-url", api.URL,
		"--content-type", "blogPost",
		"--entry", "entry1",
		"--field", "signupForm",
	}

	t.Run("shows bound form", func(t *testing.T) {
		out, err := runCLI(t, base...)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(out, "Survey")).True()
		gt.Bool(t, strings.Contains(out, "https://admin.typeform.com/form/abc/create")).True()
		gt.Bool(t, strings.Contains(out, "Feedback")).True()
	})

	t.Run("selects another form", func(t *testing.T) {
		out, err := runCLI(t, append(base, "--select", "https://f.typeform.com/to/def")...)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(out, "https://f.typeform.com/to/def")).True()
		gt.Bool(t, strings.Contains(out, "cannot be previewed")).True()
	})

	t.Run("resets field", func(t *testing.T) {
		out, err := runCLI(t, append(base, "--reset")...)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(out, "Choose typeform")).True()
	})

	t.Run("rejects unknown form", func(t *testing.T) {
		_, err := runCLI(t, append(base, "--select", "https://f.typeform.com/to/zzz")...)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects exclusive flags", func(t *testing.T) {
		_, err := runCLI(t, append(base, "--reset", "--select", "https://f.typeform.com/to/abc")...)
		gt.Value(t, err).NotNil()
	})

	t.Run("rejects incompatible field", func(t *testing.T) {
		_, err := runCLI(t, "field",
			"--space", spacePath,
			"--typeform-api-url", api.URL,
			"--content-type", "blogPost",
			"--entry", "entry1",
			"--field", "body",
		)
		gt.Value(t, err).NotNil()
	})
}
