package typeform_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/service/typeform"
)

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /workspaces", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"AUTHENTICATION_FAILED","description":"Authentication credentials not found on the Request Headers"}`))
			return
		}
		gt.Value(t, r.URL.Query().Get("page_size")).Equal("200")
		_, _ = w.Write([]byte(`{"total_items":1,"page_count":1,"items":[{"id":"ws1","name":"Marketing","default":true}]}`))
	})
	mux.HandleFunc("GET /forms", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("workspace_id")).Equal("ws1")
		_, _ = w.Write([]byte(`{"total_items":1,"page_count":1,"items":[
			{"id":"abc","title":"Survey","settings":{"is_public":false},"_links":{"display":"https://f.typeform.com/to/abc"}}
		]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListWorkspaces(t *testing.T) {
	srv := newFakeAPI(t)
	svc, err := typeform.New(typeform.WithBaseURL(srv.URL))
	gt.NoError(t, err).Required()

	resp, err := svc.ListWorkspaces(context.Background(), "tok")
	gt.NoError(t, err).Required()
	gt.Array(t, resp.Workspaces.Items).Length(1).Required()
	gt.Value(t, resp.Workspaces.Items[0].Name).Equal("Marketing")
}

func TestListWorkspaces_Unauthorized(t *testing.T) {
	srv := newFakeAPI(t)
	svc, err := typeform.New(typeform.WithBaseURL(srv.URL))
	gt.NoError(t, err).Required()

	_, err = svc.ListWorkspaces(context.Background(), "wrong")
	gt.Value(t, err).NotNil()

	var apiErr *typeform.APIError
	gt.Bool(t, errors.As(err, &apiErr)).True()
	gt.Value(t, apiErr.StatusCode).Equal(http.StatusUnauthorized)
	gt.Value(t, apiErr.Code).Equal("AUTHENTICATION_FAILED")
}

func TestListForms(t *testing.T) {
	srv := newFakeAPI(t)
	svc, err := typeform.New(typeform.WithBaseURL(srv.URL + "/"))
	gt.NoError(t, err).Required()

	resp, err := svc.ListForms(context.Background(), "tok", "ws1")
	gt.NoError(t, err).Required()
	gt.Array(t, resp.Forms.Items).Length(1).Required()

	form := resp.Forms.Items[0]
	gt.Value(t, form.Title).Equal("Survey")
	gt.Value(t, form.Links.Display).Equal("https://f.typeform.com/to/abc")
	gt.Bool(t, form.Settings.IsPublic).False()
}

func TestListForms_RequiresInputs(t *testing.T) {
	svc, err := typeform.New()
	gt.NoError(t, err).Required()

	_, err = svc.ListForms(context.Background(), "tok", "")
	gt.Value(t, err).NotNil()

	_, err = svc.ListForms(context.Background(), "", "ws1")
	gt.Value(t, err).NotNil()
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_TYPEFORM_ACCESS_TOKEN")
	if token == "" {
		t.Skip("TEST_TYPEFORM_ACCESS_TOKEN is not set")
	}

	svc, err := typeform.New()
	gt.NoError(t, err).Required()

	workspaces, err := svc.ListWorkspaces(context.Background(), token)
	gt.NoError(t, err).Required()
	for _, ws := range workspaces.Workspaces.Items {
		t.Logf("Found workspace: %s (%s)", ws.Name, ws.ID)
	}

	if len(workspaces.Workspaces.Items) == 0 {
		t.Skip("No workspaces available to list forms")
	}

	forms, err := svc.ListForms(context.Background(), token, workspaces.Workspaces.Items[0].ID)
	gt.NoError(t, err).Required()
	t.Logf("Forms in first workspace: %d", len(forms.Forms.Items))
}
