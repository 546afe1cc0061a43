package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/repository/memory"
)

const testAppID types.AppID = "typeform-app-id"

type fakeBackend struct {
	mu            sync.Mutex
	workspaces    []model.WorkspaceOption
	workspacesErr error
	forms         []model.FormOption
	formsErr      error
	block         chan struct{}

	workspaceTokens []string
	formCalls       [][2]string
}

func (f *fakeBackend) ListWorkspaces(ctx context.Context, accessToken string) ([]model.WorkspaceOption, error) {
	f.mu.Lock()
	f.workspaceTokens = append(f.workspaceTokens, accessToken)
	f.mu.Unlock()

	if f.workspacesErr != nil {
		return nil, f.workspacesErr
	}
	return f.workspaces, nil
}

func (f *fakeBackend) ListForms(ctx context.Context, workspaceID, accessToken string) ([]model.FormOption, error) {
	f.mu.Lock()
	f.formCalls = append(f.formCalls, [2]string{workspaceID, accessToken})
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	if f.formsErr != nil {
		return nil, f.formsErr
	}
	return f.forms, nil
}

type fakeSlot struct {
	value  string
	setErr error
	getErr error

	sets    []string
	removes int
}

func (s *fakeSlot) GetValue(ctx context.Context) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.value, nil
}

func (s *fakeSlot) SetValue(ctx context.Context, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.sets = append(s.sets, value)
	s.value = value
	return nil
}

func (s *fakeSlot) RemoveValue(ctx context.Context) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.removes++
	s.value = ""
	return nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) Error(ctx context.Context, msg string) {
	n.messages = append(n.messages, msg)
}

var errBoom = errors.New("boom")

func blogPost() model.ContentType {
	return model.ContentType{
		ID:   "blogPost",
		Name: "Blog Post",
		Fields: []model.Field{
			{ID: "title", Name: "Title", Type: types.FieldTypeSymbol},
			{ID: "body", Name: "Body", Type: types.FieldTypeText},
			{ID: "form", Name: "Form", Type: types.FieldTypeSymbol},
		},
	}
}

func author() model.ContentType {
	return model.ContentType{
		ID:   "author",
		Name: "Author",
		Fields: []model.Field{
			{ID: "age", Name: "Age", Type: types.FieldTypeInteger},
		},
	}
}

func seedRepo(t *testing.T, cts []model.ContentType, eis []model.EditorInterface) *memory.Memory {
	t.Helper()
	ctx := context.Background()
	repo := memory.New()
	for i := range cts {
		gt.NoError(t, repo.ContentType().Put(ctx, &cts[i])).Required()
	}
	for i := range eis {
		gt.NoError(t, repo.EditorInterface().Put(ctx, &eis[i])).Required()
	}
	return repo
}

func waitReady(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("widget did not become ready")
	}
}
