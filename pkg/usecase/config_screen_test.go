package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
)

type fakeSpace struct {
	contentTypes    []model.ContentType
	contentTypesErr error
	eis             []model.EditorInterface
	eisErr          error
}

func (s *fakeSpace) GetContentTypes(ctx context.Context) ([]model.ContentType, error) {
	return s.contentTypes, s.contentTypesErr
}

func (s *fakeSpace) GetEditorInterfaces(ctx context.Context) ([]model.EditorInterface, error) {
	return s.eis, s.eisErr
}

type fakeApp struct {
	params *model.InstallationParameters
	err    error
}

func (a *fakeApp) GetParameters(ctx context.Context) (*model.InstallationParameters, error) {
	return a.params, a.err
}

func newSpace() *fakeSpace {
	return &fakeSpace{
		contentTypes: []model.ContentType{author(), blogPost()},
		eis: []model.EditorInterface{
			{
				ContentTypeID: "blogPost",
				Controls: []model.Control{
					{FieldID: "title", WidgetID: "singleLine", WidgetNamespace: types.WidgetNamespaceBuiltin},
					{FieldID: "form", WidgetID: testAppID.WidgetID(), WidgetNamespace: types.WidgetNamespaceApp},
				},
			},
		},
	}
}

func TestConfigScreenActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("loads saved state", func(t *testing.T) {
		backend := &fakeBackend{workspaces: []model.WorkspaceOption{{ID: "ws1", Name: "Main"}}}
		app := &fakeApp{params: &model.InstallationParameters{AccessToken: "saved", WorkspaceID: "ws1"}}
		screen := usecase.NewConfigScreen(newSpace(), app, backend, testAppID)

		gt.NoError(t, screen.Activate(ctx)).Required()
		state := screen.State()
		gt.Bool(t, state.Ready).True()
		gt.Value(t, state.AccessToken).Equal("saved")
		gt.Value(t, state.WorkspaceID).Equal("ws1")
		gt.Array(t, state.Workspaces).Length(1)
		gt.Array(t, state.AllContentTypes).Length(2)
		gt.Array(t, state.ContentTypes).Length(1).Required()
		gt.Value(t, state.ContentTypes[0].ID).Equal(types.ContentTypeID("blogPost"))
		gt.Value(t, state.SelectedFields["blogPost"]).Equal([]types.FieldID{"form"})
		gt.Value(t, screen.WorkspacePlaceholder()).Equal("Choose workspace")

		gt.Value(t, backend.workspaceTokens).Equal([]string{"saved"})
	})

	t.Run("install token is used for workspaces", func(t *testing.T) {
		backend := &fakeBackend{workspaces: []model.WorkspaceOption{{ID: "ws1"}}}
		screen := usecase.NewConfigScreen(newSpace(), &fakeApp{}, backend, testAppID,
			usecase.WithAccessToken("install"))

		gt.NoError(t, screen.Activate(ctx)).Required()
		gt.Value(t, screen.State().AccessToken).Equal("install")
		gt.Value(t, screen.State().WorkspaceID).Equal("")
		gt.Value(t, backend.workspaceTokens).Equal([]string{"install"})
	})

	t.Run("no token skips workspace fetch", func(t *testing.T) {
		backend := &fakeBackend{}
		screen := usecase.NewConfigScreen(newSpace(), &fakeApp{}, backend, testAppID)

		gt.NoError(t, screen.Activate(ctx)).Required()
		gt.Array(t, screen.State().Workspaces).Length(0)
		gt.Array(t, backend.workspaceTokens).Length(0)
		gt.Value(t, screen.WorkspacePlaceholder()).Equal("No workspaces available")
	})

	t.Run("workspace failure leaves list empty", func(t *testing.T) {
		backend := &fakeBackend{workspacesErr: errBoom}
		app := &fakeApp{params: &model.InstallationParameters{AccessToken: "saved", WorkspaceID: "ws1"}}
		screen := usecase.NewConfigScreen(newSpace(), app, backend, testAppID)

		gt.NoError(t, screen.Activate(ctx)).Required()
		gt.Bool(t, screen.State().Ready).True()
		gt.Array(t, screen.State().Workspaces).Length(0)
	})

	t.Run("content type failure aborts", func(t *testing.T) {
		space := newSpace()
		space.contentTypesErr = errBoom
		screen := usecase.NewConfigScreen(space, &fakeApp{}, &fakeBackend{}, testAppID)

		gt.Error(t, screen.Activate(ctx)).Is(errBoom)
		gt.Bool(t, screen.State().Ready).False()
	})

	t.Run("parameter failure aborts", func(t *testing.T) {
		screen := usecase.NewConfigScreen(newSpace(), &fakeApp{err: errBoom}, &fakeBackend{}, testAppID)
		gt.Error(t, screen.Activate(ctx)).Is(errBoom)
	})
}

func TestConfigScreenToggleField(t *testing.T) {
	screen := usecase.NewConfigScreen(newSpace(), &fakeApp{}, &fakeBackend{}, testAppID)
	gt.NoError(t, screen.Activate(context.Background())).Required()

	gt.NoError(t, screen.ToggleField("blogPost", "title")).Required()
	gt.Value(t, screen.State().SelectedFields["blogPost"]).Equal([]types.FieldID{"form", "title"})

	gt.NoError(t, screen.ToggleField("blogPost", "form")).Required()
	gt.NoError(t, screen.ToggleField("blogPost", "title")).Required()
	_, ok := screen.State().SelectedFields["blogPost"]
	gt.Bool(t, ok).False()

	gt.Error(t, screen.ToggleField("blogPost", "body"))
	gt.Error(t, screen.ToggleField("author", "age"))
}

func TestConfigScreenConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("trims parameters and builds target state", func(t *testing.T) {
		notifier := &fakeNotifier{}
		screen := usecase.NewConfigScreen(newSpace(), &fakeApp{}, &fakeBackend{}, testAppID,
			usecase.WithNotifier(notifier))
		gt.NoError(t, screen.Activate(ctx)).Required()

		screen.SetAccessToken(" tok ")
		screen.SetWorkspaceID(" ws1 ")

		result, err := screen.Configure(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Parameters).Equal(model.InstallationParameters{AccessToken: "tok", WorkspaceID: "ws1"})
		gt.Array(t, notifier.messages).Length(0)

		gt.Array(t, result.TargetState.Entries).Length(2).Required()
		entry, ok := result.TargetState.Get("blogPost")
		gt.Bool(t, ok).True()
		gt.Value(t, entry.EditorInterface.Controls).Equal([]model.Control{
			{FieldID: "title", WidgetID: "singleLine", WidgetNamespace: types.WidgetNamespaceBuiltin},
			{FieldID: "form", WidgetID: testAppID.WidgetID(), WidgetNamespace: types.WidgetNamespaceApp},
		})

		// the edited state is not normalized in place
		gt.Value(t, screen.State().AccessToken).Equal(" tok ")
	})

	testCases := []struct {
		name    string
		token   string
		ws      string
		message string
	}{
		{"both missing", "  ", "", "Please provide a Typeform access token and select a workspace"},
		{"token missing", "", "ws1", "Please provide a Typeform access token"},
		{"workspace missing", "tok", " ", "Please select a Typeform workspace"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			screen := usecase.NewConfigScreen(newSpace(), &fakeApp{}, &fakeBackend{}, testAppID,
				usecase.WithNotifier(notifier))
			gt.NoError(t, screen.Activate(ctx)).Required()

			screen.SetAccessToken(tc.token)
			screen.SetWorkspaceID(tc.ws)

			result, err := screen.Configure(ctx)
			gt.Error(t, err).Is(model.ErrValidation)
			gt.Value(t, result).Nil()
			gt.Value(t, notifier.messages).Equal([]string{tc.message})
		})
	}
}

func TestConfigurePure(t *testing.T) {
	state := &usecase.ConfigScreenState{
		AccessToken:      "tok",
		WorkspaceID:      "ws1",
		AllContentTypes:  []model.ContentType{blogPost()},
		CompatibleFields: usecase.CompatibleFields([]model.ContentType{blogPost()}),
		SelectedFields:   model.SelectedFields{"blogPost": {"title"}},
	}

	first, err := usecase.Configure(state, testAppID)
	gt.NoError(t, err).Required()
	second, err := usecase.Configure(state, testAppID)
	gt.NoError(t, err).Required()
	gt.Value(t, first).Equal(second)
}
