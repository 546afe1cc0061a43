package usecase

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// ConfigScreenState is the state of the configuration screen after activation
type ConfigScreenState struct {
	Ready       bool
	AccessToken string
	WorkspaceID string
	Workspaces  []model.WorkspaceOption

	// AllContentTypes is every content type of the space. ContentTypes keeps only the
	// ones with at least one compatible field.
	AllContentTypes  []model.ContentType
	ContentTypes     []model.ContentType
	EditorInterfaces []model.EditorInterface
	CompatibleFields model.CompatibleFields
	SelectedFields   model.SelectedFields
}

// Parameters returns the parameters as currently edited
func (s *ConfigScreenState) Parameters() model.InstallationParameters {
	return model.InstallationParameters{
		AccessToken: s.AccessToken,
		WorkspaceID: s.WorkspaceID,
	}
}

// Configure validates the edited parameters and computes the result handed to the host.
// The state is not modified.
func Configure(state *ConfigScreenState, appID types.AppID) (*model.ConfigureResult, error) {
	params := state.Parameters()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &model.ConfigureResult{
		Parameters: params.Normalize(),
		TargetState: SelectedFieldsToTargetState(
			state.AllContentTypes,
			state.CompatibleFields,
			state.SelectedFields,
			state.EditorInterfaces,
			appID,
		),
	}, nil
}

// ConfigScreen drives the configuration screen of one session
type ConfigScreen struct {
	space    interfaces.SpaceService
	app      interfaces.AppService
	backend  interfaces.FormsBackend
	notifier interfaces.Notifier
	appID    types.AppID

	installToken string
	logger       *slog.Logger

	state ConfigScreenState
}

// ConfigScreenOption configures a ConfigScreen
type ConfigScreenOption func(*ConfigScreen)

// WithAccessToken sets the token entered at install time. The workspace list is fetched
// with it without waiting for the saved parameters.
func WithAccessToken(token string) ConfigScreenOption {
	return func(s *ConfigScreen) {
		s.installToken = token
	}
}

// WithNotifier sets where validation messages are shown
func WithNotifier(notifier interfaces.Notifier) ConfigScreenOption {
	return func(s *ConfigScreen) {
		s.notifier = notifier
	}
}

// WithScreenLogger sets the logger used by the screen
func WithScreenLogger(logger *slog.Logger) ConfigScreenOption {
	return func(s *ConfigScreen) {
		s.logger = logger
	}
}

// NewConfigScreen creates an inactive configuration screen
func NewConfigScreen(space interfaces.SpaceService, app interfaces.AppService, backend interfaces.FormsBackend, appID types.AppID, opts ...ConfigScreenOption) *ConfigScreen {
	s := &ConfigScreen{
		space:    space,
		app:      app,
		backend:  backend,
		appID:    appID,
		notifier: LogNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Default()
	}
	return s
}

// Activate loads content types, editor interfaces, saved parameters and workspaces
// concurrently. A workspace fetch failure leaves the workspace list empty; any other
// failure aborts activation.
func (s *ConfigScreen) Activate(ctx context.Context) error {
	var (
		contentTypes []model.ContentType
		eis          []model.EditorInterface
		params       *model.InstallationParameters
		workspaces   []model.WorkspaceOption
	)
	paramsCh := make(chan *model.InstallationParameters, 1)

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		cts, err := s.space.GetContentTypes(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to get content types")
		}
		contentTypes = cts
		return nil
	})

	eg.Go(func() error {
		list, err := s.space.GetEditorInterfaces(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to get editor interfaces")
		}
		eis = list
		return nil
	})

	eg.Go(func() error {
		defer close(paramsCh)
		p, err := s.app.GetParameters(ctx)
		if err != nil {
			return goerr.Wrap(err, "failed to get installation parameters")
		}
		params = p
		paramsCh <- p
		return nil
	})

	eg.Go(func() error {
		token := s.installToken
		if token == "" {
			select {
			case p, ok := <-paramsCh:
				if ok && p != nil {
					token = p.AccessToken
				}
			case <-ctx.Done():
				return nil
			}
		}
		if token == "" {
			s.logger.Info("no access token yet, skip workspace fetch")
			return nil
		}

		list, err := s.backend.ListWorkspaces(ctx, token)
		if err != nil {
			s.logger.Warn("failed to fetch workspaces", "error", err)
			return nil
		}
		workspaces = list
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	compatible := CompatibleFields(contentTypes)
	state := ConfigScreenState{
		Ready:            true,
		AccessToken:      s.installToken,
		Workspaces:       workspaces,
		AllContentTypes:  contentTypes,
		ContentTypes:     FilterDisplayable(contentTypes, compatible),
		EditorInterfaces: eis,
		CompatibleFields: compatible,
		SelectedFields:   EditorInterfacesToSelectedFields(eis, s.appID),
	}
	if params != nil {
		state.AccessToken = params.AccessToken
		state.WorkspaceID = params.WorkspaceID
	}
	if state.Workspaces == nil {
		state.Workspaces = []model.WorkspaceOption{}
	}

	s.state = state
	return nil
}

// State returns the current state
func (s *ConfigScreen) State() *ConfigScreenState {
	return &s.state
}

// SetWorkspaceID edits the selected workspace
func (s *ConfigScreen) SetWorkspaceID(id string) {
	s.state.WorkspaceID = id
}

// SetAccessToken edits the access token
func (s *ConfigScreen) SetAccessToken(token string) {
	s.state.AccessToken = token
}

// SetSelectedFields replaces the whole selection
func (s *ConfigScreen) SetSelectedFields(selected model.SelectedFields) {
	s.state.SelectedFields = selected.Clone()
}

// ToggleField flips the selection of one field. Incompatible fields cannot be selected.
func (s *ConfigScreen) ToggleField(ctID types.ContentTypeID, fieldID types.FieldID) error {
	if s.state.SelectedFields == nil {
		s.state.SelectedFields = model.SelectedFields{}
	}
	if s.state.SelectedFields.Has(ctID, fieldID) {
		s.state.SelectedFields.Remove(ctID, fieldID)
		return nil
	}
	if !s.state.CompatibleFields.Has(ctID, fieldID) {
		return goerr.New("field is not compatible",
			goerr.V(model.ContentTypeIDKey, ctID), goerr.V(model.FieldIDKey, fieldID))
	}
	s.state.SelectedFields.Add(ctID, fieldID)
	return nil
}

// Configure runs when the editor saves. Incomplete parameters are reported through the
// notifier and abort the save with ErrValidation.
func (s *ConfigScreen) Configure(ctx context.Context) (*model.ConfigureResult, error) {
	result, err := Configure(&s.state, s.appID)
	if err != nil {
		if msg := s.state.Parameters().ValidationMessage(); msg != "" {
			s.notifier.Error(ctx, msg)
		}
		return nil, err
	}
	return result, nil
}

// WorkspacePlaceholder is the text of the workspace picker when nothing is selected
func (s *ConfigScreen) WorkspacePlaceholder() string {
	if len(s.state.Workspaces) == 0 {
		return "No workspaces available"
	}
	return "Choose workspace"
}
