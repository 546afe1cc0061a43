package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
)

// ConfigUseCase runs configuration sessions against the stored space
type ConfigUseCase struct {
	repo         interfaces.Repository
	backend      interfaces.FormsBackend
	appID        types.AppID
	installToken string
	now          func() time.Time
}

func NewConfigUseCase(repo interfaces.Repository, backend interfaces.FormsBackend, appID types.AppID, installToken string) *ConfigUseCase {
	return &ConfigUseCase{
		repo:         repo,
		backend:      backend,
		appID:        appID,
		installToken: installToken,
		now:          time.Now,
	}
}

// ConfigInput is an edit of the configuration screen. Nil fields keep the loaded value.
type ConfigInput struct {
	AccessToken    *string              `json:"accessToken,omitempty"`
	WorkspaceID    *string              `json:"workspaceId,omitempty"`
	SelectedFields model.SelectedFields `json:"selectedFields,omitempty"`
}

// Screen creates an activated configuration screen
func (uc *ConfigUseCase) Screen(ctx context.Context, notifier interfaces.Notifier) (*ConfigScreen, error) {
	if uc.backend == nil {
		return nil, goerr.New("form backend is not configured")
	}

	screen := NewConfigScreen(
		NewSpace(uc.repo),
		NewAppParameters(uc.repo),
		uc.backend,
		uc.appID,
		WithAccessToken(uc.installToken),
		WithNotifier(notifier),
		WithScreenLogger(logging.From(ctx)),
	)
	if err := screen.Activate(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to activate configuration screen")
	}
	return screen, nil
}

// Load returns the activated screen state
func (uc *ConfigUseCase) Load(ctx context.Context) (*ConfigScreenState, error) {
	screen, err := uc.Screen(ctx, LogNotifier{})
	if err != nil {
		return nil, err
	}
	return screen.State(), nil
}

// Save applies the input to a fresh screen, runs Configure, then stores the parameters
// and applies the target state the way the host does.
func (uc *ConfigUseCase) Save(ctx context.Context, input ConfigInput, notifier interfaces.Notifier) (*model.ConfigureResult, error) {
	screen, err := uc.Screen(ctx, notifier)
	if err != nil {
		return nil, err
	}

	if input.AccessToken != nil {
		screen.SetAccessToken(*input.AccessToken)
	}
	if input.WorkspaceID != nil {
		screen.SetWorkspaceID(*input.WorkspaceID)
	}
	if input.SelectedFields != nil {
		selected := model.SelectedFields{}
		for ctID, fieldIDs := range input.SelectedFields {
			for _, fieldID := range fieldIDs {
				if !screen.State().CompatibleFields.Has(ctID, fieldID) {
					return nil, goerr.Wrap(model.ErrValidation, "field is not compatible",
						goerr.V(model.ContentTypeIDKey, ctID), goerr.V(model.FieldIDKey, fieldID))
				}
				selected.Add(ctID, fieldID)
			}
		}
		screen.SetSelectedFields(selected)
	}

	result, err := screen.Configure(ctx)
	if err != nil {
		return nil, err
	}

	inst := &model.Installation{
		Parameters: result.Parameters,
		Revision:   uuid.NewString(),
		UpdatedAt:  uc.now().UTC(),
	}
	if err := uc.repo.Installation().Put(ctx, inst); err != nil {
		return nil, goerr.Wrap(err, "failed to save installation")
	}
	if err := ApplyTargetState(ctx, uc.repo.EditorInterface(), result.TargetState); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("configuration saved",
		"revision", inst.Revision,
		model.WorkspaceIDKey, inst.Parameters.WorkspaceID,
		"content_types", len(result.TargetState.Entries))

	return result, nil
}
