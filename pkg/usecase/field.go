package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
)

// FieldUseCase opens field widgets on stored entries
type FieldUseCase struct {
	repo    interfaces.Repository
	backend interfaces.FormsBackend
}

func NewFieldUseCase(repo interfaces.Repository, backend interfaces.FormsBackend) *FieldUseCase {
	return &FieldUseCase{
		repo:    repo,
		backend: backend,
	}
}

// Open mounts a widget on the entry field with the saved installation parameters. The
// returned widget is still loading; wait on Ready before reading its state.
func (uc *FieldUseCase) Open(ctx context.Context, ctID types.ContentTypeID, entryID types.EntryID, fieldID types.FieldID, opts ...FieldWidgetOption) (*FieldWidget, error) {
	if uc.backend == nil {
		return nil, goerr.New("form backend is not configured")
	}
	if err := ctID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid content type ID")
	}
	if err := entryID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid entry ID")
	}

	ct, err := uc.repo.ContentType().Get(ctx, ctID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get content type", goerr.V(model.ContentTypeIDKey, ctID))
	}
	field, ok := ct.Field(fieldID)
	if !ok {
		return nil, goerr.New("field not found",
			goerr.V(model.ContentTypeIDKey, ctID), goerr.V(model.FieldIDKey, fieldID))
	}
	if !field.Type.IsCompatible() {
		return nil, goerr.New("field cannot hold a form reference",
			goerr.V(model.FieldIDKey, fieldID), goerr.V("field_type", field.Type))
	}

	params, err := NewAppParameters(uc.repo).GetParameters(ctx)
	if err != nil {
		return nil, err
	}
	if params == nil {
		return nil, goerr.Wrap(model.ErrValidation, "app is not configured")
	}

	opts = append([]FieldWidgetOption{WithWidgetLogger(logging.From(ctx))}, opts...)
	widget := NewFieldWidget(uc.backend, NewEntryField(uc.repo, entryID, fieldID), *params, opts...)
	if err := widget.Mount(ctx); err != nil {
		return nil, err
	}
	return widget, nil
}
