package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
)

// space exposes the stored content model as the host space
type space struct {
	repo interfaces.Repository
}

// NewSpace returns a SpaceService backed by the repository
func NewSpace(repo interfaces.Repository) interfaces.SpaceService {
	return &space{repo: repo}
}

func (s *space) GetContentTypes(ctx context.Context) ([]model.ContentType, error) {
	cts, err := s.repo.ContentType().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list content types")
	}
	return cts, nil
}

func (s *space) GetEditorInterfaces(ctx context.Context) ([]model.EditorInterface, error) {
	eis, err := s.repo.EditorInterface().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list editor interfaces")
	}
	return eis, nil
}

// appParameters reads the installation parameters of the last save
type appParameters struct {
	repo interfaces.Repository
}

// NewAppParameters returns an AppService backed by the repository
func NewAppParameters(repo interfaces.Repository) interfaces.AppService {
	return &appParameters{repo: repo}
}

func (a *appParameters) GetParameters(ctx context.Context) (*model.InstallationParameters, error) {
	inst, err := a.repo.Installation().Get(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get installation")
	}
	if inst == nil {
		return nil, nil
	}
	params := inst.Parameters
	return &params, nil
}

// entryField is the value slot of one field of one entry
type entryField struct {
	repo    interfaces.Repository
	entryID types.EntryID
	fieldID types.FieldID
}

// NewEntryField returns the field slot for the entry field
func NewEntryField(repo interfaces.Repository, entryID types.EntryID, fieldID types.FieldID) interfaces.FieldSlot {
	return &entryField{repo: repo, entryID: entryID, fieldID: fieldID}
}

func (f *entryField) GetValue(ctx context.Context) (string, error) {
	value, err := f.repo.FieldValue().Get(ctx, f.entryID, f.fieldID)
	if err != nil {
		return "", goerr.Wrap(err, "failed to get field value",
			goerr.V("entry_id", f.entryID), goerr.V(model.FieldIDKey, f.fieldID))
	}
	return value, nil
}

func (f *entryField) SetValue(ctx context.Context, value string) error {
	if err := f.repo.FieldValue().Set(ctx, f.entryID, f.fieldID, value); err != nil {
		return goerr.Wrap(err, "failed to set field value",
			goerr.V("entry_id", f.entryID), goerr.V(model.FieldIDKey, f.fieldID))
	}
	return nil
}

func (f *entryField) RemoveValue(ctx context.Context) error {
	if err := f.repo.FieldValue().Remove(ctx, f.entryID, f.fieldID); err != nil {
		return goerr.Wrap(err, "failed to remove field value",
			goerr.V("entry_id", f.entryID), goerr.V(model.FieldIDKey, f.fieldID))
	}
	return nil
}

// LogNotifier writes editor notifications to the context logger
type LogNotifier struct{}

func (LogNotifier) Error(ctx context.Context, msg string) {
	logging.From(ctx).Warn("notification", "message", msg)
}

// MessageNotifier keeps the notifications it receives so they can be returned to a
// caller, for example in an HTTP response.
type MessageNotifier struct {
	Messages []string
}

func (n *MessageNotifier) Error(ctx context.Context, msg string) {
	n.Messages = append(n.Messages, msg)
}
