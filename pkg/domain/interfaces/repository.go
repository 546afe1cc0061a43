package interfaces

import (
	"context"

	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

// Repository defines the interface for host state persistence
type Repository interface {
	ContentType() ContentTypeRepository
	EditorInterface() EditorInterfaceRepository
	Installation() InstallationRepository
	FieldValue() FieldValueRepository

	Close() error
}

// ContentTypeRepository stores content type schemas
type ContentTypeRepository interface {
	// List returns all content types in the store's stable order
	List(ctx context.Context) ([]model.ContentType, error)
	Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error)
	Put(ctx context.Context, ct *model.ContentType) error
}

// EditorInterfaceRepository stores widget assignments, one record per content type
type EditorInterfaceRepository interface {
	List(ctx context.Context) ([]model.EditorInterface, error)
	Get(ctx context.Context, ctID types.ContentTypeID) (*model.EditorInterface, error)
	// Put replaces the whole control list of the content type
	Put(ctx context.Context, ei *model.EditorInterface) error
}

// InstallationRepository stores the app installation record
type InstallationRepository interface {
	// Get returns nil without error when the app has never been saved
	Get(ctx context.Context) (*model.Installation, error)
	Put(ctx context.Context, inst *model.Installation) error
}

// FieldValueRepository stores entry field values
type FieldValueRepository interface {
	// Get returns an empty string when no value is stored
	Get(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) (string, error)
	Set(ctx context.Context, entryID types.EntryID, fieldID types.FieldID, value string) error
	Remove(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) error
}
