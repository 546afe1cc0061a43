package interfaces

import (
	"context"

	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

// SpaceService introspects the content model of the host space
type SpaceService interface {
	GetContentTypes(ctx context.Context) ([]model.ContentType, error)
	GetEditorInterfaces(ctx context.Context) ([]model.EditorInterface, error)
}

// AppService reads the parameters saved by the last configuration.
// It returns nil parameters when the app has never been configured.
type AppService interface {
	GetParameters(ctx context.Context) (*model.InstallationParameters, error)
}

// Notifier shows a message to the editor
type Notifier interface {
	Error(ctx context.Context, msg string)
}

// FieldSlot is the value slot of one entry field. Each field widget owns its slot exclusively.
type FieldSlot interface {
	GetValue(ctx context.Context) (string, error)
	SetValue(ctx context.Context, value string) error
	RemoveValue(ctx context.Context) error
}

// Dialogs opens host dialogs
type Dialogs interface {
	OpenCurrentApp(ctx context.Context, opts model.DialogOptions) error
}

// Window controls the iframe hosting a widget
type Window interface {
	StartAutoResizer()
}
