package interfaces

import (
	"context"

	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

// FormsBackend lists remote workspaces and forms. Tokens are passed explicitly on every call.
type FormsBackend interface {
	ListWorkspaces(ctx context.Context, accessToken string) ([]model.WorkspaceOption, error)
	ListForms(ctx context.Context, workspaceID, accessToken string) ([]model.FormOption, error)
}
