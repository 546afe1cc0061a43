package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/service/typeform"
)

// FormsUseCase serves the companion backend: it lists workspaces and forms from Typeform
// on behalf of a caller holding an access token.
type FormsUseCase struct {
	typeform typeform.Service
}

func NewFormsUseCase(svc typeform.Service) *FormsUseCase {
	return &FormsUseCase{typeform: svc}
}

func (uc *FormsUseCase) ListWorkspaces(ctx context.Context, accessToken string) (*model.WorkspacesResponse, error) {
	if uc.typeform == nil {
		return nil, goerr.New("typeform client is not configured")
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, goerr.Wrap(model.ErrValidation, "access token is required")
	}

	resp, err := uc.typeform.ListWorkspaces(ctx, accessToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list workspaces")
	}
	if resp.Workspaces.Items == nil {
		resp.Workspaces.Items = []model.WorkspaceItem{}
	}
	return resp, nil
}

func (uc *FormsUseCase) ListForms(ctx context.Context, workspaceID, accessToken string) (*model.FormsResponse, error) {
	if uc.typeform == nil {
		return nil, goerr.New("typeform client is not configured")
	}
	if strings.TrimSpace(accessToken) == "" {
		return nil, goerr.Wrap(model.ErrValidation, "access token is required")
	}
	if strings.TrimSpace(workspaceID) == "" {
		return nil, goerr.Wrap(model.ErrValidation, "workspace ID is required")
	}

	resp, err := uc.typeform.ListForms(ctx, accessToken, workspaceID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list forms", goerr.V(model.WorkspaceIDKey, workspaceID))
	}
	if resp.Forms.Items == nil {
		resp.Forms.Items = []model.FormItem{}
	}
	return resp, nil
}

// directBackend serves the field widget and configuration screen from the Typeform API
// in process, without a round trip through the companion backend.
type directBackend struct {
	forms *FormsUseCase
}

// NewDirectBackend returns a FormsBackend backed by the forms use case
func NewDirectBackend(forms *FormsUseCase) interfaces.FormsBackend {
	return &directBackend{forms: forms}
}

func (b *directBackend) ListWorkspaces(ctx context.Context, accessToken string) ([]model.WorkspaceOption, error) {
	resp, err := b.forms.ListWorkspaces(ctx, accessToken)
	if err != nil {
		return nil, goerr.Wrap(model.ErrFetch, "failed to list workspaces", goerr.V("cause", err.Error()))
	}
	return resp.Options(), nil
}

func (b *directBackend) ListForms(ctx context.Context, workspaceID, accessToken string) ([]model.FormOption, error) {
	resp, err := b.forms.ListForms(ctx, workspaceID, accessToken)
	if err != nil {
		return nil, goerr.Wrap(model.ErrFetch, "failed to list forms",
			goerr.V(model.WorkspaceIDKey, workspaceID), goerr.V("cause", err.Error()))
	}
	return resp.Options(), nil
}
