package typeform

import (
	"context"

	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

// DefaultBaseURL is the public Typeform API endpoint
const DefaultBaseURL = "https://api.typeform.com"

// pageSize is the largest page the API accepts. Further pages are not requested.
const pageSize = 200

// Service reads workspaces and forms from the Typeform API with a personal access token
type Service interface {
	ListWorkspaces(ctx context.Context, accessToken string) (*model.WorkspacesResponse, error)
	ListForms(ctx context.Context, accessToken, workspaceID string) (*model.FormsResponse, error)
}

// APIError is returned for non-2xx responses of the Typeform API
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *APIError) Error() string {
	if e.Description != "" {
		return "typeform API error: " + e.Code + ": " + e.Description
	}
	return "typeform API error: " + e.Code
}
