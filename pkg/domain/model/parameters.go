package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// InstallationParameters is the configuration persisted by the host on save. The access
// token is set once at install and read at every screen and widget activation.
type InstallationParameters struct {
	AccessToken string `json:"accessToken" toml:"access_token" masq:"secret"`
	WorkspaceID string `json:"workspaceId" toml:"workspace_id"`
}

// Normalize returns a copy with surrounding whitespace trimmed
func (p InstallationParameters) Normalize() InstallationParameters {
	return InstallationParameters{
		AccessToken: strings.TrimSpace(p.AccessToken),
		WorkspaceID: strings.TrimSpace(p.WorkspaceID),
	}
}

// ValidationMessage returns the user facing reason the parameters are incomplete, or an
// empty string when both are present after trimming.
func (p InstallationParameters) ValidationMessage() string {
	n := p.Normalize()
	switch {
	case n.AccessToken == "" && n.WorkspaceID == "":
		return "Please provide a Typeform access token and select a workspace"
	case n.AccessToken == "":
		return "Please provide a Typeform access token"
	case n.WorkspaceID == "":
		return "Please select a Typeform workspace"
	}
	return ""
}

// Validate checks that both parameters are present after trimming
func (p InstallationParameters) Validate() error {
	if msg := p.ValidationMessage(); msg != "" {
		return goerr.Wrap(ErrValidation, msg,
			goerr.V(WorkspaceIDKey, p.WorkspaceID),
			goerr.V("has_access_token", strings.TrimSpace(p.AccessToken) != ""))
	}
	return nil
}

// Installation is the stored record of the last successful save
type Installation struct {
	Parameters InstallationParameters `json:"parameters"`
	Revision   string                 `json:"revision"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

// ConfigureResult is handed to the host when the configuration is saved
type ConfigureResult struct {
	Parameters  InstallationParameters `json:"parameters"`
	TargetState TargetState            `json:"targetState"`
}
