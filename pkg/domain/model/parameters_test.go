package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

func TestInstallationParameters_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  model.InstallationParameters
		wantErr bool
		wantMsg string
	}{
		{
			name:    "missing access token",
			params:  model.InstallationParameters{AccessToken: "", WorkspaceID: "ws1"},
			wantErr: true,
			wantMsg: "Please provide a Typeform access token",
		},
		{
			name:    "missing workspace",
			params:  model.InstallationParameters{AccessToken: "tok", WorkspaceID: "  "},
			wantErr: true,
			wantMsg: "Please select a Typeform workspace",
		},
		{
			name:    "both missing",
			params:  model.InstallationParameters{},
			wantErr: true,
			wantMsg: "Please provide a Typeform access token and select a workspace",
		},
		{
			name:   "whitespace around values is accepted",
			params: model.InstallationParameters{AccessToken: " tok ", WorkspaceID: " ws1 "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrValidation)
				gt.Value(t, tt.params.ValidationMessage()).Equal(tt.wantMsg)
			} else {
				gt.NoError(t, err)
				gt.Value(t, tt.params.ValidationMessage()).Equal("")
			}
		})
	}
}

func TestInstallationParameters_Normalize(t *testing.T) {
	params := model.InstallationParameters{AccessToken: " tok ", WorkspaceID: " ws1 "}
	gt.Value(t, params.Normalize()).Equal(model.InstallationParameters{
		AccessToken: "tok",
		WorkspaceID: "ws1",
	})
}
