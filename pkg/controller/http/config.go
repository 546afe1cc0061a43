package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
	"github.com/secmon-lab/typeform-app/pkg/utils/errutil"
)

// maxConfigBodySize bounds the POST /api/config request body
const maxConfigBodySize = 1 << 20

type configResponse struct {
	HasAccessToken   bool                    `json:"hasAccessToken"`
	WorkspaceID      string                  `json:"workspaceId"`
	Workspaces       []model.WorkspaceOption `json:"workspaces"`
	ContentTypes     []model.ContentType     `json:"contentTypes"`
	CompatibleFields model.CompatibleFields  `json:"compatibleFields"`
	SelectedFields   model.SelectedFields    `json:"selectedFields"`
}

type validationResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

func getConfigHandler(uc *usecase.ConfigUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := uc.Load(r.Context())
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to load configuration"), http.StatusInternalServerError)
			return
		}

		writeJSON(w, r, http.StatusOK, configResponse{
			HasAccessToken:   state.AccessToken != "",
			WorkspaceID:      state.WorkspaceID,
			Workspaces:       state.Workspaces,
			ContentTypes:     state.ContentTypes,
			CompatibleFields: state.CompatibleFields,
			SelectedFields:   state.SelectedFields,
		})
	}
}

func postConfigHandler(uc *usecase.ConfigUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input usecase.ConfigInput
		body := http.MaxBytesReader(w, r.Body, maxConfigBodySize)
		if err := json.NewDecoder(body).Decode(&input); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
			return
		}

		notifier := &usecase.MessageNotifier{}
		result, err := uc.Save(r.Context(), input, notifier)
		if err != nil {
			if errors.Is(err, model.ErrValidation) {
				messages := notifier.Messages
				if len(messages) == 0 {
					messages = []string{"Invalid configuration"}
				}
				writeJSON(w, r, http.StatusBadRequest, validationResponse{
					Error:    "validation_failed",
					Messages: messages,
				})
				return
			}
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to save configuration"), http.StatusInternalServerError)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
