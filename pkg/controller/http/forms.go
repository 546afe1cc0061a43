package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/usecase"
	"github.com/secmon-lab/typeform-app/pkg/utils/errutil"
)

// formsStatus maps a listing error to a response status. Anything that is not a bad
// request is an upstream failure.
func formsStatus(err error) int {
	if errors.Is(err, model.ErrValidation) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// pathParam returns the decoded URL parameter. chi keeps parameters escaped when the
// request path carries escaped characters.
func pathParam(r *http.Request, key string) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, key))
	if err != nil {
		return "", goerr.Wrap(model.ErrValidation, "malformed path parameter", goerr.V("param", key))
	}
	return value, nil
}

func workspacesHandler(uc *usecase.FormsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := pathParam(r, "accessToken")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		resp, err := uc.ListWorkspaces(r.Context(), token)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to list workspaces"), formsStatus(err))
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}

func formsHandler(uc *usecase.FormsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		workspaceID, err := pathParam(r, "workspaceId")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}
		token, err := pathParam(r, "accessToken")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
			return
		}

		resp, err := uc.ListForms(r.Context(), workspaceID, token)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w,
				goerr.Wrap(err, "failed to list forms", goerr.V(model.WorkspaceIDKey, workspaceID)),
				formsStatus(err))
			return
		}
		writeJSON(w, r, http.StatusOK, resp)
	}
}
