package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by the configuration screen and the field widget
var (
	// ErrValidation is returned when installation parameters are incomplete
	ErrValidation = goerr.New("invalid installation parameters")
	// ErrFetch is returned when forms or workspaces cannot be fetched or decoded
	ErrFetch = goerr.New("failed to fetch from form backend")
	// ErrStaleReference marks a persisted form href that is not among the fetched forms
	ErrStaleReference = goerr.New("bound form no longer exists")
	// ErrFormNotFound is returned when a selected href is not among the fetched forms
	ErrFormNotFound = goerr.New("form not found")
	// ErrPreviewUnavailable is returned when the selected form cannot be previewed
	ErrPreviewUnavailable = goerr.New("form preview unavailable")
)

// Context keys for error values
const (
	ContentTypeIDKey = "content_type_id"
	FieldIDKey       = "field_id"
	WorkspaceIDKey   = "workspace_id"
	FormHrefKey      = "form_href"
	StatusCodeKey    = "status_code"
	URLKey           = "url"
)
