package types

import "github.com/m-mizutani/goerr/v2"

// WidgetID identifies the editor widget rendering a field
type WidgetID string

// String returns the string representation of WidgetID
func (w WidgetID) String() string {
	return string(w)
}

// AppID identifies this app installation's widget. It is used as WidgetID for controls
// owned by the app.
type AppID string

// Validate checks if the AppID is valid
func (a AppID) Validate() error {
	if a == "" {
		return goerr.New("app ID cannot be empty")
	}
	return nil
}

// WidgetID returns the widget ID the host uses for this app
func (a AppID) WidgetID() WidgetID {
	return WidgetID(a)
}

// String returns the string representation of AppID
func (a AppID) String() string {
	return string(a)
}

// WidgetNamespace tells the host where a widget comes from
type WidgetNamespace string

const (
	WidgetNamespaceBuiltin   WidgetNamespace = "builtin"
	WidgetNamespaceExtension WidgetNamespace = "extension"
	WidgetNamespaceApp       WidgetNamespace = "app"
)

// IsValid checks if the widget namespace is valid. Empty is accepted and means the
// host default.
func (n WidgetNamespace) IsValid() bool {
	switch n {
	case "", WidgetNamespaceBuiltin, WidgetNamespaceExtension, WidgetNamespaceApp:
		return true
	default:
		return false
	}
}

// String returns the string representation of WidgetNamespace
func (n WidgetNamespace) String() string {
	return string(n)
}
