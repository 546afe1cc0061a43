package model

// DialogOptions are passed to the host when opening the app in a dialog
type DialogOptions struct {
	Width                     int            `json:"width"`
	Title                     string         `json:"title"`
	ShouldCloseOnEscapePress  bool           `json:"shouldCloseOnEscapePress"`
	ShouldCloseOnOverlayClick bool           `json:"shouldCloseOnOverlayClick"`
	Parameters                map[string]any `json:"parameters"`
}
