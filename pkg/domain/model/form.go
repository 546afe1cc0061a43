package model

// FormOption is a normalized form record. It is re-fetched every session and only its
// Href is persisted as the field value.
type FormOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Href     string `json:"href"`
	IsPublic bool   `json:"isPublic"`
}

// EmptyFormOption is the placeholder selection used when no form is bound
func EmptyFormOption() FormOption {
	return FormOption{IsPublic: true}
}

// IsEmpty reports whether the option is the placeholder
func (f FormOption) IsEmpty() bool {
	return f.Href == "" && f.ID == ""
}

// WorkspaceOption is a normalized workspace record
type WorkspaceOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkspacesResponse is the companion backend payload of GET /workspaces/{accessToken}
type WorkspacesResponse struct {
	Workspaces WorkspaceItems `json:"workspaces"`
}

// WorkspaceItems wraps the workspace list
type WorkspaceItems struct {
	Items []WorkspaceItem `json:"items"`
}

// WorkspaceItem is a single workspace on the wire
type WorkspaceItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Options flattens the response into view models
func (r *WorkspacesResponse) Options() []WorkspaceOption {
	options := make([]WorkspaceOption, 0, len(r.Workspaces.Items))
	for _, item := range r.Workspaces.Items {
		options = append(options, WorkspaceOption{
			ID:   item.ID,
			Name: item.Name,
		})
	}
	return options
}

// FormsResponse is the companion backend payload of GET /forms/{workspaceId}/{accessToken}
type FormsResponse struct {
	Forms FormItems `json:"forms"`
}

// FormItems wraps the form list
type FormItems struct {
	Items []FormItem `json:"items"`
}

// FormItem is a single form on the wire
type FormItem struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Links    FormLinks    `json:"_links"`
	Settings FormSettings `json:"settings"`
}

// FormLinks holds the public URLs of a form
type FormLinks struct {
	Display string `json:"display"`
}

// FormSettings holds form settings relevant to binding
type FormSettings struct {
	IsPublic bool `json:"is_public"`
}

// Options flattens the response into view models
func (r *FormsResponse) Options() []FormOption {
	options := make([]FormOption, 0, len(r.Forms.Items))
	for _, item := range r.Forms.Items {
		options = append(options, FormOption{
			ID:       item.ID,
			Name:     item.Title,
			Href:     item.Links.Display,
			IsPublic: item.Settings.IsPublic,
		})
	}
	return options
}
