package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/utils/async"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
)

const (
	previewDialogWidth = 1000
	previewDialogTitle = "Form Preview"
	formEditURLPattern = "https://admin.typeform.com/form/%s/create"
)

// Action is an event applied to a field widget. Only the actions of this package exist.
type Action interface {
	actionName() string
}

// ActionInit carries the forms fetched at mount
type ActionInit struct {
	Forms []model.FormOption
}

// ActionUpdateValue binds the form with the given href, or clears the binding when empty
type ActionUpdateValue struct {
	Value string
}

// ActionReset clears the binding
type ActionReset struct{}

// ActionError records that the forms could not be fetched
type ActionError struct {
	Err error
}

func (ActionInit) actionName() string        { return "init" }
func (ActionUpdateValue) actionName() string { return "update_value" }
func (ActionReset) actionName() string       { return "reset" }
func (ActionError) actionName() string       { return "error" }

// WidgetStatus is the lifecycle phase of a field widget
type WidgetStatus int

const (
	WidgetLoading WidgetStatus = iota
	WidgetReady
	WidgetError
)

func (s WidgetStatus) String() string {
	switch s {
	case WidgetLoading:
		return "loading"
	case WidgetReady:
		return "ready"
	case WidgetError:
		return "error"
	default:
		return "unknown"
	}
}

// ValueState is the binding state of a ready widget
type ValueState int

const (
	ValueEmpty ValueState = iota
	ValueValid
	ValueStale
)

func (s ValueState) String() string {
	switch s {
	case ValueEmpty:
		return "empty"
	case ValueValid:
		return "valid"
	case ValueStale:
		return "stale"
	default:
		return "unknown"
	}
}

// FieldWidgetState is a snapshot of a field widget
type FieldWidgetState struct {
	Loading      bool
	Error        bool
	Value        string
	SelectedForm model.FormOption
	HasStaleData bool
	Forms        []model.FormOption
}

// Status derives the lifecycle phase from the flags
func (s FieldWidgetState) Status() WidgetStatus {
	switch {
	case s.Loading:
		return WidgetLoading
	case s.Error:
		return WidgetError
	default:
		return WidgetReady
	}
}

// ValueState derives the binding state from the value and the stale flag
func (s FieldWidgetState) ValueState() ValueState {
	switch {
	case s.HasStaleData:
		return ValueStale
	case s.Value == "":
		return ValueEmpty
	default:
		return ValueValid
	}
}

// IsStaleData reports whether a persisted href no longer matches any fetched form. An
// empty value is never stale, and nothing is stale against an empty form list.
func IsStaleData(value string, forms []model.FormOption) bool {
	if value == "" || len(forms) == 0 {
		return false
	}
	_, ok := findForm(value, forms)
	return !ok
}

// SelectedForm returns the form whose href equals value, or the empty placeholder
func SelectedForm(value string, forms []model.FormOption) model.FormOption {
	if form, ok := findForm(value, forms); ok {
		return form
	}
	return model.EmptyFormOption()
}

func findForm(href string, forms []model.FormOption) (model.FormOption, bool) {
	if href == "" {
		return model.FormOption{}, false
	}
	for _, form := range forms {
		if form.Href == href {
			return form, true
		}
	}
	return model.FormOption{}, false
}

// FieldWidget binds one entry field to a form. State changes happen only through
// Dispatch, one action at a time.
type FieldWidget struct {
	backend interfaces.FormsBackend
	slot    interfaces.FieldSlot
	params  model.InstallationParameters
	dialogs interfaces.Dialogs
	window  interfaces.Window
	logger  *slog.Logger

	mu        sync.Mutex
	state     FieldWidgetState
	mounted   bool
	unmounted bool
	ready     <-chan struct{}
}

// FieldWidgetOption configures a FieldWidget
type FieldWidgetOption func(*FieldWidget)

// WithDialogs sets the dialog opener used by OpenPreview
func WithDialogs(dialogs interfaces.Dialogs) FieldWidgetOption {
	return func(w *FieldWidget) {
		w.dialogs = dialogs
	}
}

// WithWindow sets the window whose auto resizer is started on mount
func WithWindow(window interfaces.Window) FieldWidgetOption {
	return func(w *FieldWidget) {
		w.window = window
	}
}

// WithWidgetLogger sets the logger used by the widget
func WithWidgetLogger(logger *slog.Logger) FieldWidgetOption {
	return func(w *FieldWidget) {
		w.logger = logger
	}
}

// NewFieldWidget creates a widget in the loading state
func NewFieldWidget(backend interfaces.FormsBackend, slot interfaces.FieldSlot, params model.InstallationParameters, opts ...FieldWidgetOption) *FieldWidget {
	w := &FieldWidget{
		backend: backend,
		slot:    slot,
		params:  params,
		state: FieldWidgetState{
			Loading:      true,
			SelectedForm: model.EmptyFormOption(),
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logging.Default()
	}
	return w
}

// Mount starts the auto resizer and fetches the forms of the configured workspace in the
// background. The result is applied as ActionInit or ActionError.
func (w *FieldWidget) Mount(ctx context.Context) error {
	w.mu.Lock()
	if w.mounted {
		w.mu.Unlock()
		return goerr.New("field widget is already mounted")
	}
	w.mounted = true
	w.mu.Unlock()

	if w.window != nil {
		w.window.StartAutoResizer()
	}

	ctx = logging.With(ctx, w.logger)
	ready := async.Dispatch(ctx, func(ctx context.Context) error {
		forms, err := w.backend.ListForms(ctx, w.params.WorkspaceID, w.params.AccessToken)
		if err != nil {
			w.logger.Warn("failed to fetch forms", "error", err, "workspace_id", w.params.WorkspaceID)
			return w.Dispatch(ctx, ActionError{Err: err})
		}

		if err := w.Dispatch(ctx, ActionInit{Forms: forms}); err != nil {
			w.logger.Warn("failed to initialize field widget", "error", err)
			return w.Dispatch(ctx, ActionError{Err: err})
		}
		return nil
	})

	w.mu.Lock()
	w.ready = ready
	w.mu.Unlock()
	return nil
}

// Unmount detaches the widget. Actions dispatched afterwards, including a fetch that is
// still in flight, are dropped.
func (w *FieldWidget) Unmount() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.unmounted = true
}

// Ready returns a channel closed once the fetch started by Mount has been applied or
// dropped. It returns nil before Mount.
func (w *FieldWidget) Ready() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ready
}

// State returns a snapshot of the current state
func (w *FieldWidget) State() FieldWidgetState {
	w.mu.Lock()
	defer w.mu.Unlock()

	state := w.state
	state.Forms = append([]model.FormOption(nil), w.state.Forms...)
	return state
}

// Dispatch applies an action. When the host write of an update fails, the state is left
// unchanged and the error is returned.
func (w *FieldWidget) Dispatch(ctx context.Context, action Action) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.unmounted {
		w.logger.Debug("drop action after unmount", "action", action.actionName())
		return nil
	}

	next, err := w.reduce(ctx, w.state, action)
	if err != nil {
		return err
	}
	w.state = next
	return nil
}

func (w *FieldWidget) reduce(ctx context.Context, state FieldWidgetState, action Action) (FieldWidgetState, error) {
	switch a := action.(type) {
	case ActionInit:
		if state.Status() != WidgetLoading {
			w.logger.Debug("ignore init outside loading", "status", state.Status().String())
			return state, nil
		}

		value, err := w.slot.GetValue(ctx)
		if err != nil {
			return state, goerr.Wrap(err, "failed to read field value")
		}

		forms := append([]model.FormOption(nil), a.Forms...)
		stale := IsStaleData(value, forms)
		if stale {
			w.logger.Info("bound form no longer exists", model.FormHrefKey, value)
		}
		return FieldWidgetState{
			Loading:      false,
			Error:        false,
			Value:        value,
			SelectedForm: SelectedForm(value, forms),
			HasStaleData: stale,
			Forms:        forms,
		}, nil

	case ActionUpdateValue:
		if state.Status() != WidgetReady {
			return state, goerr.New("field widget is not ready", goerr.V("status", state.Status().String()))
		}
		if a.Value == "" {
			return w.reset(ctx, state)
		}

		form, ok := findForm(a.Value, state.Forms)
		if !ok {
			return state, goerr.Wrap(model.ErrFormNotFound, "selected form is not available",
				goerr.V(model.FormHrefKey, a.Value))
		}
		if err := w.slot.SetValue(ctx, a.Value); err != nil {
			return state, goerr.Wrap(err, "failed to write field value")
		}

		state.Value = a.Value
		state.SelectedForm = form
		state.HasStaleData = false
		return state, nil

	case ActionReset:
		if state.Status() != WidgetReady {
			return state, goerr.New("field widget is not ready", goerr.V("status", state.Status().String()))
		}
		return w.reset(ctx, state)

	case ActionError:
		if state.Status() != WidgetLoading {
			w.logger.Debug("ignore error outside loading", "status", state.Status().String())
			return state, nil
		}
		state.Loading = false
		state.Error = true
		return state, nil

	default:
		return state, goerr.New("unknown field widget action")
	}
}

func (w *FieldWidget) reset(ctx context.Context, state FieldWidgetState) (FieldWidgetState, error) {
	if err := w.slot.RemoveValue(ctx); err != nil {
		return state, goerr.Wrap(err, "failed to remove field value")
	}
	state.Value = ""
	state.SelectedForm = model.EmptyFormOption()
	state.HasStaleData = false
	return state, nil
}

// UpdateValue selects a form by href. An empty href clears the binding.
func (w *FieldWidget) UpdateValue(ctx context.Context, href string) error {
	return w.Dispatch(ctx, ActionUpdateValue{Value: href})
}

// Reset clears the binding
func (w *FieldWidget) Reset(ctx context.Context) error {
	return w.Dispatch(ctx, ActionReset{})
}

// ShowActions reports whether the preview and edit actions apply: a form is bound and it
// still exists.
func (w *FieldWidget) ShowActions() bool {
	state := w.State()
	return state.Status() == WidgetReady && state.ValueState() == ValueValid
}

// Placeholder is the text of the form picker when nothing is selected
func (w *FieldWidget) Placeholder() string {
	if len(w.State().Forms) == 0 {
		return "No forms available"
	}
	return "Choose typeform"
}

// PreviewDialog returns the dialog used to preview the bound form. Private forms cannot be
// previewed.
func (w *FieldWidget) PreviewDialog() (*model.DialogOptions, error) {
	state := w.State()
	if state.ValueState() != ValueValid {
		return nil, goerr.Wrap(model.ErrPreviewUnavailable, "no form is bound",
			goerr.V("value_state", state.ValueState().String()))
	}
	if !state.SelectedForm.IsPublic {
		return nil, goerr.Wrap(model.ErrPreviewUnavailable, "form is private",
			goerr.V(model.FormHrefKey, state.Value))
	}

	return &model.DialogOptions{
		Width:                     previewDialogWidth,
		Title:                     previewDialogTitle,
		ShouldCloseOnEscapePress:  true,
		ShouldCloseOnOverlayClick: true,
		Parameters:                map[string]any{"value": state.Value},
	}, nil
}

// OpenPreview opens the preview dialog through the host
func (w *FieldWidget) OpenPreview(ctx context.Context) error {
	if w.dialogs == nil {
		return goerr.Wrap(model.ErrPreviewUnavailable, "dialogs are not available")
	}
	opts, err := w.PreviewDialog()
	if err != nil {
		return err
	}
	if err := w.dialogs.OpenCurrentApp(ctx, *opts); err != nil {
		return goerr.Wrap(err, "failed to open preview dialog")
	}
	return nil
}

// EditURL returns the admin URL of the bound form
func (w *FieldWidget) EditURL() (string, error) {
	state := w.State()
	if state.ValueState() != ValueValid {
		return "", goerr.New("no form is bound", goerr.V("value_state", state.ValueState().String()))
	}
	if state.SelectedForm.IsEmpty() {
		return "", goerr.Wrap(model.ErrFormNotFound, "bound form is not among the fetched forms",
			goerr.V(model.FormHrefKey, state.Value))
	}
	return formEditURL(state.SelectedForm.ID), nil
}

func formEditURL(formID string) string {
	return fmt.Sprintf(formEditURLPattern, url.PathEscape(formID))
}
