package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

// EditorInterfacesToSelectedFields recovers the selection from the current widget
// assignments: a field is selected when its control points at this app.
func EditorInterfacesToSelectedFields(eis []model.EditorInterface, appID types.AppID) model.SelectedFields {
	selected := model.SelectedFields{}
	for _, ei := range eis {
		for _, control := range ei.Controls {
			if control.WidgetID == appID.WidgetID() {
				selected.Add(ei.ContentTypeID, control.FieldID)
			}
		}
	}
	return selected
}

// SelectedFieldsToTargetState computes the widget assignments to request from the host.
//
// Every content type gets an entry. Within an entry, fields are walked in definition
// order: a selected compatible field is assigned to this app, a field assigned to another
// widget keeps that control unchanged, and any other field gets no control so the host
// falls back to its default widget. Foreign controls on fields missing from the content
// type follow in their existing order.
func SelectedFieldsToTargetState(
	contentTypes []model.ContentType,
	compatible model.CompatibleFields,
	selected model.SelectedFields,
	eis []model.EditorInterface,
	appID types.AppID,
) model.TargetState {
	current := make(map[types.ContentTypeID]*model.EditorInterface, len(eis))
	for i := range eis {
		current[eis[i].ContentTypeID] = &eis[i]
	}

	state := model.TargetState{
		Entries: make([]model.TargetStateEntry, 0, len(contentTypes)),
	}
	for _, ct := range contentTypes {
		controls := []model.Control{}
		walked := make(map[types.FieldID]struct{}, len(ct.Fields))
		for _, field := range ct.Fields {
			walked[field.ID] = struct{}{}
			if selected.Has(ct.ID, field.ID) && compatible.Has(ct.ID, field.ID) {
				controls = append(controls, model.Control{
					FieldID:         field.ID,
					WidgetID:        appID.WidgetID(),
					WidgetNamespace: types.WidgetNamespaceApp,
				})
				continue
			}

			ei, ok := current[ct.ID]
			if !ok {
				continue
			}
			if control, ok := ei.Control(field.ID); ok && control.IsAssigned() && control.WidgetID != appID.WidgetID() {
				controls = append(controls, control)
			}
		}

		if ei, ok := current[ct.ID]; ok {
			for _, control := range ei.Controls {
				if _, ok := walked[control.FieldID]; ok {
					continue
				}
				if control.IsAssigned() && control.WidgetID != appID.WidgetID() {
					controls = append(controls, control)
				}
			}
		}

		state.Entries = append(state.Entries, model.TargetStateEntry{
			ContentTypeID:   ct.ID,
			EditorInterface: model.TargetEditorInterface{Controls: controls},
		})
	}

	return state
}

// ApplyTargetState writes the requested assignments into the editor interface store, the
// way the host does after a successful save.
func ApplyTargetState(ctx context.Context, repo interfaces.EditorInterfaceRepository, state model.TargetState) error {
	for _, entry := range state.Entries {
		controls := make([]model.Control, len(entry.EditorInterface.Controls))
		copy(controls, entry.EditorInterface.Controls)

		if err := repo.Put(ctx, &model.EditorInterface{
			ContentTypeID: entry.ContentTypeID,
			Controls:      controls,
		}); err != nil {
			return goerr.Wrap(err, "failed to apply editor interface",
				goerr.V(model.ContentTypeIDKey, entry.ContentTypeID))
		}
	}
	return nil
}
