package model

import (
	"bytes"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

// Control assigns an editor widget to a field
type Control struct {
	FieldID         types.FieldID         `json:"fieldId" toml:"field_id"`
	WidgetID        types.WidgetID        `json:"widgetId,omitempty" toml:"widget_id"`
	WidgetNamespace types.WidgetNamespace `json:"widgetNamespace,omitempty" toml:"widget_namespace"`
}

// IsAssigned reports whether a widget is assigned to the field
func (c Control) IsAssigned() bool {
	return c.WidgetID != ""
}

// EditorInterface is the host record of widget assignments for one content type
type EditorInterface struct {
	ContentTypeID types.ContentTypeID `json:"contentTypeId" toml:"content_type_id"`
	Controls      []Control           `json:"controls" toml:"control"`
}

// Control returns the control of the field
func (e *EditorInterface) Control(fieldID types.FieldID) (Control, bool) {
	for _, c := range e.Controls {
		if c.FieldID == fieldID {
			return c, true
		}
	}
	return Control{}, false
}

// TargetEditorInterface is the desired editor interface of one content type
type TargetEditorInterface struct {
	Controls []Control `json:"controls"`
}

// TargetStateEntry is the desired state of one content type
type TargetStateEntry struct {
	ContentTypeID   types.ContentTypeID
	EditorInterface TargetEditorInterface
}

// TargetState is the desired end state of editor interface assignments submitted on save.
// Entries keep the content type order they were derived from.
type TargetState struct {
	Entries []TargetStateEntry
}

// Get returns the entry of the content type
func (t *TargetState) Get(ctID types.ContentTypeID) (*TargetStateEntry, bool) {
	for i := range t.Entries {
		if t.Entries[i].ContentTypeID == ctID {
			return &t.Entries[i], true
		}
	}
	return nil, false
}

type targetStateValue struct {
	EditorInterface TargetEditorInterface `json:"editorInterface"`
}

// MarshalJSON encodes the state as {"<contentTypeId>": {"editorInterface": {"controls": [...]}}}
// keeping entry order.
func (t TargetState) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range t.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(entry.ContentTypeID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode content type ID", goerr.V(ContentTypeIDKey, entry.ContentTypeID))
		}
		controls := entry.EditorInterface.Controls
		if controls == nil {
			controls = []Control{}
		}
		value, err := json.Marshal(targetStateValue{EditorInterface: TargetEditorInterface{Controls: controls}})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode target state entry", goerr.V(ContentTypeIDKey, entry.ContentTypeID))
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the object form. Key order of the document is preserved.
func (t *TargetState) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return goerr.Wrap(err, "failed to read target state")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return goerr.New("target state must be a JSON object")
	}

	t.Entries = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return goerr.Wrap(err, "failed to read target state key")
		}
		key, _ := keyTok.(string)

		var value targetStateValue
		if err := dec.Decode(&value); err != nil {
			return goerr.Wrap(err, "failed to decode target state entry", goerr.V(ContentTypeIDKey, key))
		}
		t.Entries = append(t.Entries, TargetStateEntry{
			ContentTypeID:   types.ContentTypeID(key),
			EditorInterface: value.EditorInterface,
		})
	}
	return nil
}
