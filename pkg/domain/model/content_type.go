package model

import (
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

// Field is a field definition of a content type. It is owned by the host and read-only here.
type Field struct {
	ID        types.FieldID   `json:"id" toml:"id"`
	Name      string          `json:"name" toml:"name"`
	Type      types.FieldType `json:"type" toml:"type"`
	Required  bool            `json:"required,omitempty" toml:"required"`
	Localized bool            `json:"localized,omitempty" toml:"localized"`
	Disabled  bool            `json:"disabled,omitempty" toml:"disabled"`
	Omitted   bool            `json:"omitted,omitempty" toml:"omitted"`
}

// ContentType is a schema of entries composed of ordered fields
type ContentType struct {
	ID           types.ContentTypeID `json:"id" toml:"id"`
	Name         string              `json:"name" toml:"name"`
	DisplayField types.FieldID       `json:"displayField,omitempty" toml:"display_field"`
	Fields       []Field             `json:"fields" toml:"field"`
}

// Field returns the field with the given ID
func (c *ContentType) Field(id types.FieldID) (*Field, bool) {
	for i := range c.Fields {
		if c.Fields[i].ID == id {
			return &c.Fields[i], true
		}
	}
	return nil, false
}

// CompatibleFields maps a content type to the ordered IDs of fields a form can be bound to
type CompatibleFields map[types.ContentTypeID][]types.FieldID

// Has reports whether the field of the content type is compatible
func (c CompatibleFields) Has(ctID types.ContentTypeID, fieldID types.FieldID) bool {
	for _, id := range c[ctID] {
		if id == fieldID {
			return true
		}
	}
	return false
}

// SelectedFields maps a content type to the set of field IDs chosen for binding.
// The slice keeps the order in which fields were selected, without duplicates.
type SelectedFields map[types.ContentTypeID][]types.FieldID

// Has reports whether the field is selected
func (s SelectedFields) Has(ctID types.ContentTypeID, fieldID types.FieldID) bool {
	for _, id := range s[ctID] {
		if id == fieldID {
			return true
		}
	}
	return false
}

// Add selects a field. Adding an already selected field is a no-op.
func (s SelectedFields) Add(ctID types.ContentTypeID, fieldID types.FieldID) {
	if s.Has(ctID, fieldID) {
		return
	}
	s[ctID] = append(s[ctID], fieldID)
}

// Remove unselects a field. The content type key is dropped once its set is empty.
func (s SelectedFields) Remove(ctID types.ContentTypeID, fieldID types.FieldID) {
	ids := s[ctID]
	kept := make([]types.FieldID, 0, len(ids))
	for _, id := range ids {
		if id != fieldID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		delete(s, ctID)
		return
	}
	s[ctID] = kept
}

// Clone returns a deep copy
func (s SelectedFields) Clone() SelectedFields {
	copied := make(SelectedFields, len(s))
	for ctID, ids := range s {
		copied[ctID] = append([]types.FieldID(nil), ids...)
	}
	return copied
}
