package usecase

import (
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

// CompatibleFields indexes, per content type, the fields a form can be bound to. Field
// order follows the content type definition. Every content type gets an entry, empty when
// none of its fields is compatible.
func CompatibleFields(contentTypes []model.ContentType) model.CompatibleFields {
	compatible := make(model.CompatibleFields, len(contentTypes))
	for _, ct := range contentTypes {
		compatible[ct.ID] = []types.FieldID{}
		for _, field := range ct.Fields {
			if !field.Type.IsCompatible() {
				continue
			}
			compatible[ct.ID] = append(compatible[ct.ID], field.ID)
		}
	}
	return compatible
}

// FilterDisplayable keeps the content types that have at least one compatible field, in
// their original order.
func FilterDisplayable(contentTypes []model.ContentType, compatible model.CompatibleFields) []model.ContentType {
	displayable := make([]model.ContentType, 0, len(contentTypes))
	for _, ct := range contentTypes {
		if len(compatible[ct.ID]) > 0 {
			displayable = append(displayable, ct)
		}
	}
	return displayable
}
