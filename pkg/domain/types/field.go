package types

// FieldID represents the identifier of a field within a content type
type FieldID string

// String returns the string representation of FieldID
func (f FieldID) String() string {
	return string(f)
}

// FieldType represents the type tag of a content type field
type FieldType string

const (
	FieldTypeSymbol   FieldType = "Symbol"
	FieldTypeText     FieldType = "Text"
	FieldTypeRichText FieldType = "RichText"
	FieldTypeInteger  FieldType = "Integer"
	FieldTypeNumber   FieldType = "Number"
	FieldTypeDate     FieldType = "Date"
	FieldTypeLocation FieldType = "Location"
	FieldTypeBoolean  FieldType = "Boolean"
	FieldTypeLink     FieldType = "Link"
	FieldTypeArray    FieldType = "Array"
	FieldTypeObject   FieldType = "Object"
)

// CompatibleFieldType is the only field type a form can be bound to (short text)
const CompatibleFieldType = FieldTypeSymbol

// IsCompatible reports whether a form URL can be stored in a field of this type
func (t FieldType) IsCompatible() bool {
	return t == CompatibleFieldType
}

// IsValid checks if the field type is one known by the host
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeSymbol,
		FieldTypeText,
		FieldTypeRichText,
		FieldTypeInteger,
		FieldTypeNumber,
		FieldTypeDate,
		FieldTypeLocation,
		FieldTypeBoolean,
		FieldTypeLink,
		FieldTypeArray,
		FieldTypeObject:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field type
func (t FieldType) String() string {
	return string(t)
}
