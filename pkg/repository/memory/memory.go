package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	contentType     *contentTypeRepository
	editorInterface *editorInterfaceRepository
	installation    *installationRepository
	fieldValue      *fieldValueRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		contentType:     newContentTypeRepository(),
		editorInterface: newEditorInterfaceRepository(),
		installation:    newInstallationRepository(),
		fieldValue:      newFieldValueRepository(),
	}
}

func (m *Memory) ContentType() interfaces.ContentTypeRepository {
	return m.contentType
}

func (m *Memory) EditorInterface() interfaces.EditorInterfaceRepository {
	return m.editorInterface
}

func (m *Memory) Installation() interfaces.InstallationRepository {
	return m.installation
}

func (m *Memory) FieldValue() interfaces.FieldValueRepository {
	return m.fieldValue
}

func (m *Memory) Close() error {
	return nil
}
