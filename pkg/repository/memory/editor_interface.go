package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

type editorInterfaceRepository struct {
	mu               sync.RWMutex
	editorInterfaces map[types.ContentTypeID]*model.EditorInterface
	order            []types.ContentTypeID
}

func newEditorInterfaceRepository() *editorInterfaceRepository {
	return &editorInterfaceRepository{
		editorInterfaces: make(map[types.ContentTypeID]*model.EditorInterface),
	}
}

func copyEditorInterface(ei *model.EditorInterface) *model.EditorInterface {
	return &model.EditorInterface{
		ContentTypeID: ei.ContentTypeID,
		Controls:      append([]model.Control(nil), ei.Controls...),
	}
}

func (r *editorInterfaceRepository) List(ctx context.Context) ([]model.EditorInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.EditorInterface, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *copyEditorInterface(r.editorInterfaces[id]))
	}
	return result, nil
}

func (r *editorInterfaceRepository) Get(ctx context.Context, ctID types.ContentTypeID) (*model.EditorInterface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ei, ok := r.editorInterfaces[ctID]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "editor interface not found", goerr.V(model.ContentTypeIDKey, ctID))
	}
	return copyEditorInterface(ei), nil
}

func (r *editorInterfaceRepository) Put(ctx context.Context, ei *model.EditorInterface) error {
	if err := ei.ContentTypeID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid editor interface")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.editorInterfaces[ei.ContentTypeID]; !exists {
		r.order = append(r.order, ei.ContentTypeID)
	}
	r.editorInterfaces[ei.ContentTypeID] = copyEditorInterface(ei)
	return nil
}
