package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

type contentTypeRepository struct {
	mu           sync.RWMutex
	contentTypes map[types.ContentTypeID]*model.ContentType
	order        []types.ContentTypeID // preserves registration order
}

func newContentTypeRepository() *contentTypeRepository {
	return &contentTypeRepository{
		contentTypes: make(map[types.ContentTypeID]*model.ContentType),
	}
}

func copyContentType(ct *model.ContentType) *model.ContentType {
	copied := *ct
	copied.Fields = append([]model.Field(nil), ct.Fields...)
	return &copied
}

func (r *contentTypeRepository) List(ctx context.Context) ([]model.ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.ContentType, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, *copyContentType(r.contentTypes[id]))
	}
	return result, nil
}

func (r *contentTypeRepository) Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ct, ok := r.contentTypes[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V(model.ContentTypeIDKey, id))
	}
	return copyContentType(ct), nil
}

func (r *contentTypeRepository) Put(ctx context.Context, ct *model.ContentType) error {
	if err := ct.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid content type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.contentTypes[ct.ID]; !exists {
		r.order = append(r.order, ct.ID)
	}
	r.contentTypes[ct.ID] = copyContentType(ct)
	return nil
}
