package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
)

type fieldValueKey struct {
	EntryID types.EntryID
	FieldID types.FieldID
}

type fieldValueRepository struct {
	mu     sync.RWMutex
	values map[fieldValueKey]string
}

func newFieldValueRepository() *fieldValueRepository {
	return &fieldValueRepository{
		values: make(map[fieldValueKey]string),
	}
}

func (r *fieldValueRepository) Get(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.values[fieldValueKey{EntryID: entryID, FieldID: fieldID}], nil
}

func (r *fieldValueRepository) Set(ctx context.Context, entryID types.EntryID, fieldID types.FieldID, value string) error {
	if err := entryID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid field value key", goerr.V("field_id", fieldID))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[fieldValueKey{EntryID: entryID, FieldID: fieldID}] = value
	return nil
}

func (r *fieldValueRepository) Remove(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, fieldValueKey{EntryID: entryID, FieldID: fieldID})
	return nil
}
