package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const fieldValuesCollection = "entry_field_values"

type fieldValueRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFieldValueRepository(client *firestore.Client) *fieldValueRepository {
	return &fieldValueRepository{
		client: client,
	}
}

type fieldValueDoc struct {
	EntryID   string    `firestore:"entry_id"`
	FieldID   string    `firestore:"field_id"`
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (r *fieldValueRepository) doc(entryID types.EntryID, fieldID types.FieldID) *firestore.DocumentRef {
	return r.client.Collection(collectionName(r.collectionPrefix, fieldValuesCollection)).
		Doc(entryID.String() + "_" + fieldID.String())
}

func (r *fieldValueRepository) Get(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) (string, error) {
	snap, err := r.doc(entryID, fieldID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", nil
		}
		return "", goerr.Wrap(err, "failed to get field value",
			goerr.V("entry_id", entryID),
			goerr.V("field_id", fieldID))
	}

	var doc fieldValueDoc
	if err := snap.DataTo(&doc); err != nil {
		return "", goerr.Wrap(err, "failed to decode field value", goerr.V("doc_id", snap.Ref.ID))
	}
	return doc.Value, nil
}

func (r *fieldValueRepository) Set(ctx context.Context, entryID types.EntryID, fieldID types.FieldID, value string) error {
	if err := entryID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid field value key", goerr.V("field_id", fieldID))
	}

	doc := &fieldValueDoc{
		EntryID:   entryID.String(),
		FieldID:   fieldID.String(),
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := r.doc(entryID, fieldID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save field value",
			goerr.V("entry_id", entryID),
			goerr.V("field_id", fieldID))
	}
	return nil
}

func (r *fieldValueRepository) Remove(ctx context.Context, entryID types.EntryID, fieldID types.FieldID) error {
	if _, err := r.doc(entryID, fieldID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return goerr.Wrap(err, "failed to delete field value",
			goerr.V("entry_id", entryID),
			goerr.V("field_id", fieldID))
	}
	return nil
}
