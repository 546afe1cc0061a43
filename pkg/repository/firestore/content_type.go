package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const contentTypesCollection = "content_types"

type contentTypeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newContentTypeRepository(client *firestore.Client) *contentTypeRepository {
	return &contentTypeRepository{
		client: client,
	}
}

// fieldDoc is the Firestore persistence model of a content type field
type fieldDoc struct {
	ID        string `firestore:"id"`
	Name      string `firestore:"name"`
	Type      string `firestore:"type"`
	Required  bool   `firestore:"required"`
	Localized bool   `firestore:"localized"`
	Disabled  bool   `firestore:"disabled"`
	Omitted   bool   `firestore:"omitted"`
}

// contentTypeDoc is the Firestore persistence model
type contentTypeDoc struct {
	ID           string     `firestore:"id"`
	Name         string     `firestore:"name"`
	DisplayField string     `firestore:"display_field"`
	Fields       []fieldDoc `firestore:"fields"`
	RegisteredAt time.Time  `firestore:"registered_at"`
}

func (r *contentTypeRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, contentTypesCollection))
}

func (r *contentTypeRepository) toDoc(ct *model.ContentType) *contentTypeDoc {
	fields := make([]fieldDoc, len(ct.Fields))
	for i, f := range ct.Fields {
		fields[i] = fieldDoc{
			ID:        string(f.ID),
			Name:      f.Name,
			Type:      string(f.Type),
			Required:  f.Required,
			Localized: f.Localized,
			Disabled:  f.Disabled,
			Omitted:   f.Omitted,
		}
	}
	return &contentTypeDoc{
		ID:           string(ct.ID),
		Name:         ct.Name,
		DisplayField: string(ct.DisplayField),
		Fields:       fields,
	}
}

func (r *contentTypeRepository) fromDoc(doc *contentTypeDoc) *model.ContentType {
	fields := make([]model.Field, len(doc.Fields))
	for i, f := range doc.Fields {
		fields[i] = model.Field{
			ID:        types.FieldID(f.ID),
			Name:      f.Name,
			Type:      types.FieldType(f.Type),
			Required:  f.Required,
			Localized: f.Localized,
			Disabled:  f.Disabled,
			Omitted:   f.Omitted,
		}
	}
	return &model.ContentType{
		ID:           types.ContentTypeID(doc.ID),
		Name:         doc.Name,
		DisplayField: types.FieldID(doc.DisplayField),
		Fields:       fields,
	}
}

// List returns content types in registration order
func (r *contentTypeRepository) List(ctx context.Context) ([]model.ContentType, error) {
	iter := r.collection().OrderBy("registered_at", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []model.ContentType
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate content types")
		}

		var doc contentTypeDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode content type", goerr.V("doc_id", snap.Ref.ID))
		}
		result = append(result, *r.fromDoc(&doc))
	}

	return result, nil
}

func (r *contentTypeRepository) Get(ctx context.Context, id types.ContentTypeID) (*model.ContentType, error) {
	snap, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "content type not found", goerr.V(model.ContentTypeIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get content type", goerr.V(model.ContentTypeIDKey, id))
	}

	var doc contentTypeDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode content type", goerr.V(model.ContentTypeIDKey, id))
	}
	return r.fromDoc(&doc), nil
}

func (r *contentTypeRepository) Put(ctx context.Context, ct *model.ContentType) error {
	if err := ct.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid content type")
	}

	ref := r.collection().Doc(ct.ID.String())
	doc := r.toDoc(ct)

	// Updates keep the first registration time so List order stays stable.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
			doc.RegisteredAt = time.Now().UTC()
		case err != nil:
			return err
		default:
			var prev contentTypeDoc
			if err := snap.DataTo(&prev); err != nil {
				return err
			}
			doc.RegisteredAt = prev.RegisteredAt
		}
		return tx.Set(ref, doc)
	})
	if err != nil {
		return goerr.Wrap(err, "failed to save content type", goerr.V(model.ContentTypeIDKey, ct.ID))
	}
	return nil
}
