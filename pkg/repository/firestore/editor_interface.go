package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const editorInterfacesCollection = "editor_interfaces"

type editorInterfaceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEditorInterfaceRepository(client *firestore.Client) *editorInterfaceRepository {
	return &editorInterfaceRepository{
		client: client,
	}
}

type controlDoc struct {
	FieldID         string `firestore:"field_id"`
	WidgetID        string `firestore:"widget_id"`
	WidgetNamespace string `firestore:"widget_namespace"`
}

type editorInterfaceDoc struct {
	ContentTypeID string       `firestore:"content_type_id"`
	Controls      []controlDoc `firestore:"controls"`
}

func (r *editorInterfaceRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, editorInterfacesCollection))
}

func (r *editorInterfaceRepository) toDoc(ei *model.EditorInterface) *editorInterfaceDoc {
	controls := make([]controlDoc, len(ei.Controls))
	for i, c := range ei.Controls {
		controls[i] = controlDoc{
			FieldID:         string(c.FieldID),
			WidgetID:        string(c.WidgetID),
			WidgetNamespace: string(c.WidgetNamespace),
		}
	}
	return &editorInterfaceDoc{
		ContentTypeID: string(ei.ContentTypeID),
		Controls:      controls,
	}
}

func (r *editorInterfaceRepository) fromDoc(doc *editorInterfaceDoc) *model.EditorInterface {
	controls := make([]model.Control, len(doc.Controls))
	for i, c := range doc.Controls {
		controls[i] = model.Control{
			FieldID:         types.FieldID(c.FieldID),
			WidgetID:        types.WidgetID(c.WidgetID),
			WidgetNamespace: types.WidgetNamespace(c.WidgetNamespace),
		}
	}
	return &model.EditorInterface{
		ContentTypeID: types.ContentTypeID(doc.ContentTypeID),
		Controls:      controls,
	}
}

func (r *editorInterfaceRepository) List(ctx context.Context) ([]model.EditorInterface, error) {
	iter := r.collection().OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []model.EditorInterface
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate editor interfaces")
		}

		var doc editorInterfaceDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode editor interface", goerr.V("doc_id", snap.Ref.ID))
		}
		result = append(result, *r.fromDoc(&doc))
	}

	return result, nil
}

func (r *editorInterfaceRepository) Get(ctx context.Context, ctID types.ContentTypeID) (*model.EditorInterface, error) {
	snap, err := r.collection().Doc(ctID.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "editor interface not found", goerr.V(model.ContentTypeIDKey, ctID))
		}
		return nil, goerr.Wrap(err, "failed to get editor interface", goerr.V(model.ContentTypeIDKey, ctID))
	}

	var doc editorInterfaceDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode editor interface", goerr.V(model.ContentTypeIDKey, ctID))
	}
	return r.fromDoc(&doc), nil
}

func (r *editorInterfaceRepository) Put(ctx context.Context, ei *model.EditorInterface) error {
	if err := ei.ContentTypeID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid editor interface")
	}

	if _, err := r.collection().Doc(ei.ContentTypeID.String()).Set(ctx, r.toDoc(ei)); err != nil {
		return goerr.Wrap(err, "failed to save editor interface", goerr.V(model.ContentTypeIDKey, ei.ContentTypeID))
	}
	return nil
}
