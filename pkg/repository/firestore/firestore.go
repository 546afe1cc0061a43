package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = goerr.New("not found")

type Firestore struct {
	client          *firestore.Client
	contentType     *contentTypeRepository
	editorInterface *editorInterfaceRepository
	installation    *installationRepository
	fieldValue      *fieldValueRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.contentType.collectionPrefix = prefix
		f.editorInterface.collectionPrefix = prefix
		f.installation.collectionPrefix = prefix
		f.fieldValue.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:          client,
		contentType:     newContentTypeRepository(client),
		editorInterface: newEditorInterfaceRepository(client),
		installation:    newInstallationRepository(client),
		fieldValue:      newFieldValueRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) ContentType() interfaces.ContentTypeRepository {
	return f.contentType
}

func (f *Firestore) EditorInterface() interfaces.EditorInterfaceRepository {
	return f.editorInterface
}

func (f *Firestore) Installation() interfaces.InstallationRepository {
	return f.installation
}

func (f *Firestore) FieldValue() interfaces.FieldValueRepository {
	return f.fieldValue
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func collectionName(prefix, name string) string {
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}
