package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	installationsCollection = "installations"
	installationDocument    = "current"
)

type installationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInstallationRepository(client *firestore.Client) *installationRepository {
	return &installationRepository{
		client: client,
	}
}

type installationDoc struct {
	AccessToken string    `firestore:"access_token"`
	WorkspaceID string    `firestore:"workspace_id"`
	Revision    string    `firestore:"revision"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (r *installationRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(collectionName(r.collectionPrefix, installationsCollection)).Doc(installationDocument)
}

func (r *installationRepository) Get(ctx context.Context) (*model.Installation, error) {
	snap, err := r.doc().Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get installation")
	}

	var doc installationDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode installation")
	}

	return &model.Installation{
		Parameters: model.InstallationParameters{
			AccessToken: doc.AccessToken,
			WorkspaceID: doc.WorkspaceID,
		},
		Revision:  doc.Revision,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (r *installationRepository) Put(ctx context.Context, inst *model.Installation) error {
	doc := &installationDoc{
		AccessToken: inst.Parameters.AccessToken,
		WorkspaceID: inst.Parameters.WorkspaceID,
		Revision:    inst.Revision,
		UpdatedAt:   inst.UpdatedAt,
	}
	if _, err := r.doc().Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to save installation", goerr.V("revision", inst.Revision))
	}
	return nil
}
