package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/repository/firestore"
	"github.com/secmon-lab/typeform-app/pkg/repository/memory"
)

func isNotFound(err error) bool {
	return errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("content types are listed in registration order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, ct := range []model.ContentType{
			{ID: "landingPage", Name: "Landing Page", Fields: []model.Field{{ID: "body", Type: types.FieldTypeText}}},
			{ID: "article", Name: "Article", Fields: []model.Field{{ID: "title", Type: types.FieldTypeSymbol}}},
		} {
			gt.NoError(t, repo.ContentType().Put(ctx, &ct)).Required()
		}
		// Updating keeps the original position
		gt.NoError(t, repo.ContentType().Put(ctx, &model.ContentType{ID: "landingPage", Name: "Landing"})).Required()

		list, err := repo.ContentType().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2).Required()
		gt.Value(t, list[0].ID).Equal(types.ContentTypeID("landingPage"))
		gt.Value(t, list[0].Name).Equal("Landing")
		gt.Value(t, list[1].ID).Equal(types.ContentTypeID("article"))
		gt.Value(t, list[1].Fields[0].Type).Equal(types.FieldTypeSymbol)
	})

	t.Run("content type Put replaces the schema", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		ct := &model.ContentType{ID: "article", Name: "Article"}
		gt.NoError(t, repo.ContentType().Put(ctx, ct)).Required()

		ct.Fields = []model.Field{{ID: "formUrl", Name: "Form", Type: types.FieldTypeSymbol}}
		gt.NoError(t, repo.ContentType().Put(ctx, ct)).Required()

		got, err := repo.ContentType().Get(ctx, "article")
		gt.NoError(t, err).Required()
		gt.Array(t, got.Fields).Length(1)

		list, err := repo.ContentType().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
	})

	t.Run("content type Get returns not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.ContentType().Get(context.Background(), "missing")
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("content type Put rejects empty ID", func(t *testing.T) {
		repo := newRepo(t)
		gt.Error(t, repo.ContentType().Put(context.Background(), &model.ContentType{Name: "No ID"}))
	})

	t.Run("editor interface Put replaces controls", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.EditorInterface().Put(ctx, &model.EditorInterface{
			ContentTypeID: "article",
			Controls: []model.Control{
				{FieldID: "title", WidgetID: "singleLine", WidgetNamespace: types.WidgetNamespaceBuiltin},
				{FieldID: "formUrl", WidgetID: "typeform-app", WidgetNamespace: types.WidgetNamespaceApp},
			},
		})).Required()

		gt.NoError(t, repo.EditorInterface().Put(ctx, &model.EditorInterface{
			ContentTypeID: "article",
			Controls: []model.Control{
				{FieldID: "title", WidgetID: "singleLine", WidgetNamespace: types.WidgetNamespaceBuiltin},
			},
		})).Required()

		got, err := repo.EditorInterface().Get(ctx, "article")
		gt.NoError(t, err).Required()
		gt.Array(t, got.Controls).Length(1)

		list, err := repo.EditorInterface().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
	})

	t.Run("editor interface Get returns not found", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.EditorInterface().Get(context.Background(), "missing")
		gt.Bool(t, isNotFound(err)).True()
	})

	t.Run("installation round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		missing, err := repo.Installation().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, missing).Nil()

		now := time.Now().UTC().Truncate(time.Millisecond)
		gt.NoError(t, repo.Installation().Put(ctx, &model.Installation{
			Parameters: model.InstallationParameters{AccessToken: "tok", WorkspaceID: "ws1"},
			Revision:   "rev-1",
			UpdatedAt:  now,
		})).Required()

		got, err := repo.Installation().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Parameters.WorkspaceID).Equal("ws1")
		gt.Value(t, got.Parameters.AccessToken).Equal("tok")
		gt.Value(t, got.Revision).Equal("rev-1")
		gt.Bool(t, got.UpdatedAt.Equal(now)).True()
	})

	t.Run("field value set get remove", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		value, err := repo.FieldValue().Get(ctx, "entry-1", "formUrl")
		gt.NoError(t, err).Required()
		gt.Value(t, value).Equal("")

		gt.NoError(t, repo.FieldValue().Set(ctx, "entry-1", "formUrl", "https://f.typeform.com/to/abc")).Required()
		value, err = repo.FieldValue().Get(ctx, "entry-1", "formUrl")
		gt.NoError(t, err).Required()
		gt.Value(t, value).Equal("https://f.typeform.com/to/abc")

		other, err := repo.FieldValue().Get(ctx, "entry-2", "formUrl")
		gt.NoError(t, err).Required()
		gt.Value(t, other).Equal("")

		gt.NoError(t, repo.FieldValue().Remove(ctx, "entry-1", "formUrl")).Required()
		value, err = repo.FieldValue().Get(ctx, "entry-1", "formUrl")
		gt.NoError(t, err).Required()
		gt.Value(t, value).Equal("")

		gt.NoError(t, repo.FieldValue().Remove(ctx, "entry-1", "formUrl"))
	})
}

func TestRepository_Memory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("FIRESTORE_DATABASE_ID")

	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		prefix := "test_" + uuid.NewString()
		repo, err := firestore.New(context.Background(), projectID, databaseID, firestore.WithCollectionPrefix(prefix))
		gt.NoError(t, err).Required()
		t.Cleanup(func() {
			_ = repo.Close()
		})
		return repo
	})
}
