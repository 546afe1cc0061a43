package config

import (
	"context"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/model"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentinel errors for space fixture validation
var (
	ErrInvalidSpace       = goerr.New("invalid space fixture")
	ErrDuplicateID        = goerr.New("duplicate ID")
	ErrInvalidFieldType   = goerr.New("invalid field type")
	ErrUnknownContentType = goerr.New("unknown content type")
)

// Context keys for error values
const (
	SpacePathKey = "space_path"
	FieldTypeKey = "field_type"
)

// SpaceFixture describes the content model and entry values of a space in TOML
type SpaceFixture struct {
	ContentTypes     []model.ContentType     `toml:"content_type"`
	EditorInterfaces []model.EditorInterface `toml:"editor_interface"`
	Entries          []EntryValue            `toml:"entry"`

	// Installation stores parameters as if the app had been saved once
	Installation *model.InstallationParameters `toml:"installation"`
}

// EntryValue is one stored entry field value
type EntryValue struct {
	EntryID types.EntryID `toml:"entry_id"`
	FieldID types.FieldID `toml:"field_id"`
	Value   string        `toml:"value"`
}

// Validate checks IDs, field types and references between sections
func (s *SpaceFixture) Validate() error {
	cts := make(map[types.ContentTypeID]*model.ContentType, len(s.ContentTypes))
	for i := range s.ContentTypes {
		ct := &s.ContentTypes[i]
		if err := ct.ID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSpace, "invalid content type ID", goerr.V("index", i))
		}
		if _, exists := cts[ct.ID]; exists {
			return goerr.Wrap(ErrDuplicateID, "duplicate content type ID", goerr.V(model.ContentTypeIDKey, ct.ID))
		}
		cts[ct.ID] = ct

		fieldIDs := make(map[types.FieldID]bool, len(ct.Fields))
		for _, field := range ct.Fields {
			if field.ID == "" {
				return goerr.Wrap(ErrInvalidSpace, "field ID is required", goerr.V(model.ContentTypeIDKey, ct.ID))
			}
			if fieldIDs[field.ID] {
				return goerr.Wrap(ErrDuplicateID, "duplicate field ID",
					goerr.V(model.ContentTypeIDKey, ct.ID), goerr.V(model.FieldIDKey, field.ID))
			}
			fieldIDs[field.ID] = true

			if !field.Type.IsValid() {
				return goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
					goerr.V(model.FieldIDKey, field.ID), goerr.V(FieldTypeKey, field.Type))
			}
		}
	}

	seen := make(map[types.ContentTypeID]bool, len(s.EditorInterfaces))
	for _, ei := range s.EditorInterfaces {
		ct, ok := cts[ei.ContentTypeID]
		if !ok {
			return goerr.Wrap(ErrUnknownContentType, "editor interface of unknown content type",
				goerr.V(model.ContentTypeIDKey, ei.ContentTypeID))
		}
		if seen[ei.ContentTypeID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate editor interface",
				goerr.V(model.ContentTypeIDKey, ei.ContentTypeID))
		}
		seen[ei.ContentTypeID] = true

		for _, control := range ei.Controls {
			if _, ok := ct.Field(control.FieldID); !ok {
				return goerr.Wrap(ErrInvalidSpace, "control of unknown field",
					goerr.V(model.ContentTypeIDKey, ei.ContentTypeID), goerr.V(model.FieldIDKey, control.FieldID))
			}
			if !control.WidgetNamespace.IsValid() {
				return goerr.Wrap(ErrInvalidSpace, "invalid widget namespace",
					goerr.V(model.FieldIDKey, control.FieldID), goerr.V("namespace", control.WidgetNamespace))
			}
		}
	}

	for _, entry := range s.Entries {
		if err := entry.EntryID.Validate(); err != nil {
			return goerr.Wrap(ErrInvalidSpace, "invalid entry ID", goerr.V("entry_id", entry.EntryID))
		}
		if entry.FieldID == "" {
			return goerr.Wrap(ErrInvalidSpace, "entry field ID is required", goerr.V("entry_id", entry.EntryID))
		}
	}

	return nil
}

// LoadSpaceFixture loads and validates a space fixture from a TOML file
func LoadSpaceFixture(path string) (*SpaceFixture, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read space fixture", goerr.V(SpacePathKey, path))
	}

	var fixture SpaceFixture
	if err := toml.Unmarshal(data, &fixture); err != nil {
		return nil, goerr.Wrap(err, "failed to parse space fixture", goerr.V(SpacePathKey, path))
	}

	if err := fixture.Validate(); err != nil {
		return nil, goerr.Wrap(err, "space fixture validation failed", goerr.V(SpacePathKey, path))
	}

	return &fixture, nil
}

// Seed writes the fixture into the repository. Existing records with the same IDs are
// replaced.
func (s *SpaceFixture) Seed(ctx context.Context, repo interfaces.Repository) error {
	for i := range s.ContentTypes {
		if err := repo.ContentType().Put(ctx, &s.ContentTypes[i]); err != nil {
			return goerr.Wrap(err, "failed to seed content type", goerr.V(model.ContentTypeIDKey, s.ContentTypes[i].ID))
		}
	}
	for i := range s.EditorInterfaces {
		if err := repo.EditorInterface().Put(ctx, &s.EditorInterfaces[i]); err != nil {
			return goerr.Wrap(err, "failed to seed editor interface", goerr.V(model.ContentTypeIDKey, s.EditorInterfaces[i].ContentTypeID))
		}
	}
	for _, entry := range s.Entries {
		if err := repo.FieldValue().Set(ctx, entry.EntryID, entry.FieldID, entry.Value); err != nil {
			return goerr.Wrap(err, "failed to seed entry value", goerr.V("entry_id", entry.EntryID))
		}
	}
	if s.Installation != nil {
		if err := repo.Installation().Put(ctx, &model.Installation{
			Parameters: s.Installation.Normalize(),
			Revision:   "fixture",
			UpdatedAt:  time.Now().UTC(),
		}); err != nil {
			return goerr.Wrap(err, "failed to seed installation")
		}
	}
	return nil
}

// Space holds the CLI flag of the space fixture
type Space struct {
	path string
}

// Flags returns CLI flags for the space fixture
func (x *Space) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "space",
			Usage:       "TOML file describing content types, editor interfaces and entries to seed",
			Category:    "Space",
			Sources:     cli.EnvVars("TYPEFORM_APP_SPACE"),
			Destination: &x.path,
		},
	}
}

// Configure seeds the repository from the fixture. It does nothing without a path.
func (x *Space) Configure(ctx context.Context, repo interfaces.Repository) error {
	if x.path == "" {
		return nil
	}

	fixture, err := LoadSpaceFixture(x.path)
	if err != nil {
		return err
	}
	if err := fixture.Seed(ctx, repo); err != nil {
		return err
	}

	logging.Default().Info("Seeded space",
		"path", x.path,
		"content_types", len(fixture.ContentTypes),
		"editor_interfaces", len(fixture.EditorInterfaces),
		"entries", len(fixture.Entries),
	)
	return nil
}
