package usecase

import (
	"github.com/secmon-lab/typeform-app/pkg/domain/interfaces"
	"github.com/secmon-lab/typeform-app/pkg/domain/types"
	"github.com/secmon-lab/typeform-app/pkg/service/typeform"
)

type UseCases struct {
	repo         interfaces.Repository
	appID        types.AppID
	backend      interfaces.FormsBackend
	typeform     typeform.Service
	installToken string

	Config *ConfigUseCase
	Field  *FieldUseCase
	Forms  *FormsUseCase
}

type Option func(*UseCases)

// WithBackend sets the companion backend used by the configuration screen and field
// widgets. Without it, a Typeform client set by WithTypeform is used in process.
func WithBackend(backend interfaces.FormsBackend) Option {
	return func(uc *UseCases) {
		uc.backend = backend
	}
}

// WithTypeform sets the Typeform API client served by the companion backend endpoints
func WithTypeform(svc typeform.Service) Option {
	return func(uc *UseCases) {
		uc.typeform = svc
	}
}

// WithInstallAccessToken sets the token entered at install time
func WithInstallAccessToken(token string) Option {
	return func(uc *UseCases) {
		uc.installToken = token
	}
}

func New(repo interfaces.Repository, appID types.AppID, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:  repo,
		appID: appID,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Forms = NewFormsUseCase(uc.typeform)
	if uc.backend == nil && uc.typeform != nil {
		uc.backend = NewDirectBackend(uc.Forms)
	}
	uc.Config = NewConfigUseCase(repo, uc.backend, appID, uc.installToken)
	uc.Field = NewFieldUseCase(repo, uc.backend)

	return uc
}
