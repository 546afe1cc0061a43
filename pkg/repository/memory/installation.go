package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/typeform-app/pkg/domain/model"
)

type installationRepository struct {
	mu           sync.RWMutex
	installation *model.Installation
}

func newInstallationRepository() *installationRepository {
	return &installationRepository{}
}

func (r *installationRepository) Get(ctx context.Context) (*model.Installation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.installation == nil {
		return nil, nil
	}
	copied := *r.installation
	return &copied, nil
}

func (r *installationRepository) Put(ctx context.Context, inst *model.Installation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *inst
	r.installation = &copied
	return nil
}
