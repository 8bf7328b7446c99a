package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/prguard/prguard/pkg/domain/interfaces"
	"github.com/prguard/prguard/pkg/domain/model"
	"github.com/prguard/prguard/pkg/domain/types"
)

// Repository is an in-process CheckRepository. Records do not survive a
// restart; it is the default when no Firestore project is configured.
type Repository struct {
	mu      sync.Mutex
	records map[string]model.CheckRecord
}

var _ interfaces.CheckRepository = (*Repository)(nil)

// New creates an empty in-memory repository
func New() *Repository {
	return &Repository{
		records: map[string]model.CheckRecord{},
	}
}

// Create writes a new record, failing if the ID is already present
func (r *Repository) Create(_ context.Context, rec *model.CheckRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[rec.ID]; ok {
		return goerr.Wrap(types.ErrRecordExists, "duplicate record", goerr.V("id", rec.ID))
	}
	r.records[rec.ID] = *rec
	return nil
}

// Get returns the record for the ID
func (r *Repository) Get(_ context.Context, id string) (*model.CheckRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, goerr.Wrap(types.ErrRecordNotFound, "unknown record", goerr.V("id", id))
	}
	return &rec, nil
}
