package interfaces

import (
	"context"

	"github.com/prguard/prguard/pkg/domain/model"
)

// CheckRepository persists check records. Create is atomic per ID so records
// can serve as idempotency markers.
type CheckRepository interface {
	// Create writes a new record. Returns types.ErrRecordExists when the
	// record ID has already been written.
	Create(ctx context.Context, rec *model.CheckRecord) error

	// Get returns the record for the ID, or types.ErrRecordNotFound.
	Get(ctx context.Context, id string) (*model.CheckRecord, error)
}
