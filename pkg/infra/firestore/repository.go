package firestore

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/prguard/prguard/pkg/domain/interfaces"
	"github.com/prguard/prguard/pkg/domain/model"
	"github.com/prguard/prguard/pkg/domain/types"
)

// Repository is a CheckRepository backed by Cloud Firestore. Document
// creation is atomic, which gives the idempotency guarantee Create needs.
type Repository struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.CheckRepository = (*Repository)(nil)

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, collection string, opts ...option.ClientOption) (*Repository, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Firestore client", goerr.V("project", projectID))
	}

	return &Repository{
		client:     client,
		collection: collection,
	}, nil
}

// Close releases the underlying Firestore client
func (r *Repository) Close() error {
	return r.client.Close()
}

// Create writes a new record, failing if the ID is already present
func (r *Repository) Create(ctx context.Context, rec *model.CheckRecord) error {
	doc := r.client.Collection(r.collection).Doc(docID(rec.ID))
	if _, err := doc.Create(ctx, rec); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(types.ErrRecordExists, "duplicate record", goerr.V("id", rec.ID))
		}
		return goerr.Wrap(err, "failed to create check record", goerr.V("id", rec.ID))
	}
	return nil
}

// Get returns the record for the ID
func (r *Repository) Get(ctx context.Context, id string) (*model.CheckRecord, error) {
	snap, err := r.client.Collection(r.collection).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrRecordNotFound, "unknown record", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get check record", goerr.V("id", id))
	}

	var rec model.CheckRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, goerr.Wrap(err, "failed to decode check record", goerr.V("id", id))
	}
	return &rec, nil
}

// docID maps record IDs to Firestore document IDs. Slashes are reserved as
// path separators in Firestore.
func docID(id string) string {
	return strings.ReplaceAll(id, "/", "_")
}
