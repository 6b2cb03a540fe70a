// Package crud holds the generic create/read/update/delete services shared by
// every entity type: top-level collections (DocumentService) and collections
// scoped under a parent document (SubCollectionService).
//
// An entity type plugs in by implementing Record on its pointer type; the
// services never look at business fields, only at ids, timestamps and the
// fields-to-update map.
package crud

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
	"fitmap/internal/model"
)

// Record is the capability set an entity supplies to the generic services.
type Record interface {
	GetID() string
	SetID(id string)
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
	// FieldsToUpdate returns the only fields an update may overwrite,
	// keyed by stored field name.
	FieldsToUpdate() map[string]any
}

// Ptr constrains P to be *T and a Record, so services can allocate T values
// while calling Record methods on them.
type Ptr[T any] interface {
	*T
	Record
}

// Option customizes a service.
type Option func(*options)

type options struct {
	now            func() time.Time
	subCollections []string
}

func defaultOptions() options {
	return options{
		// Firestore keeps microseconds; truncating keeps values stable across reads.
		now: func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithSubCollections names the sub-collections removed together with a
// document on Delete.
func WithSubCollections(names ...string) Option {
	return func(o *options) { o.subCollections = append(o.subCollections, names...) }
}

// engine implements the operations shared by both services on an explicit
// collection reference.
type engine[T any, P Ptr[T]] struct {
	store docstore.Store
	opts  options
}

func newEngine[T any, P Ptr[T]](store docstore.Store, opts []Option) engine[T, P] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return engine[T, P]{store: store, opts: o}
}

func (e engine[T, P]) decode(snap docstore.Snapshot) (*T, error) {
	v := new(T)
	if err := snap.DataTo(v); err != nil {
		return nil, apperr.Internal(err, "failed to decode document")
	}
	P(v).SetID(snap.ID())
	return v, nil
}

// missing reports store errors that mean the document cannot exist.
func missing(err error) bool {
	return errors.Is(err, docstore.ErrNotFound) || errors.Is(err, docstore.ErrInvalidID)
}

func notFound(ref docstore.DocRef, cause error) *apperr.Error {
	return apperr.NotFound("%s not found", ref.Path()).Wrap(cause)
}

func (e engine[T, P]) find(ctx context.Context, ref docstore.DocRef) (*T, error) {
	if !ref.Valid() {
		return nil, notFound(ref, docstore.ErrInvalidID)
	}
	snap, err := e.store.Get(ctx, ref)
	if err != nil {
		if missing(err) {
			return nil, notFound(ref, err)
		}
		return nil, apperr.Internal(err, "failed to read document")
	}
	return e.decode(snap)
}

func (e engine[T, P]) findAll(ctx context.Context, coll docstore.CollectionRef, ids []string) ([]*T, error) {
	if !coll.Valid() {
		return []*T{}, nil
	}

	var (
		snaps []docstore.Snapshot
		err   error
	)
	if len(ids) == 0 {
		snaps, err = e.store.List(ctx, coll)
	} else {
		// ids that cannot exist are omitted like missing ones
		refs := make([]docstore.DocRef, 0, len(ids))
		for _, id := range ids {
			if docstore.ValidID(id) {
				refs = append(refs, coll.Doc(id))
			}
		}
		if len(refs) == 0 {
			return []*T{}, nil
		}
		snaps, err = e.store.GetAll(ctx, refs)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to read documents")
	}

	out := make([]*T, 0, len(snaps))
	for _, snap := range snaps {
		v, err := e.decode(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (e engine[T, P]) create(ctx context.Context, coll docstore.CollectionRef, v *T) (*T, error) {
	p := P(v)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	ref := coll.Doc(p.GetID())
	if !ref.Valid() {
		return nil, invalidID()
	}

	now := e.opts.now()
	p.SetCreatedAt(now)
	p.SetUpdatedAt(now)

	if err := e.store.Create(ctx, ref, v); err != nil {
		switch {
		case errors.Is(err, docstore.ErrAlreadyExists):
			return nil, apperr.Conflict("%s already exists", ref.Path()).Wrap(err)
		case errors.Is(err, docstore.ErrInvalidID):
			return nil, invalidID()
		}
		return nil, apperr.Internal(err, "failed to create document")
	}
	return v, nil
}

// updateFields writes fields plus updated_at and returns the merged document.
func (e engine[T, P]) updateFields(ctx context.Context, ref docstore.DocRef, fields map[string]any) (*T, error) {
	if ref.ID == "" {
		return nil, apperr.Validation("id is required", apperr.Violation{Field: "id", Message: "must not be blank"})
	}
	if !ref.Valid() {
		return nil, notFound(ref, docstore.ErrInvalidID)
	}

	patch := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		patch[k] = v
	}
	patch[model.FieldUpdatedAt] = e.opts.now()

	if err := e.store.Update(ctx, ref, patch); err != nil {
		if missing(err) {
			return nil, notFound(ref, err)
		}
		return nil, apperr.Internal(err, "failed to update document")
	}
	return e.find(ctx, ref)
}

func (e engine[T, P]) delete(ctx context.Context, ref docstore.DocRef) error {
	if err := e.exists(ctx, ref); err != nil {
		return err
	}
	return e.remove(ctx, ref)
}

func (e engine[T, P]) remove(ctx context.Context, ref docstore.DocRef) error {
	if err := e.store.Delete(ctx, ref); err != nil {
		return apperr.Internal(err, "failed to delete document")
	}
	return nil
}

// exists reports NotFound when ref is missing.
func (e engine[T, P]) exists(ctx context.Context, ref docstore.DocRef) error {
	if !ref.Valid() {
		return notFound(ref, docstore.ErrInvalidID)
	}
	if _, err := e.store.Get(ctx, ref); err != nil {
		if missing(err) {
			return notFound(ref, err)
		}
		return apperr.Internal(err, "failed to read document")
	}
	return nil
}

func invalidID() *apperr.Error {
	return apperr.Validation("id is invalid",
		apperr.Violation{Field: "id", Message: "must not contain '/' or use the reserved __name__ form"}).Wrap(docstore.ErrInvalidID)
}
