package crud

import (
	"context"
	"errors"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
)

// DocumentService is the generic CRUD service over one top-level collection.
// Concurrent updates are last-write-wins; there is no version check.
type DocumentService[T any, P Ptr[T]] struct {
	engine[T, P]
	coll docstore.CollectionRef
}

// NewDocumentService creates a service over the named collection, e.g.
//
//	gyms := crud.NewDocumentService[model.Gym](store, "gyms", crud.WithSubCollections("contacts", "addresses"))
func NewDocumentService[T any, P Ptr[T]](store docstore.Store, collection string, opts ...Option) *DocumentService[T, P] {
	return &DocumentService[T, P]{
		engine: newEngine[T, P](store, opts),
		coll:   docstore.Collection(collection),
	}
}

// Create assigns an id when missing, stamps created_at and updated_at, and
// stores the entity. An existing id yields a Conflict error.
func (s *DocumentService[T, P]) Create(ctx context.Context, v *T) (*T, error) {
	return s.create(ctx, s.coll, v)
}

// CreateAll creates each entity in turn. Failures do not stop the batch; the
// created entities are returned together with the joined failures.
func (s *DocumentService[T, P]) CreateAll(ctx context.Context, vs []*T) ([]*T, error) {
	created := make([]*T, 0, len(vs))
	var errs []error
	for _, v := range vs {
		c, err := s.Create(ctx, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created = append(created, c)
	}
	return created, errors.Join(errs...)
}

// Find returns the entity with the given id.
func (s *DocumentService[T, P]) Find(ctx context.Context, id string) (*T, error) {
	return s.find(ctx, s.coll.Doc(id))
}

// FindAll returns every entity when ids is empty, otherwise the entities that
// exist among ids, silently skipping the others.
func (s *DocumentService[T, P]) FindAll(ctx context.Context, ids ...string) ([]*T, error) {
	return s.findAll(ctx, s.coll, ids)
}

// Update writes the entity's fields-to-update map and a fresh updated_at,
// then returns the stored entity. id and created_at are never written.
func (s *DocumentService[T, P]) Update(ctx context.Context, v *T) (*T, error) {
	p := P(v)
	return s.updateFields(ctx, s.coll.Doc(p.GetID()), p.FieldsToUpdate())
}

// UpdateFields writes an explicit field set, used by the additive list
// operations that compute the new list themselves.
func (s *DocumentService[T, P]) UpdateFields(ctx context.Context, id string, fields map[string]any) (*T, error) {
	return s.updateFields(ctx, s.coll.Doc(id), fields)
}

// UpdateAll updates each entity in turn and joins the failures.
func (s *DocumentService[T, P]) UpdateAll(ctx context.Context, vs []*T) ([]*T, error) {
	updated := make([]*T, 0, len(vs))
	var errs []error
	for _, v := range vs {
		u, err := s.Update(ctx, v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		updated = append(updated, u)
	}
	return updated, errors.Join(errs...)
}

// Delete removes the entity and every document of its declared
// sub-collections. Children are removed before the parent.
func (s *DocumentService[T, P]) Delete(ctx context.Context, id string) error {
	ref := s.coll.Doc(id)
	if err := s.exists(ctx, ref); err != nil {
		return err
	}
	for _, name := range s.opts.subCollections {
		children, err := s.store.List(ctx, ref.Collection(name))
		if err != nil {
			return apperr.Internal(err, "failed to list sub-collection")
		}
		for _, child := range children {
			if err := s.remove(ctx, ref.Collection(name).Doc(child.ID())); err != nil {
				return err
			}
		}
	}
	return s.remove(ctx, ref)
}

// DeleteAll deletes each id in turn. An empty list touches nothing.
func (s *DocumentService[T, P]) DeleteAll(ctx context.Context, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
