package crud

import (
	"context"
	"errors"

	"fitmap/internal/docstore"
)

// SubCollectionService is the generic CRUD service over a collection nested
// under documents of a parent collection, e.g. gyms/{id}/addresses.
type SubCollectionService[T any, P Ptr[T]] struct {
	engine[T, P]
	parent docstore.CollectionRef
	name   string
}

// NewSubCollectionService creates a service for subCollection documents under
// parentCollection.
func NewSubCollectionService[T any, P Ptr[T]](store docstore.Store, parentCollection, subCollection string, opts ...Option) *SubCollectionService[T, P] {
	return &SubCollectionService[T, P]{
		engine: newEngine[T, P](store, opts),
		parent: docstore.Collection(parentCollection),
		name:   subCollection,
	}
}

func (s *SubCollectionService[T, P]) collection(parentID string) docstore.CollectionRef {
	return s.parent.Doc(parentID).Collection(s.name)
}

// Create stores child under parentID. The parent must exist.
func (s *SubCollectionService[T, P]) Create(ctx context.Context, parentID string, child *T) (*T, error) {
	if err := s.exists(ctx, s.parent.Doc(parentID)); err != nil {
		return nil, err
	}
	return s.create(ctx, s.collection(parentID), child)
}

// CreateAll creates each child independently. It returns the children that
// were stored and the joined failures of the others.
func (s *SubCollectionService[T, P]) CreateAll(ctx context.Context, parentID string, children []*T) ([]*T, error) {
	created := make([]*T, 0, len(children))
	var errs []error
	for _, child := range children {
		c, err := s.Create(ctx, parentID, child)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		created = append(created, c)
	}
	return created, errors.Join(errs...)
}

func (s *SubCollectionService[T, P]) Find(ctx context.Context, parentID, id string) (*T, error) {
	return s.find(ctx, s.collection(parentID).Doc(id))
}

// FindAll lists the children of parentID, or only those among ids.
func (s *SubCollectionService[T, P]) FindAll(ctx context.Context, parentID string, ids ...string) ([]*T, error) {
	return s.findAll(ctx, s.collection(parentID), ids)
}

// Update merges the child's fields-to-update map and returns the stored child.
func (s *SubCollectionService[T, P]) Update(ctx context.Context, parentID string, child *T) (*T, error) {
	p := P(child)
	return s.updateFields(ctx, s.collection(parentID).Doc(p.GetID()), p.FieldsToUpdate())
}

func (s *SubCollectionService[T, P]) UpdateAll(ctx context.Context, parentID string, children []*T) ([]*T, error) {
	updated := make([]*T, 0, len(children))
	var errs []error
	for _, child := range children {
		u, err := s.Update(ctx, parentID, child)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		updated = append(updated, u)
	}
	return updated, errors.Join(errs...)
}

func (s *SubCollectionService[T, P]) Delete(ctx context.Context, parentID, id string) error {
	return s.delete(ctx, s.collection(parentID).Doc(id))
}

// DeleteAll deletes each id in turn. An empty list touches nothing.
func (s *SubCollectionService[T, P]) DeleteAll(ctx context.Context, parentID string, ids []string) error {
	var errs []error
	for _, id := range ids {
		if err := s.Delete(ctx, parentID, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
