// Package docstore contains the document store abstraction used by the CRUD
// services. Implementations live in subpackages (firestore, postgres) and in
// memory.go for local runs and tests.
package docstore

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")
	// ErrInvalidID is returned for ids that cannot name a single document.
	ErrInvalidID = errors.New("invalid document id")
)

// MaxIDLength is the longest id, in bytes, every backend accepts.
const MaxIDLength = 1500

// ValidID reports whether id names exactly one document: non-empty, at most
// MaxIDLength bytes, no '/', not "." or "..", and not of the reserved
// "__name__" form. An id with a '/' would address a document in another
// collection.
func ValidID(id string) bool {
	switch {
	case id == "", id == ".", id == "..", len(id) > MaxIDLength:
		return false
	case strings.Contains(id, "/"):
		return false
	case len(id) >= 4 && strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"):
		return false
	}
	return true
}

// CollectionRef addresses a collection, either top-level or nested under a
// parent document.
type CollectionRef struct {
	Parent *DocRef
	Name   string
}

// DocRef addresses a single document.
type DocRef struct {
	Coll CollectionRef
	ID   string
}

// Collection returns a reference to a top-level collection.
func Collection(name string) CollectionRef {
	return CollectionRef{Name: name}
}

// Doc returns a reference to the document with the given id in c.
func (c CollectionRef) Doc(id string) DocRef {
	return DocRef{Coll: c, ID: id}
}

// Path renders the slash-separated path, e.g. "gyms/g1/addresses".
func (c CollectionRef) Path() string {
	if c.Parent == nil {
		return c.Name
	}
	return c.Parent.Path() + "/" + c.Name
}

// Valid reports whether every document id on the path to c is valid.
func (c CollectionRef) Valid() bool {
	return c.Parent == nil || c.Parent.Valid()
}

// Valid reports whether d and every document above it have valid ids.
func (d DocRef) Valid() bool {
	return ValidID(d.ID) && d.Coll.Valid()
}

// Collection returns a sub-collection of d.
func (d DocRef) Collection(name string) CollectionRef {
	parent := d
	return CollectionRef{Parent: &parent, Name: name}
}

// Path renders the slash-separated path, e.g. "gyms/g1".
func (d DocRef) Path() string {
	return d.Coll.Path() + "/" + d.ID
}

// Snapshot is a document read from a store.
type Snapshot interface {
	ID() string
	// DataTo decodes the document fields into the struct pointed to by v.
	DataTo(v any) error
}

// Store is the persistence contract. Calls are synchronous; implementations
// do not retry. Missing documents are reported as ErrNotFound and id
// collisions on Create as ErrAlreadyExists.
type Store interface {
	// Get returns a single document.
	Get(ctx context.Context, ref DocRef) (Snapshot, error)

	// GetAll returns the documents that exist among refs, in input order.
	GetAll(ctx context.Context, refs []DocRef) ([]Snapshot, error)

	// List returns every document in a collection.
	List(ctx context.Context, coll CollectionRef) ([]Snapshot, error)

	// Create stores data as a new document and fails if the id is taken.
	Create(ctx context.Context, ref DocRef, data any) error

	// Update merges fields into an existing document.
	Update(ctx context.Context, ref DocRef, fields map[string]any) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, ref DocRef) error

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
