// Package firestore implements docstore.Store on Cloud Firestore through the
// Firebase Admin SDK.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"fitmap/internal/config"
	"fitmap/internal/docstore"
)

const healthDoc = "_health/ping"

// Store is a Firestore-backed document store. It is safe for concurrent use.
type Store struct {
	client *firestore.Client
}

var _ docstore.Store = (*Store)(nil)

// New initializes the Firebase app and its Firestore client. When no
// credentials file is configured, Application Default Credentials are used;
// FIRESTORE_EMULATOR_HOST is honoured by the client itself.
func New(ctx context.Context, cfg config.FirestoreConfig) (*Store, error) {
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase project id is required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initialize firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get firestore client")
	}

	return &Store{client: client}, nil
}

// Close releases the underlying gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

type snapshot struct {
	*firestore.DocumentSnapshot
}

func (s snapshot) ID() string { return s.Ref.ID }

// doc resolves ref, refusing ids that would make the path point at a
// document outside ref's collection.
func (s *Store) doc(ref docstore.DocRef) (*firestore.DocumentRef, error) {
	if !ref.Valid() {
		return nil, errors.Wrapf(docstore.ErrInvalidID, "document path %q", ref.Path())
	}
	d := s.client.Doc(ref.Path())
	if d == nil {
		return nil, errors.Wrapf(docstore.ErrInvalidID, "document path %q", ref.Path())
	}
	return d, nil
}

func (s *Store) Get(ctx context.Context, ref docstore.DocRef) (docstore.Snapshot, error) {
	d, err := s.doc(ref)
	if err != nil {
		return nil, err
	}
	snap, err := d.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, docstore.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get %s", ref.Path())
	}
	return snapshot{snap}, nil
}

func (s *Store) GetAll(ctx context.Context, refs []docstore.DocRef) ([]docstore.Snapshot, error) {
	if len(refs) == 0 {
		return []docstore.Snapshot{}, nil
	}
	docs := make([]*firestore.DocumentRef, 0, len(refs))
	for _, ref := range refs {
		d, err := s.doc(ref)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}

	snaps, err := s.client.GetAll(ctx, docs)
	if err != nil {
		return nil, errors.Wrap(err, "get all")
	}

	out := make([]docstore.Snapshot, 0, len(snaps))
	for _, snap := range snaps {
		if snap.Exists() {
			out = append(out, snapshot{snap})
		}
	}
	return out, nil
}

func (s *Store) List(ctx context.Context, coll docstore.CollectionRef) ([]docstore.Snapshot, error) {
	if !coll.Valid() {
		return nil, errors.Wrapf(docstore.ErrInvalidID, "collection path %q", coll.Path())
	}
	c := s.client.Collection(coll.Path())
	if c == nil {
		return nil, errors.Wrapf(docstore.ErrInvalidID, "collection path %q", coll.Path())
	}

	iter := c.Documents(ctx)
	defer iter.Stop()

	out := make([]docstore.Snapshot, 0)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "list %s", coll.Path())
		}
		out = append(out, snapshot{snap})
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, ref docstore.DocRef, data any) error {
	d, err := s.doc(ref)
	if err != nil {
		return err
	}
	if _, err := d.Create(ctx, data); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return docstore.ErrAlreadyExists
		}
		return errors.Wrapf(err, "create %s", ref.Path())
	}
	return nil
}

func (s *Store) Update(ctx context.Context, ref docstore.DocRef, fields map[string]any) error {
	d, err := s.doc(ref)
	if err != nil {
		return err
	}
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if _, err := d.Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return docstore.ErrNotFound
		}
		return errors.Wrapf(err, "update %s", ref.Path())
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, ref docstore.DocRef) error {
	d, err := s.doc(ref)
	if err != nil {
		return err
	}
	if _, err := d.Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete %s", ref.Path())
	}
	return nil
}

// Ping reads a sentinel document; a missing document still proves the
// backend answered.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Doc(healthDoc).Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errors.Wrap(err, "firestore ping")
	}
	return nil
}
