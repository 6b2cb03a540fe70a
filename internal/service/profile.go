package service

import (
	"context"
	"errors"
	"io"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fitmap/internal/apperr"
	"fitmap/internal/crud"
	"fitmap/internal/docstore"
	"fitmap/internal/model"
	"fitmap/internal/storage"
)

// Collection names.
const (
	CollectionGyms             = "gyms"
	CollectionPersonalTrainers = "personal-trainers"
	CollectionFocus            = "focus"
	SubCollectionContacts      = "contacts"
	SubCollectionAddresses     = "addresses"
)

// Profile is implemented by the public-facing entities that own contacts,
// addresses and the additive sports and gallery lists.
type Profile[T any] interface {
	crud.Ptr[T]
	AddSports(sports []string)
	AddGalleryPictures(urls []string)
	AddContacts(contacts []*model.Contact)
	AddAddresses(addresses []*model.Address)
	GetSports() []string
	GetGalleryPicturesURLs() []string
	DetachChildren() ([]*model.Contact, []*model.Address)
}

// ContactService and AddressService are the sub-collection services exposed
// for the contacts and addresses endpoints.
type (
	ContactService = crud.SubCollectionService[model.Contact, *model.Contact]
	AddressService = crud.SubCollectionService[model.Address, *model.Address]
)

// ProfileService defines the use cases shared by gyms and personal trainers.
type ProfileService[T any] interface {
	// Create stores the profile and writes its nested contacts and addresses
	// to their sub-collections. Children that fail are reported in the
	// returned error while the profile itself stays created.
	Create(ctx context.Context, v *T) (*T, error)

	// Find returns the profile together with its contacts and addresses.
	Find(ctx context.Context, id string) (*T, error)

	// FindAll returns the profile documents only, without children.
	FindAll(ctx context.Context, ids ...string) ([]*T, error)

	Update(ctx context.Context, v *T) (*T, error)

	// Delete removes the profile, its contacts and its addresses.
	Delete(ctx context.Context, id string) error

	AddSports(ctx context.Context, id string, sports []string) (*T, error)
	AddGalleryPictures(ctx context.Context, id string, urls []string) (*T, error)
	AddContacts(ctx context.Context, id string, contacts []*model.Contact) ([]*model.Contact, error)
	AddAddresses(ctx context.Context, id string, addresses []*model.Address) ([]*model.Address, error)

	// UploadGalleryPicture streams a picture to object storage and appends its
	// URL to the gallery. The object is removed again if the append fails.
	UploadGalleryPicture(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*T, error)

	Contacts() *ContactService
	Addresses() *AddressService
}

type (
	GymService             = ProfileService[model.Gym]
	PersonalTrainerService = ProfileService[model.PersonalTrainer]
)

type profileService[T any, P Profile[T]] struct {
	collection string
	docs       *crud.DocumentService[T, P]
	contacts   *ContactService
	addresses  *AddressService
	objects    storage.Storage
	log        *zap.Logger
}

// NewGymService wires the gym services. objects may be nil when gallery
// uploads are disabled.
func NewGymService(store docstore.Store, objects storage.Storage, log *zap.Logger, opts ...crud.Option) GymService {
	return newProfileService[model.Gym](CollectionGyms, store, objects, log, opts)
}

// NewPersonalTrainerService wires the personal trainer services. objects may
// be nil when gallery uploads are disabled.
func NewPersonalTrainerService(store docstore.Store, objects storage.Storage, log *zap.Logger, opts ...crud.Option) PersonalTrainerService {
	return newProfileService[model.PersonalTrainer](CollectionPersonalTrainers, store, objects, log, opts)
}

func newProfileService[T any, P Profile[T]](collection string, store docstore.Store, objects storage.Storage, log *zap.Logger, opts []crud.Option) *profileService[T, P] {
	docOpts := append([]crud.Option{crud.WithSubCollections(SubCollectionContacts, SubCollectionAddresses)}, opts...)
	return &profileService[T, P]{
		collection: collection,
		docs:       crud.NewDocumentService[T, P](store, collection, docOpts...),
		contacts:   crud.NewSubCollectionService[model.Contact](store, collection, SubCollectionContacts, opts...),
		addresses:  crud.NewSubCollectionService[model.Address](store, collection, SubCollectionAddresses, opts...),
		objects:    objects,
		log:        log.With(zap.String("collection", collection)),
	}
}

func (s *profileService[T, P]) Contacts() *ContactService  { return s.contacts }
func (s *profileService[T, P]) Addresses() *AddressService { return s.addresses }

func (s *profileService[T, P]) Create(ctx context.Context, v *T) (*T, error) {
	contacts, addresses := P(v).DetachChildren()

	created, err := s.docs.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	id := P(created).GetID()

	var errs []error
	if len(contacts) > 0 {
		stored, err := s.contacts.CreateAll(ctx, id, contacts)
		P(created).AddContacts(stored)
		errs = append(errs, err)
	}
	if len(addresses) > 0 {
		stored, err := s.addresses.CreateAll(ctx, id, addresses)
		P(created).AddAddresses(stored)
		errs = append(errs, err)
	}
	return created, errors.Join(errs...)
}

func (s *profileService[T, P]) Find(ctx context.Context, id string) (*T, error) {
	v, err := s.docs.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.FindAll(ctx, id)
	if err != nil {
		return nil, err
	}
	addresses, err := s.addresses.FindAll(ctx, id)
	if err != nil {
		return nil, err
	}
	P(v).AddContacts(contacts)
	P(v).AddAddresses(addresses)
	return v, nil
}

func (s *profileService[T, P]) FindAll(ctx context.Context, ids ...string) ([]*T, error) {
	return s.docs.FindAll(ctx, ids...)
}

func (s *profileService[T, P]) Update(ctx context.Context, v *T) (*T, error) {
	return s.docs.Update(ctx, v)
}

func (s *profileService[T, P]) Delete(ctx context.Context, id string) error {
	return s.docs.Delete(ctx, id)
}

func (s *profileService[T, P]) AddSports(ctx context.Context, id string, sports []string) (*T, error) {
	v, err := s.docs.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	P(v).AddSports(sports)
	return s.docs.UpdateFields(ctx, id, map[string]any{model.FieldSports: P(v).GetSports()})
}

func (s *profileService[T, P]) AddGalleryPictures(ctx context.Context, id string, urls []string) (*T, error) {
	v, err := s.docs.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	P(v).AddGalleryPictures(urls)
	return s.docs.UpdateFields(ctx, id, map[string]any{model.FieldGalleryPicturesURLs: P(v).GetGalleryPicturesURLs()})
}

func (s *profileService[T, P]) AddContacts(ctx context.Context, id string, contacts []*model.Contact) ([]*model.Contact, error) {
	return s.contacts.CreateAll(ctx, id, contacts)
}

func (s *profileService[T, P]) AddAddresses(ctx context.Context, id string, addresses []*model.Address) ([]*model.Address, error) {
	return s.addresses.CreateAll(ctx, id, addresses)
}

func (s *profileService[T, P]) UploadGalleryPicture(ctx context.Context, id string, r io.Reader, filename, contentType string, size int64) (*T, error) {
	if s.objects == nil {
		return nil, apperr.Internal(errors.New("object storage is not configured"), "gallery uploads are unavailable")
	}
	if r == nil {
		return nil, apperr.Validation("file is required", apperr.Violation{Field: "file", Message: "is required"})
	}
	if _, err := s.docs.Find(ctx, id); err != nil {
		return nil, err
	}

	key := path.Join(s.collection, id, "gallery", uuid.NewString()+filepath.Ext(filename))
	if _, err := s.objects.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": filename},
	}); err != nil {
		return nil, apperr.Internal(err, "failed to upload picture")
	}

	updated, err := s.appendUploaded(ctx, id, key)
	if err != nil {
		if delErr := s.objects.Delete(ctx, key); delErr != nil {
			s.log.Warn("gallery rollback failed", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return updated, nil
}

func (s *profileService[T, P]) appendUploaded(ctx context.Context, id, key string) (*T, error) {
	url, err := s.objects.URL(ctx, key)
	if err != nil {
		return nil, apperr.Internal(err, "failed to resolve picture url")
	}
	return s.AddGalleryPictures(ctx, id, []string{url})
}
