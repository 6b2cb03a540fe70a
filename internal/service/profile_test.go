package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fitmap/internal/apperr"
	"fitmap/internal/docstore"
	"fitmap/internal/model"
	"fitmap/internal/storage"
	storeMocks "fitmap/internal/storage/mocks"
)

func TestProfileService_CreateWithChildren(t *testing.T) {
	ctx := context.Background()
	svc := NewGymService(docstore.NewMemory(), nil, zap.NewNop())

	created, err := svc.Create(ctx, &model.Gym{
		Biography: "open 24h",
		Contacts:  []*model.Contact{{Name: "Reception", IsMainContact: true}},
		Addresses: []*model.Address{{City: "Recife"}, {City: "Olinda"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Len(t, created.Contacts, 1)
	assert.Len(t, created.Addresses, 2)

	found, err := svc.Find(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "open 24h", found.Biography)
	require.Len(t, found.Contacts, 1)
	assert.Equal(t, "Reception", found.Contacts[0].Name)
	assert.Len(t, found.Addresses, 2)

	listed, err := svc.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Contacts)
}

func TestProfileService_AddSportsAppends(t *testing.T) {
	ctx := context.Background()
	svc := NewPersonalTrainerService(docstore.NewMemory(), nil, zap.NewNop())
	pt, err := svc.Create(ctx, &model.PersonalTrainer{Name: "Ana"})
	require.NoError(t, err)

	_, err = svc.AddSports(ctx, pt.ID, []string{"Yoga"})
	require.NoError(t, err)
	updated, err := svc.AddSports(ctx, pt.ID, []string{"Crossfit"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Yoga", "Crossfit"}, updated.Sports)
	assert.Equal(t, "Ana", updated.Name)
	assert.False(t, updated.UpdatedAt.Before(pt.UpdatedAt))

	_, err = svc.AddSports(ctx, "missing", []string{"Yoga"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestProfileService_AddGalleryPictures(t *testing.T) {
	ctx := context.Background()
	svc := NewGymService(docstore.NewMemory(), nil, zap.NewNop())
	gym, err := svc.Create(ctx, &model.Gym{GalleryPicturesURLs: []string{"https://cdn/a.png"}})
	require.NoError(t, err)

	updated, err := svc.AddGalleryPictures(ctx, gym.ID, []string{"https://cdn/b.png"})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, updated.GalleryPicturesURLs)
}

func TestProfileService_AddChildrenRequiresParent(t *testing.T) {
	ctx := context.Background()
	svc := NewGymService(docstore.NewMemory(), nil, zap.NewNop())

	created, err := svc.AddContacts(ctx, "ghost", []*model.Contact{{Name: "A"}, {Name: "B"}})
	assert.Empty(t, created)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	gym, err := svc.Create(ctx, &model.Gym{})
	require.NoError(t, err)
	addresses, err := svc.AddAddresses(ctx, gym.ID, []*model.Address{{City: "Recife"}})
	require.NoError(t, err)
	require.Len(t, addresses, 1)

	stored, err := svc.Addresses().FindAll(ctx, gym.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestProfileService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemory()
	svc := NewGymService(store, nil, zap.NewNop())
	gym, err := svc.Create(ctx, &model.Gym{
		Contacts:  []*model.Contact{{Name: "Owner"}},
		Addresses: []*model.Address{{City: "Recife"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, gym.ID))

	for _, sub := range []string{SubCollectionContacts, SubCollectionAddresses} {
		left, err := store.List(ctx, docstore.Collection(CollectionGyms).Doc(gym.ID).Collection(sub))
		require.NoError(t, err)
		assert.Empty(t, left, sub)
	}
}

func TestProfileService_UploadGalleryPicture(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		gymID      string
		setupMocks func(mObjects *storeMocks.MockStorage, r io.Reader)
		wantKind   apperr.Kind
		wantURL    string
		wantLog    bool
	}{
		{
			name: "happy path",
			setupMocks: func(mObjects *storeMocks.MockStorage, r io.Reader) {
				mObjects.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "gyms/") && strings.HasSuffix(key, ".png")
				}), r, storage.PutObjectOptions{
					Size:        5,
					ContentType: "image/png",
					Metadata:    map[string]string{"original-filename": "front.png"},
				}).Return(storage.ObjectInfo{Key: "k", Size: 5}, nil)
				mObjects.On("URL", ctx, mock.Anything).Return("https://cdn/front.png", nil)
			},
			wantURL: "https://cdn/front.png",
		},
		{
			name:  "unknown gym never uploads",
			gymID: "missing",
			setupMocks: func(mObjects *storeMocks.MockStorage, r io.Reader) {
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name: "storage failure",
			setupMocks: func(mObjects *storeMocks.MockStorage, r io.Reader) {
				mObjects.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("bucket gone"))
			},
			wantKind: apperr.KindInternal,
		},
		{
			name: "url failure rolls back upload",
			setupMocks: func(mObjects *storeMocks.MockStorage, r io.Reader) {
				mObjects.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mObjects.On("URL", ctx, mock.Anything).Return("", errors.New("presign failed"))
				mObjects.On("Delete", ctx, mock.Anything).Return(nil)
			},
			wantKind: apperr.KindInternal,
		},
		{
			name: "failed rollback is logged",
			setupMocks: func(mObjects *storeMocks.MockStorage, r io.Reader) {
				mObjects.On("Put", ctx, mock.Anything, r, mock.Anything).Return(storage.ObjectInfo{}, nil)
				mObjects.On("URL", ctx, mock.Anything).Return("", errors.New("presign failed"))
				mObjects.On("Delete", ctx, mock.Anything).Return(errors.New("delete failed"))
			},
			wantKind: apperr.KindInternal,
			wantLog:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			mObjects := new(storeMocks.MockStorage)
			svc := NewGymService(docstore.NewMemory(), mObjects, zap.New(core))
			gym, err := svc.Create(ctx, &model.Gym{})
			require.NoError(t, err)

			id := gym.ID
			if tt.gymID != "" {
				id = tt.gymID
			}
			r := strings.NewReader("image")
			tt.setupMocks(mObjects, r)

			updated, err := svc.UploadGalleryPicture(ctx, id, r, "front.png", "image/png", 5)

			if tt.wantURL != "" {
				require.NoError(t, err)
				assert.Equal(t, []string{tt.wantURL}, updated.GalleryPicturesURLs)
			} else {
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			}
			assert.Equal(t, tt.wantLog, logs.FilterMessage("gallery rollback failed").Len() == 1)
			mObjects.AssertExpectations(t)
		})
	}
}

func TestProfileService_UploadWithoutStorage(t *testing.T) {
	svc := NewGymService(docstore.NewMemory(), nil, zap.NewNop())

	_, err := svc.UploadGalleryPicture(context.Background(), "g1", strings.NewReader("x"), "a.png", "image/png", 1)

	assert.True(t, apperr.Is(err, apperr.KindInternal))
}
