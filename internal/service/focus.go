package service

import (
	"context"

	"fitmap/internal/crud"
	"fitmap/internal/docstore"
	"fitmap/internal/model"
)

// FocusService manages the shared catalogue of training focuses.
type FocusService interface {
	// CreateNames creates one focus per name, in order.
	CreateNames(ctx context.Context, names []string) ([]*model.Focus, error)
	Find(ctx context.Context, id string) (*model.Focus, error)
	FindAll(ctx context.Context, ids ...string) ([]*model.Focus, error)
	UpdateAll(ctx context.Context, focuses []*model.Focus) ([]*model.Focus, error)
	DeleteAll(ctx context.Context, ids []string) error
}

type focusService struct {
	docs *crud.DocumentService[model.Focus, *model.Focus]
}

func NewFocusService(store docstore.Store, opts ...crud.Option) FocusService {
	return &focusService{docs: crud.NewDocumentService[model.Focus](store, CollectionFocus, opts...)}
}

func (s *focusService) CreateNames(ctx context.Context, names []string) ([]*model.Focus, error) {
	focuses := make([]*model.Focus, 0, len(names))
	for _, name := range names {
		focuses = append(focuses, &model.Focus{Name: name})
	}
	return s.docs.CreateAll(ctx, focuses)
}

func (s *focusService) Find(ctx context.Context, id string) (*model.Focus, error) {
	return s.docs.Find(ctx, id)
}

func (s *focusService) FindAll(ctx context.Context, ids ...string) ([]*model.Focus, error) {
	return s.docs.FindAll(ctx, ids...)
}

func (s *focusService) UpdateAll(ctx context.Context, focuses []*model.Focus) ([]*model.Focus, error) {
	return s.docs.UpdateAll(ctx, focuses)
}

func (s *focusService) DeleteAll(ctx context.Context, ids []string) error {
	return s.docs.DeleteAll(ctx, ids)
}
