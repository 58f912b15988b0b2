package items

import (
	"context"

	"github.com/google/uuid"

	"dgw/pkg/tier"
)

type ItemService interface {
	CreateItem(ctx context.Context, input Item) (Item, error)
	UpdateItem(ctx context.Context, input Item) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	GetItemByID(ctx context.Context, id string) (Item, error)
	ListItems(ctx context.Context, filters ItemFilters, page, limit int) ([]Item, int64, error)
	MarkItemSold(ctx context.Context, id string) error
	UnlistItem(ctx context.Context, id string) error
	AddImage(ctx context.Context, input ItemImage) (ItemImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type itemService struct {
	repo ItemRepository
}

func NewItemService(repo ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) CreateItem(ctx context.Context, input Item) (Item, error) {
	input.ID = uuid.NewString()

	created, err := s.repo.CreateItem(ctx, input)
	if err != nil {
		return Item{}, err
	}
	created.EffectiveTier = tier.Resolve(created.OfferTier, created.ReservePrice)
	return created, nil
}

func (s *itemService) UpdateItem(ctx context.Context, input Item) (Item, error) {
	updated, err := s.repo.UpdateItem(ctx, input)
	if err != nil {
		return Item{}, err
	}
	updated.EffectiveTier = tier.Resolve(updated.OfferTier, updated.ReservePrice)
	return updated, nil
}

func (s *itemService) DeleteItem(ctx context.Context, id string) error {
	return s.repo.DeleteItem(ctx, id)
}

// GetItemByID returns the item with its images and computed effective tier.
func (s *itemService) GetItemByID(ctx context.Context, id string) (Item, error) {
	it, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return Item{}, err
	}

	images, err := s.repo.ListImages(ctx, id)
	if err != nil {
		return Item{}, err
	}

	it.Images = images
	it.EffectiveTier = tier.Resolve(it.OfferTier, it.ReservePrice)
	return it, nil
}

func (s *itemService) ListItems(ctx context.Context, filters ItemFilters, page, limit int) ([]Item, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	list, total, err := s.repo.ListItems(ctx, filters, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for i := range list {
		list[i].EffectiveTier = tier.Resolve(list[i].OfferTier, list[i].ReservePrice)
	}
	return list, total, nil
}

func (s *itemService) MarkItemSold(ctx context.Context, id string) error {
	isSold, isActive, err := s.repo.GetItemStatus(ctx, id)
	if err != nil {
		return err
	}

	if !isActive {
		return ErrItemNotFound
	}

	if isSold {
		return ErrAlreadySold
	}

	return s.repo.MarkItemSold(ctx, id)
}

func (s *itemService) UnlistItem(ctx context.Context, id string) error {
	return s.repo.UnlistItem(ctx, id)
}

func (s *itemService) AddImage(ctx context.Context, input ItemImage) (ItemImage, error) {
	if _, err := s.repo.GetItemByID(ctx, input.ItemID); err != nil {
		return ItemImage{}, err
	}
	input.ID = uuid.NewString()
	return s.repo.AddImage(ctx, input)
}

func (s *itemService) DeleteImage(ctx context.Context, imageID string) error {
	return s.repo.DeleteImage(ctx, imageID)
}
