package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) CreateCategory(ctx context.Context, input Category) (Category, error) {
	args := m.Called(ctx, input)
	cat, _ := args.Get(0).(Category)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) UpdateCategory(ctx context.Context, input Category) (Category, error) {
	args := m.Called(ctx, input)
	cat, _ := args.Get(0).(Category)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetCategoryByID(ctx context.Context, id string) (Category, error) {
	args := m.Called(ctx, id)
	cat, _ := args.Get(0).(Category)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	args := m.Called(ctx, slug)
	cat, _ := args.Get(0).(Category)
	return cat, args.Error(1)
}

func (m *mockCategoryRepository) ListCategories(ctx context.Context, includeInactive bool) ([]Category, error) {
	args := m.Called(ctx, includeInactive)
	list, _ := args.Get(0).([]Category)
	return list, args.Error(1)
}

func TestSlugify(t *testing.T) {
	require.Equal(t, "fine-watches", Slugify("Fine Watches"))
	require.Equal(t, "art-antiques", Slugify("  Art & Antiques "))
	require.Equal(t, "rare-coins", Slugify("Rare--Coins"))
}

func TestCategoryService_CreateCategory_GeneratesIDAndSlug(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(input Category) bool {
		_, err := uuid.Parse(input.ID)
		return err == nil && input.Slug == "fine-watches"
	})).Return(Category{Name: "Fine Watches", Slug: "fine-watches"}, nil)

	created, err := service.CreateCategory(context.Background(), Category{Name: "Fine Watches"})

	require.NoError(t, err)
	require.Equal(t, "fine-watches", created.Slug)
	repo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_ExplicitSlugKept(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(input Category) bool {
		return input.Slug == "watches"
	})).Return(Category{Slug: "watches"}, nil)

	_, err := service.CreateCategory(context.Background(), Category{Name: "Fine Watches", Slug: "watches"})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_SlugTaken(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("CreateCategory", mock.Anything, mock.Anything).
		Return(Category{}, &pgconn.PgError{Code: "23505"})

	_, err := service.CreateCategory(context.Background(), Category{Name: "Watches"})

	require.ErrorIs(t, err, ErrSlugTaken)
	repo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory_SlugTaken(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo)

	repo.On("UpdateCategory", mock.Anything, mock.Anything).
		Return(Category{}, &pgconn.PgError{Code: "23505"})

	_, err := service.UpdateCategory(context.Background(), Category{ID: "c-1", Name: "Watches"})

	require.ErrorIs(t, err, ErrSlugTaken)
	repo.AssertExpectations(t)
}

func TestCategoryService_ListCategories_Delegates(t *testing.T) {
	repo := new(mockCategoryRepository)
	service := NewCategoryService(repo)

	expected := []Category{{Name: "Watches"}}
	repo.On("ListCategories", mock.Anything, false).Return(expected, nil)

	got, err := service.ListCategories(context.Background(), false)

	require.NoError(t, err)
	require.Equal(t, expected, got)
	repo.AssertExpectations(t)
}
