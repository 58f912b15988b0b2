package categories

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
)

var ErrSlugTaken = errors.New("category slug already in use")

type CategoryService interface {
	CreateCategory(ctx context.Context, input Category) (Category, error)
	UpdateCategory(ctx context.Context, input Category) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategoryByID(ctx context.Context, id string) (Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]Category, error)
}

type categoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a display name into a URL slug ("Fine Watches" -> "fine-watches").
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = slugCleaner.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

func (s *categoryService) CreateCategory(ctx context.Context, input Category) (Category, error) {
	input.ID = uuid.NewString()
	if input.Slug == "" {
		input.Slug = Slugify(input.Name)
	}

	created, err := s.repo.CreateCategory(ctx, input)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return Category{}, ErrSlugTaken
		}
		return Category{}, err
	}
	return created, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, input Category) (Category, error) {
	if input.Slug == "" {
		input.Slug = Slugify(input.Name)
	}

	updated, err := s.repo.UpdateCategory(ctx, input)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == "23505" {
			return Category{}, ErrSlugTaken
		}
		return Category{}, err
	}
	return updated, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (Category, error) {
	return s.repo.GetCategoryByID(ctx, id)
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	return s.repo.GetCategoryBySlug(ctx, slug)
}

func (s *categoryService) ListCategories(ctx context.Context, includeInactive bool) ([]Category, error) {
	return s.repo.ListCategories(ctx, includeInactive)
}
