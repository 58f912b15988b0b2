package categories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepository interface {
	CreateCategory(ctx context.Context, input Category) (Category, error)
	UpdateCategory(ctx context.Context, input Category) (Category, error)
	DeleteCategory(ctx context.Context, id string) error
	GetCategoryByID(ctx context.Context, id string) (Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]Category, error)
}

type postgresCategoryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryRepository(pool *pgxpool.Pool) CategoryRepository {
	return &postgresCategoryRepository{pool: pool}
}

const categoryColumns = `id, name, slug, description, image_url, display_order, is_active, created_at, updated_at`

func scanCategory(row pgx.Row) (Category, error) {
	var cat Category
	err := row.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.ImageURL, &cat.DisplayOrder, &cat.IsActive, &cat.CreatedAt, &cat.UpdatedAt)
	return cat, err
}

func (r *postgresCategoryRepository) CreateCategory(ctx context.Context, input Category) (Category, error) {
	query := `INSERT INTO categories (id, name, slug, description, image_url, display_order, is_active, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
              RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.Name, input.Slug, input.Description, input.ImageURL, input.DisplayOrder, input.IsActive)
	return scanCategory(row)
}

func (r *postgresCategoryRepository) UpdateCategory(ctx context.Context, input Category) (Category, error) {
	query := `UPDATE categories
              SET name = $1, slug = $2, description = $3, image_url = $4, display_order = $5, is_active = $6, updated_at = NOW()
              WHERE id = $7
              RETURNING ` + categoryColumns

	row := r.pool.QueryRow(ctx, query, input.Name, input.Slug, input.Description, input.ImageURL, input.DisplayOrder, input.IsActive, input.ID)

	cat, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *postgresCategoryRepository) DeleteCategory(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *postgresCategoryRepository) GetCategoryByID(ctx context.Context, id string) (Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)

	cat, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *postgresCategoryRepository) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE slug = $1 AND is_active = true`, slug)

	cat, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, ErrCategoryNotFound
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *postgresCategoryRepository) ListCategories(ctx context.Context, includeInactive bool) ([]Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY display_order, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]Category, 0)
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
