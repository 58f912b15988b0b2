package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrItemNotFound  = errors.New("item not found")
	ErrImageNotFound = errors.New("item image not found")
	ErrAlreadySold   = errors.New("item already marked as sold")
)

type ItemRepository interface {
	CreateItem(ctx context.Context, input Item) (Item, error)
	UpdateItem(ctx context.Context, input Item) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	GetItemByID(ctx context.Context, id string) (Item, error)
	ListItems(ctx context.Context, filters ItemFilters, limit, offset int) ([]Item, int64, error)
	GetItemStatus(ctx context.Context, id string) (bool, bool, error)
	MarkItemSold(ctx context.Context, id string) error
	UnlistItem(ctx context.Context, id string) error
	AddImage(ctx context.Context, input ItemImage) (ItemImage, error)
	ListImages(ctx context.Context, itemID string) ([]ItemImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

type ItemFilters struct {
	CategoryID *string
	IsSold     *bool
	IsFeatured *bool
	Condition  *string
}

type postgresItemRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresItemRepository(pool *pgxpool.Pool) ItemRepository {
	return &postgresItemRepository{pool: pool}
}

const itemColumns = `id, title, description, category_id, price, reserve_price, price_on_request, condition, provenance, offer_tier, is_featured, is_sold, is_active, display_order, created_at, updated_at`

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Title, &it.Description, &it.CategoryID, &it.Price, &it.ReservePrice, &it.PriceOnRequest,
		&it.Condition, &it.Provenance, &it.OfferTier, &it.IsFeatured, &it.IsSold, &it.IsActive, &it.DisplayOrder,
		&it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *postgresItemRepository) CreateItem(ctx context.Context, input Item) (Item, error) {
	query := `INSERT INTO items (id, title, description, category_id, price, reserve_price, price_on_request, condition, provenance, offer_tier, is_featured, is_sold, is_active, display_order, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
              RETURNING ` + itemColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.Title, input.Description, input.CategoryID, input.Price,
		input.ReservePrice, input.PriceOnRequest, input.Condition, input.Provenance, input.OfferTier,
		input.IsFeatured, input.IsSold, input.IsActive, input.DisplayOrder)

	return scanItem(row)
}

func (r *postgresItemRepository) UpdateItem(ctx context.Context, input Item) (Item, error) {
	query := `UPDATE items
              SET title = $1, description = $2, category_id = $3, price = $4, reserve_price = $5, price_on_request = $6,
                  condition = $7, provenance = $8, offer_tier = $9, is_featured = $10, is_sold = $11, is_active = $12,
                  display_order = $13, updated_at = NOW()
              WHERE id = $14
              RETURNING ` + itemColumns

	row := r.pool.QueryRow(ctx, query, input.Title, input.Description, input.CategoryID, input.Price, input.ReservePrice,
		input.PriceOnRequest, input.Condition, input.Provenance, input.OfferTier, input.IsFeatured, input.IsSold,
		input.IsActive, input.DisplayOrder, input.ID)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *postgresItemRepository) DeleteItem(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *postgresItemRepository) GetItemByID(ctx context.Context, id string) (Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrItemNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (r *postgresItemRepository) ListItems(ctx context.Context, filters ItemFilters, limit, offset int) ([]Item, int64, error) {
	whereClauses := []string{"is_active = true"}
	args := []interface{}{}
	argPos := 1

	if filters.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("category_id = $%d", argPos))
		args = append(args, *filters.CategoryID)
		argPos++
	}

	if filters.IsSold != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_sold = $%d", argPos))
		args = append(args, *filters.IsSold)
		argPos++
	}

	if filters.IsFeatured != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_featured = $%d", argPos))
		args = append(args, *filters.IsFeatured)
		argPos++
	}

	if filters.Condition != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("condition = $%d", argPos))
		args = append(args, *filters.Condition)
		argPos++
	}

	whereSQL := "WHERE " + strings.Join(whereClauses, " AND ")

	query := fmt.Sprintf(`SELECT `+itemColumns+`
              FROM items
              %s
              ORDER BY display_order, created_at DESC
              LIMIT $%d OFFSET $%d`, whereSQL, argPos, argPos+1)

	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	itemsList := make([]Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		itemsList = append(itemsList, it)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM items %s", whereSQL)
	countArgs := args[:len(args)-2]

	var total int64
	countRow := r.pool.QueryRow(ctx, countQuery, countArgs...)
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, err
	}

	return itemsList, total, nil
}

func (r *postgresItemRepository) GetItemStatus(ctx context.Context, id string) (bool, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT is_sold, is_active FROM items WHERE id = $1`, id)

	var isSold, isActive bool
	if err := row.Scan(&isSold, &isActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, ErrItemNotFound
		}
		return false, false, err
	}

	return isSold, isActive, nil
}

func (r *postgresItemRepository) MarkItemSold(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE items SET is_sold = true, updated_at = NOW() WHERE id = $1 AND is_sold = false`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *postgresItemRepository) UnlistItem(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE items SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *postgresItemRepository) AddImage(ctx context.Context, input ItemImage) (ItemImage, error) {
	query := `INSERT INTO item_images (id, item_id, image_url, alt_text, is_primary, display_order, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, NOW())
              RETURNING id, item_id, image_url, alt_text, is_primary, display_order, created_at`

	row := r.pool.QueryRow(ctx, query, input.ID, input.ItemID, input.ImageURL, input.AltText, input.IsPrimary, input.DisplayOrder)

	var img ItemImage
	if err := row.Scan(&img.ID, &img.ItemID, &img.ImageURL, &img.AltText, &img.IsPrimary, &img.DisplayOrder, &img.CreatedAt); err != nil {
		return ItemImage{}, err
	}
	return img, nil
}

func (r *postgresItemRepository) ListImages(ctx context.Context, itemID string) ([]ItemImage, error) {
	query := `SELECT id, item_id, image_url, alt_text, is_primary, display_order, created_at
              FROM item_images
              WHERE item_id = $1
              ORDER BY is_primary DESC, display_order`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]ItemImage, 0)
	for rows.Next() {
		var img ItemImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.ImageURL, &img.AltText, &img.IsPrimary, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *postgresItemRepository) DeleteImage(ctx context.Context, imageID string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM item_images WHERE id = $1", imageID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
