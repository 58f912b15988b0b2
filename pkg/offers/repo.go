package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrOfferNotFound  = errors.New("offer not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrStatusConflict = errors.New("offer is not in a state that allows this transition")
)

// OfferFilters narrows ListOffers. Nil fields are ignored.
type OfferFilters struct {
	ItemID *string
	Status *string
}

type OfferRepository interface {
	GetItemSnapshot(ctx context.Context, itemID string) (ItemSnapshot, error)
	InsertOffer(ctx context.Context, input Offer) (Offer, error)
	GetOfferByID(ctx context.Context, id string) (Offer, error)
	ListOffers(ctx context.Context, filters OfferFilters, limit, offset int) ([]Offer, int64, error)
	HasAcceptedOffer(ctx context.Context, itemID string) (bool, error)
	MarkAccepted(ctx context.Context, id, invoiceID, invoiceURL string) error
	Decline(ctx context.Context, id string) error
	SetCounter(ctx context.Context, id string, amount float64) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, notes string) error
}

type postgresOfferRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresOfferRepository(pool *pgxpool.Pool) OfferRepository {
	return &postgresOfferRepository{pool: pool}
}

const offerColumns = `id, item_id, name, email, phone, offer_amount, message,
       shipping_address1, shipping_address2, shipping_city, shipping_state, shipping_zip, shipping_country,
       status, counter_amount, admin_notes, stripe_invoice_id, stripe_invoice_url, created_at, responded_at`

func scanOffer(row pgx.Row) (Offer, error) {
	var o Offer
	err := row.Scan(&o.ID, &o.ItemID, &o.Name, &o.Email, &o.Phone, &o.OfferAmount, &o.Message,
		&o.ShippingAddress1, &o.ShippingAddress2, &o.ShippingCity, &o.ShippingState, &o.ShippingZip, &o.ShippingCountry,
		&o.Status, &o.CounterAmount, &o.AdminNotes, &o.StripeInvoiceID, &o.StripeInvoiceURL, &o.CreatedAt, &o.RespondedAt)
	return o, err
}

func (r *postgresOfferRepository) GetItemSnapshot(ctx context.Context, itemID string) (ItemSnapshot, error) {
	query := `SELECT id, title, reserve_price, offer_tier, is_sold, is_active FROM items WHERE id = $1`

	var snap ItemSnapshot
	err := r.pool.QueryRow(ctx, query, itemID).Scan(&snap.ID, &snap.Title, &snap.ReservePrice, &snap.OfferTier, &snap.IsSold, &snap.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ItemSnapshot{}, ErrItemNotFound
		}
		return ItemSnapshot{}, err
	}
	return snap, nil
}

func (r *postgresOfferRepository) InsertOffer(ctx context.Context, input Offer) (Offer, error) {
	query := `INSERT INTO offers (id, item_id, name, email, phone, offer_amount, message,
                  shipping_address1, shipping_address2, shipping_city, shipping_state, shipping_zip, shipping_country,
                  status, stripe_invoice_id, stripe_invoice_url, created_at, responded_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), $17)
              RETURNING ` + offerColumns

	row := r.pool.QueryRow(ctx, query,
		input.ID, input.ItemID, input.Name, input.Email, input.Phone, input.OfferAmount, input.Message,
		input.ShippingAddress1, input.ShippingAddress2, input.ShippingCity, input.ShippingState, input.ShippingZip, input.ShippingCountry,
		input.Status, input.StripeInvoiceID, input.StripeInvoiceURL, input.RespondedAt)
	return scanOffer(row)
}

func (r *postgresOfferRepository) GetOfferByID(ctx context.Context, id string) (Offer, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+offerColumns+` FROM offers WHERE id = $1`, id)

	offer, err := scanOffer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Offer{}, ErrOfferNotFound
		}
		return Offer{}, err
	}
	return offer, nil
}

func (r *postgresOfferRepository) ListOffers(ctx context.Context, filters OfferFilters, limit, offset int) ([]Offer, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.ItemID != nil {
		conditions = append(conditions, fmt.Sprintf("o.item_id = $%d", argPos))
		args = append(args, *filters.ItemID)
		argPos++
	}
	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT o.id, o.item_id, i.title, o.name, o.email, o.phone, o.offer_amount, o.message,
	                 o.shipping_address1, o.shipping_address2, o.shipping_city, o.shipping_state, o.shipping_zip, o.shipping_country,
	                 o.status, o.counter_amount, o.admin_notes, o.stripe_invoice_id, o.stripe_invoice_url, o.created_at, o.responded_at
	          FROM offers o LEFT JOIN items i ON i.id = o.item_id` + where +
		fmt.Sprintf(" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Offer, 0)
	for rows.Next() {
		var o Offer
		err := rows.Scan(&o.ID, &o.ItemID, &o.ItemTitle, &o.Name, &o.Email, &o.Phone, &o.OfferAmount, &o.Message,
			&o.ShippingAddress1, &o.ShippingAddress2, &o.ShippingCity, &o.ShippingState, &o.ShippingZip, &o.ShippingCountry,
			&o.Status, &o.CounterAmount, &o.AdminNotes, &o.StripeInvoiceID, &o.StripeInvoiceURL, &o.CreatedAt, &o.RespondedAt)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM offers o` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresOfferRepository) HasAcceptedOffer(ctx context.Context, itemID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM offers WHERE item_id = $1 AND status = 'accepted')`, itemID).Scan(&exists)
	return exists, err
}

// MarkAccepted flips an offer to accepted in one statement. The conditions
// refuse the transition when the offer already left pending/countered, when
// the item has been sold, or when another offer on the item is already
// accepted. Zero rows affected is disambiguated with a follow-up lookup.
func (r *postgresOfferRepository) MarkAccepted(ctx context.Context, id, invoiceID, invoiceURL string) error {
	query := `UPDATE offers SET status = 'accepted', stripe_invoice_id = $2, stripe_invoice_url = $3, responded_at = NOW()
              WHERE id = $1
                AND status IN ('pending', 'countered')
                AND NOT EXISTS (SELECT 1 FROM items i WHERE i.id = offers.item_id AND i.is_sold)
                AND NOT EXISTS (SELECT 1 FROM offers o2 WHERE o2.item_id = offers.item_id AND o2.status = 'accepted' AND o2.id <> offers.id)`

	cmd, err := r.pool.Exec(ctx, query, id, invoiceID, invoiceURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, id)
	}
	return nil
}

func (r *postgresOfferRepository) Decline(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE offers SET status = 'declined', responded_at = NOW() WHERE id = $1 AND status IN ('pending', 'countered')`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, id)
	}
	return nil
}

func (r *postgresOfferRepository) SetCounter(ctx context.Context, id string, amount float64) error {
	cmd, err := r.pool.Exec(ctx,
		`UPDATE offers SET status = 'countered', counter_amount = $2, responded_at = NOW() WHERE id = $1 AND status IN ('pending', 'countered')`,
		id, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return r.conflictOrMissing(ctx, id)
	}
	return nil
}

// UpdateStatus is the staff override: any status in the vocabulary is
// reachable. responded_at is stamped the first time the offer leaves pending.
func (r *postgresOfferRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE offers
              SET status = $1,
                  responded_at = CASE WHEN responded_at IS NULL AND $1 <> 'pending' THEN NOW() ELSE responded_at END
              WHERE id = $2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *postgresOfferRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE offers SET admin_notes = $1 WHERE id = $2`, notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *postgresOfferRepository) conflictOrMissing(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrOfferNotFound
	}
	return ErrStatusConflict
}
