package inquiries

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

type InquiryRepository interface {
	CreateInquiry(ctx context.Context, input Inquiry) (Inquiry, error)
	GetInquiryByID(ctx context.Context, id string) (Inquiry, error)
	ListInquiries(ctx context.Context, status *string, limit, offset int) ([]Inquiry, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateNotes(ctx context.Context, id, notes string) error
}

type postgresInquiryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &postgresInquiryRepository{pool: pool}
}

const inquiryColumns = `id, item_id, item_title, name, email, phone, message, status, notes, created_at, updated_at`

func scanInquiry(row pgx.Row) (Inquiry, error) {
	var inq Inquiry
	err := row.Scan(&inq.ID, &inq.ItemID, &inq.ItemTitle, &inq.Name, &inq.Email, &inq.Phone, &inq.Message, &inq.Status, &inq.Notes, &inq.CreatedAt, &inq.UpdatedAt)
	return inq, err
}

func (r *postgresInquiryRepository) CreateInquiry(ctx context.Context, input Inquiry) (Inquiry, error) {
	query := `INSERT INTO inquiries (id, item_id, item_title, name, email, phone, message, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
              RETURNING ` + inquiryColumns

	row := r.pool.QueryRow(ctx, query, input.ID, input.ItemID, input.ItemTitle, input.Name, input.Email, input.Phone, input.Message, input.Status)
	return scanInquiry(row)
}

func (r *postgresInquiryRepository) GetInquiryByID(ctx context.Context, id string) (Inquiry, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)

	inq, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Inquiry{}, ErrInquiryNotFound
		}
		return Inquiry{}, err
	}
	return inq, nil
}

func (r *postgresInquiryRepository) ListInquiries(ctx context.Context, status *string, limit, offset int) ([]Inquiry, int64, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries`
	countQuery := `SELECT COUNT(*) FROM inquiries`
	args := []interface{}{}

	if status != nil {
		query += ` WHERE status = $1`
		countQuery += ` WHERE status = $1`
		args = append(args, *status)
	}

	query += ` ORDER BY created_at DESC`
	if status != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	rows, err := r.pool.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := make([]Inquiry, 0)
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *postgresInquiryRepository) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE inquiries SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInquiryNotFound
	}
	return nil
}

func (r *postgresInquiryRepository) UpdateNotes(ctx context.Context, id, notes string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE inquiries SET notes = $1, updated_at = NOW() WHERE id = $2`, notes, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInquiryNotFound
	}
	return nil
}
