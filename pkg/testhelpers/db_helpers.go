package testhelpers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

var uniqueCounter int64

func nextSuffix() int64 {
	return atomic.AddInt64(&uniqueCounter, 1)
}

// CreateTestCategory inserts a minimal active category and returns its ID.
func CreateTestCategory(t *testing.T, db *pgxpool.Pool) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.NewString()
	name := fmt.Sprintf("test-category-%d", suffix)
	slug := fmt.Sprintf("test-category-%d", suffix)

	_, err := db.Exec(ctx, "INSERT INTO categories (id, name, slug) VALUES ($1, $2, $3)", id, name, slug)
	require.NoError(t, err)
	return id
}

// CreateTestItem inserts an active, unsold item with the given reserve price
// and returns its ID. Pass nil for an item with no reserve.
func CreateTestItem(t *testing.T, db *pgxpool.Pool, reservePrice *float64) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.NewString()
	title := fmt.Sprintf("test-item-%d", suffix)

	_, err := db.Exec(ctx, "INSERT INTO items (id, title, reserve_price) VALUES ($1, $2, $3)", id, title, reservePrice)
	require.NoError(t, err)
	return id
}

// CreateTestItemWithTier inserts an item carrying an explicit offer tier.
func CreateTestItemWithTier(t *testing.T, db *pgxpool.Pool, reservePrice *float64, offerTier string) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.NewString()
	title := fmt.Sprintf("test-item-%d", suffix)

	_, err := db.Exec(ctx, "INSERT INTO items (id, title, reserve_price, offer_tier) VALUES ($1, $2, $3, $4)", id, title, reservePrice, offerTier)
	require.NoError(t, err)
	return id
}

// CreateTestOffer inserts a pending offer on the given item and returns its ID.
func CreateTestOffer(t *testing.T, db *pgxpool.Pool, itemID string, amount float64) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.NewString()
	name := fmt.Sprintf("test-buyer-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)

	_, err := db.Exec(ctx, "INSERT INTO offers (id, item_id, name, email, offer_amount) VALUES ($1, $2, $3, $4, $5)", id, itemID, name, email, amount)
	require.NoError(t, err)
	return id
}

// CreateTestInquiry inserts a new inquiry and returns its ID.
func CreateTestInquiry(t *testing.T, db *pgxpool.Pool) string {
	t.Helper()

	ctx := context.Background()
	suffix := nextSuffix()
	id := uuid.NewString()
	name := fmt.Sprintf("test-contact-%d", suffix)
	email := fmt.Sprintf("%s@example.com", name)

	_, err := db.Exec(ctx, "INSERT INTO inquiries (id, name, email) VALUES ($1, $2, $3)", id, name, email)
	require.NoError(t, err)
	return id
}
