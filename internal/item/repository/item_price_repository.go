package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"palantir/internal/domain"
	"palantir/internal/errors"
)

type MySQLItemPriceRepository struct {
	db *sql.DB
}

func NewMySQLItemPriceRepository(db *sql.DB) *MySQLItemPriceRepository {
	return &MySQLItemPriceRepository{db: db}
}

// PriceListExists checks the price-list catalog itself, not price rows.
// Import preconditions use it to fail fast on a misconfigured list name.
func (r *MySQLItemPriceRepository) PriceListExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM PriceLists WHERE name = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking price list existence: %w", err)
	}

	return true, nil
}

func (r *MySQLItemPriceRepository) FindByItemAndList(ctx context.Context, itemCode, priceList string) (*domain.ItemPrice, error) {
	query := `
		SELECT id, itemCode, priceList, rate, currency, createdAt, updatedAt
		FROM ItemPrices
		WHERE itemCode = ? AND priceList = ?
	`

	var price domain.ItemPrice
	err := r.db.QueryRowContext(ctx, query, itemCode, priceList).Scan(
		&price.ID, &price.ItemCode, &price.PriceList, &price.Rate,
		&price.Currency, &price.CreatedAt, &price.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(
			fmt.Sprintf("item price for %s in list %s not found", itemCode, priceList))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item price: %w", err)
	}

	return &price, nil
}

func (r *MySQLItemPriceRepository) Insert(ctx context.Context, price domain.ItemPrice) error {
	query := `INSERT INTO ItemPrices (itemCode, priceList, rate, currency) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		price.ItemCode, price.PriceList, price.Rate, price.Currency,
	)
	if err != nil {
		return fmt.Errorf("inserting item price: %w", err)
	}

	return nil
}

func (r *MySQLItemPriceRepository) UpdateRate(ctx context.Context, id uint, rate decimal.Decimal) error {
	query := `UPDATE ItemPrices SET rate = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, rate, id)
	if err != nil {
		return fmt.Errorf("updating item price rate: %w", err)
	}

	return nil
}
