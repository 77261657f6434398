package repository

import (
	"context"
	"database/sql"
	"fmt"

	"palantir/internal/domain"
	"palantir/internal/errors"
)

type MySQLItemRepository struct {
	db *sql.DB
}

func NewMySQLItemRepository(db *sql.DB) *MySQLItemRepository {
	return &MySQLItemRepository{db: db}
}

func (r *MySQLItemRepository) Exists(ctx context.Context, code string) (bool, error) {
	query := `SELECT 1 FROM Items WHERE itemCode = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, code).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking item existence: %w", err)
	}

	return true, nil
}

func (r *MySQLItemRepository) FindByCode(ctx context.Context, code string) (*domain.Item, error) {
	query := `
		SELECT itemCode, itemName, description, itemGroup, brand,
		       manufacturerProductNumber, globalProductNumber, imageUrl,
		       standardRate, currency, fromCatalog, catalogProductNumber,
		       createdAt, updatedAt
		FROM Items
		WHERE itemCode = ?
	`

	var item domain.Item
	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&item.Code, &item.Name, &item.Description, &item.ItemGroup, &item.Brand,
		&item.ManufacturerProductNumber, &item.GlobalProductNumber, &item.ImageURL,
		&item.StandardRate, &item.Currency, &item.FromCatalog, &item.CatalogProductNumber,
		&item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("item %s not found", code))
	}
	if err != nil {
		return nil, fmt.Errorf("querying item by code: %w", err)
	}

	return &item, nil
}

func (r *MySQLItemRepository) Insert(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO Items (itemCode, itemName, description, itemGroup, brand,
		       manufacturerProductNumber, globalProductNumber, imageUrl,
		       standardRate, currency, fromCatalog, catalogProductNumber)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.Code, item.Name, item.Description, item.ItemGroup, item.Brand,
		item.ManufacturerProductNumber, item.GlobalProductNumber, item.ImageURL,
		item.StandardRate, item.Currency, item.FromCatalog, item.CatalogProductNumber,
	)
	if err != nil {
		return fmt.Errorf("inserting item: %w", err)
	}

	return nil
}

// Update rewrites the mirrored catalog fields. Rates are reconciled through
// ItemPrices, not here, and imageUrl is only set on create.
func (r *MySQLItemRepository) Update(ctx context.Context, item domain.Item) error {
	query := `
		UPDATE Items
		SET itemName = ?, description = ?, itemGroup = ?, brand = ?,
		    manufacturerProductNumber = ?, globalProductNumber = ?,
		    fromCatalog = ?, catalogProductNumber = ?
		WHERE itemCode = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, item.ItemGroup, item.Brand,
		item.ManufacturerProductNumber, item.GlobalProductNumber,
		item.FromCatalog, item.CatalogProductNumber,
		item.Code,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	return nil
}
