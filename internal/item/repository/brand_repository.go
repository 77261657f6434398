package repository

import (
	"context"
	"database/sql"
	"fmt"

	"palantir/internal/domain"
)

type MySQLBrandRepository struct {
	db *sql.DB
}

func NewMySQLBrandRepository(db *sql.DB) *MySQLBrandRepository {
	return &MySQLBrandRepository{db: db}
}

func (r *MySQLBrandRepository) Exists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM Brands WHERE name = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking brand existence: %w", err)
	}

	return true, nil
}

func (r *MySQLBrandRepository) Insert(ctx context.Context, brand domain.Brand) error {
	query := `INSERT INTO Brands (name, manufacturerId) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, brand.Name, brand.ManufacturerID)
	if err != nil {
		return fmt.Errorf("inserting brand: %w", err)
	}

	return nil
}
