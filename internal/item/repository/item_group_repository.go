package repository

import (
	"context"
	"database/sql"
	"fmt"

	"palantir/internal/domain"
)

type MySQLItemGroupRepository struct {
	db *sql.DB
}

func NewMySQLItemGroupRepository(db *sql.DB) *MySQLItemGroupRepository {
	return &MySQLItemGroupRepository{db: db}
}

func (r *MySQLItemGroupRepository) Exists(ctx context.Context, name string) (bool, error) {
	query := `SELECT 1 FROM ItemGroups WHERE name = ?`

	var one int
	err := r.db.QueryRowContext(ctx, query, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking item group existence: %w", err)
	}

	return true, nil
}

func (r *MySQLItemGroupRepository) Insert(ctx context.Context, group domain.ItemGroup) error {
	query := `INSERT INTO ItemGroups (name, parentGroup) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, group.Name, group.ParentGroup)
	if err != nil {
		return fmt.Errorf("inserting item group: %w", err)
	}

	return nil
}
