package repository

import (
	"context"
	"database/sql"
	"fmt"

	"palantir/internal/domain"
	"palantir/internal/errors"
)

type MySQLSalesOrderRepository struct {
	db *sql.DB
}

func NewMySQLSalesOrderRepository(db *sql.DB) *MySQLSalesOrderRepository {
	return &MySQLSalesOrderRepository{db: db}
}

// FindByID loads the order together with all its lines.
func (r *MySQLSalesOrderRepository) FindByID(ctx context.Context, id uint) (*domain.SalesOrder, error) {
	query := `
		SELECT id, customer, status, currency, total, netTotal, totalTaxes, grandTotal,
		       createdAt, updatedAt
		FROM SalesOrders
		WHERE id = ?
	`

	var order domain.SalesOrder
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.Customer, &order.Status, &order.Currency,
		&order.Total, &order.NetTotal, &order.TotalTaxes, &order.GrandTotal,
		&order.CreatedAt, &order.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("sales order %d not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying sales order by id: %w", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return &order, nil
}

func (r *MySQLSalesOrderRepository) findItems(ctx context.Context, orderID uint) ([]domain.SalesOrderItem, error) {
	query := `
		SELECT id, orderId, itemCode, qty,
		       priceListRate, rate, amount, netRate, netAmount,
		       basePriceListRate, baseRate, baseAmount, baseNetRate, baseNetAmount,
		       marginType, marginRateOrAmount, discountPercentage, discountAmount,
		       conversionFactor, fromCatalog
		FROM SalesOrderItems
		WHERE orderId = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying sales order items: %w", err)
	}
	defer rows.Close()

	var items []domain.SalesOrderItem
	for rows.Next() {
		var item domain.SalesOrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ItemCode, &item.Qty,
			&item.PriceListRate, &item.Rate, &item.Amount, &item.NetRate, &item.NetAmount,
			&item.BasePriceListRate, &item.BaseRate, &item.BaseAmount, &item.BaseNetRate, &item.BaseNetAmount,
			&item.MarginType, &item.MarginRateOrAmount, &item.DiscountPercentage, &item.DiscountAmount,
			&item.ConversionFactor, &item.FromCatalog,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning sales order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sales order items: %w", err)
	}

	return items, nil
}

// UpdateItemPricing writes one line's full pricing group in a single
// statement: the five rate fields, their base-currency mirrors and the
// zeroed margin and discount columns. A repeated refresh with an unchanged
// price affects zero rows, so no rows-affected check here.
func (r *MySQLSalesOrderRepository) UpdateItemPricing(ctx context.Context, tx *sql.Tx, item domain.SalesOrderItem) error {
	query := `
		UPDATE SalesOrderItems
		SET priceListRate = ?, rate = ?, amount = ?, netRate = ?, netAmount = ?,
		    basePriceListRate = ?, baseRate = ?, baseAmount = ?, baseNetRate = ?, baseNetAmount = ?,
		    marginType = ?, marginRateOrAmount = ?, discountPercentage = ?, discountAmount = ?
		WHERE id = ?
	`

	_, err := tx.ExecContext(ctx, query,
		item.PriceListRate, item.Rate, item.Amount, item.NetRate, item.NetAmount,
		item.BasePriceListRate, item.BaseRate, item.BaseAmount, item.BaseNetRate, item.BaseNetAmount,
		item.MarginType, item.MarginRateOrAmount, item.DiscountPercentage, item.DiscountAmount,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating sales order item pricing: %w", err)
	}

	return nil
}

func (r *MySQLSalesOrderRepository) UpdateTotals(ctx context.Context, tx *sql.Tx, order domain.SalesOrder) error {
	query := `UPDATE SalesOrders SET total = ?, netTotal = ?, grandTotal = ? WHERE id = ?`

	_, err := tx.ExecContext(ctx, query, order.Total, order.NetTotal, order.GrandTotal, order.ID)
	if err != nil {
		return fmt.Errorf("updating sales order totals: %w", err)
	}

	return nil
}
