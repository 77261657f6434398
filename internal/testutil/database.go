package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB configura una base de datos de prueba
// Espera que exista una BD MySQL en localhost:3306 llamada 'palantir_test'
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/palantir_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Verify connection
	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB limpia la BD de prueba
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"SalesOrderItems", "SalesOrders", "ItemPrices", "Items", "Brands", "ItemGroups", "PriceLists"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables crea las tablas necesarias para los tests
func SetupTestTables(t *testing.T, db *sql.DB) {
	createBrandsTable := `
	CREATE TABLE IF NOT EXISTS Brands (
		name VARCHAR(140) NOT NULL PRIMARY KEY,
		manufacturerId VARCHAR(50) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createItemGroupsTable := `
	CREATE TABLE IF NOT EXISTS ItemGroups (
		name VARCHAR(140) NOT NULL PRIMARY KEY,
		parentGroup VARCHAR(140) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createPriceListsTable := `
	CREATE TABLE IF NOT EXISTS PriceLists (
		name VARCHAR(140) NOT NULL PRIMARY KEY,
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		enabled TINYINT(1) NOT NULL DEFAULT 1
	)`

	createItemsTable := `
	CREATE TABLE IF NOT EXISTS Items (
		itemCode VARCHAR(140) NOT NULL PRIMARY KEY,
		itemName VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		itemGroup VARCHAR(140) NOT NULL DEFAULT '',
		brand VARCHAR(140) NOT NULL DEFAULT '',
		manufacturerProductNumber VARCHAR(140) NOT NULL DEFAULT '',
		globalProductNumber VARCHAR(140) NOT NULL DEFAULT '',
		imageUrl VARCHAR(500) NOT NULL DEFAULT '',
		standardRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		fromCatalog TINYINT(1) NOT NULL DEFAULT 0,
		catalogProductNumber VARCHAR(140) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_item_group (itemGroup),
		INDEX idx_brand (brand)
	)`

	createItemPricesTable := `
	CREATE TABLE IF NOT EXISTS ItemPrices (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		itemCode VARCHAR(140) NOT NULL,
		priceList VARCHAR(140) NOT NULL,
		rate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uniq_item_list (itemCode, priceList),
		INDEX idx_price_list (priceList)
	)`

	createSalesOrdersTable := `
	CREATE TABLE IF NOT EXISTS SalesOrders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customer VARCHAR(140) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'DRAFT',
		currency VARCHAR(3) NOT NULL DEFAULT 'EUR',
		total DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		netTotal DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		totalTaxes DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		grandTotal DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createSalesOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS SalesOrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		itemCode VARCHAR(140) NOT NULL,
		qty DECIMAL(12,3) NOT NULL DEFAULT 1.000,
		priceListRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		rate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		amount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		netRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		netAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		basePriceListRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		baseRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		baseAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		baseNetRate DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		baseNetAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		marginType VARCHAR(30) NOT NULL DEFAULT '',
		marginRateOrAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		discountPercentage DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		discountAmount DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		conversionFactor DECIMAL(12,6) NOT NULL DEFAULT 0.000000,
		fromCatalog TINYINT(1),
		FOREIGN KEY (orderId) REFERENCES SalesOrders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_item (itemCode)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Brands", createBrandsTable},
		{"ItemGroups", createItemGroupsTable},
		{"PriceLists", createPriceListsTable},
		{"Items", createItemsTable},
		{"ItemPrices", createItemPricesTable},
		{"SalesOrders", createSalesOrdersTable},
		{"SalesOrderItems", createSalesOrderItemsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
