package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pratoquente/pratoquente-backend/pkg/migrate"
)

func TestSalesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_sales_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no sales migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS sales",
		"total_amount_items numeric(12,2) NOT NULL DEFAULT 0",
		"CREATE TABLE IF NOT EXISTS product_sales",
		"CREATE TABLE IF NOT EXISTS payments",
		"FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE",
		"FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE SET NULL",
		"CHECK (quantity > 0)",
		"idx_sales_store_created",
		"DROP TABLE IF EXISTS sales",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir should validate: %v", err)
	}
}
