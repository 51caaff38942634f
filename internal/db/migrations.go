package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/renttax/internal/model"
)

// Parents precede children. Foreign keys come from the association tags on
// the child models and restrict deletes, so cascades stay children first.
var migrationModels = []interface{}{
	&model.Property{},
	&model.Contract{},
	&model.Payment{},
	&model.Expense{},
	&model.Setting{},
}

var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_contracts_is_active ON contracts (is_active);`,
	`CREATE INDEX IF NOT EXISTS idx_payments_date_created ON payments (date DESC, created_at DESC);`,
}

func runMigrations(db *gorm.DB) error {
	for i, m := range migrationModels {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", len(migrationModels)+i+1, err)
		}
	}
	return nil
}

// Migrate applies the schema to an already open database.
func Migrate(db *gorm.DB) error {
	return runMigrations(db)
}
