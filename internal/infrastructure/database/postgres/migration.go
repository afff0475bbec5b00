// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/schedule"
	"github.com/your-org/storefront-backend/internal/domain/store"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		// Merchant accounts
		&user.User{},

		// Store profile and schedule
		&store.StoreProfile{},
		&schedule.StoreSchedule{},
		&schedule.DailySchedule{},

		// Catalog
		&catalog.Group{},
		&catalog.Product{},
		&catalog.Option{},
		&catalog.SubProduct{},

		// Orders
		&order.Order{},
		&order.OrderItem{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_owner_group ON products (owner_id, group_id)",
		"CREATE INDEX IF NOT EXISTS idx_products_order_index ON products (owner_id, order_index)",
		"CREATE INDEX IF NOT EXISTS idx_groups_order_index ON groups (owner_id, order_index)",
		"CREATE INDEX IF NOT EXISTS idx_orders_owner_status ON orders (owner_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_owner_created ON orders (owner_id, created_at DESC)",
	}

	for _, idx := range indexes {
		if err := m.db.Exec(idx).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
