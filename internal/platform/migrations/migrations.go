package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never migrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&orderProductRecord{},
		&orderIdempotencyRecord{},
	)
}

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ProductNumber string    `gorm:"column:product_number;type:varchar(32);uniqueIndex;not null"`
	Type          string    `gorm:"column:type;type:varchar(32);not null"`
	SellingStatus string    `gorm:"column:selling_status;type:varchar(32);index;not null"`
	Name          string    `gorm:"column:name;not null"`
	Price         int64     `gorm:"column:price;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID               int64          `gorm:"primaryKey;autoIncrement;column:id"`
	Status           string         `gorm:"column:status;type:varchar(32);index;not null"`
	TotalPrice       int64          `gorm:"column:total_price;not null"`
	RegisteredAt     time.Time      `gorm:"column:registered_at;index;not null"`
	RequestedNumbers pq.StringArray `gorm:"column:requested_numbers;type:text[]"`
	CreatedAt        time.Time      `gorm:"column:created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema: one row per ordered slot, repeats included.
type orderProductRecord struct {
	ID            int64  `gorm:"primaryKey;autoIncrement;column:id"`
	OrderID       int64  `gorm:"column:order_id;not null;uniqueIndex:idx_order_products_order_position"`
	Position      int    `gorm:"column:position;not null;uniqueIndex:idx_order_products_order_position"`
	ProductID     int64  `gorm:"column:product_id;index;not null"`
	ProductNumber string `gorm:"column:product_number;type:varchar(32);not null"`
	Name          string `gorm:"column:name;not null"`
	Price         int64  `gorm:"column:price;not null"`
}

func (orderProductRecord) TableName() string { return "order_products" }

// Idempotency schema mirrors the orders idempotency store.
type orderIdempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128;not null"`
	OrderID     int64     `gorm:"column:order_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (orderIdempotencyRecord) TableName() string { return "order_idempotency_keys" }
