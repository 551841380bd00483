package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders and their ordered lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and applies platform migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID               int64                `gorm:"primaryKey;autoIncrement;column:id"`
	Status           string               `gorm:"column:status;type:varchar(32);index;not null"`
	TotalPrice       int64                `gorm:"column:total_price;not null"`
	RegisteredAt     time.Time            `gorm:"column:registered_at;index;not null"`
	RequestedNumbers pq.StringArray       `gorm:"column:requested_numbers;type:text[]"`
	Lines            []orderProductRecord `gorm:"foreignKey:OrderID"`
	CreatedAt        time.Time            `gorm:"column:created_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

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

// Save writes the order row and replaces its lines in one transaction.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	lines := record.Lines
	record.Lines = nil
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			if err := tx.Omit("Lines").Create(&record).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Omit("Lines").Save(&record).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", record.ID).Delete(&orderProductRecord{}).Error; err != nil {
				return err
			}
		}
		for i := range lines {
			lines[i].ID = 0
			lines[i].OrderID = record.ID
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order with its lines in position order.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.withLines(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.withLines(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// DeleteAll removes every order and order line.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := all.Delete(&orderProductRecord{}).Error; err != nil {
			return err
		}
		return all.Delete(&orderRecord{}).Error
	})
}

func (r *Repository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	rec := orderRecord{
		ID:               order.ID,
		Status:           string(order.Status),
		TotalPrice:       order.TotalPrice,
		RegisteredAt:     order.RegisteredAt,
		RequestedNumbers: pq.StringArray(order.ProductNumbers()),
		Lines:            make([]orderProductRecord, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		rec.Lines = append(rec.Lines, orderProductRecord{
			OrderID:       order.ID,
			Position:      line.Position,
			ProductID:     line.ProductID,
			ProductNumber: line.ProductNumber,
			Name:          line.Name,
			Price:         line.Price,
		})
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:           r.ID,
		Status:       domain.Status(r.Status),
		TotalPrice:   r.TotalPrice,
		RegisteredAt: r.RegisteredAt,
		Lines:        make([]domain.Line, 0, len(r.Lines)),
	}
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			Position:      line.Position,
			ProductID:     line.ProductID,
			ProductNumber: line.ProductNumber,
			Name:          line.Name,
			Price:         line.Price,
		})
	}
	return order
}
