package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// numberingLockKey identifies the transaction-scoped advisory lock guarding product numbers.
const numberingLockKey int64 = 0x6361666570726f64

const uniqueViolation = "23505"

// Repository persists products in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle
// and is expected to have applied platform migrations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

// Save inserts a new product or updates an existing one by ID.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("cannot save nil product")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(product)
	db := r.db.WithContext(ctx)
	var err error
	if record.ID == 0 {
		err = db.Create(&record).Error
	} else {
		err = db.Save(&record).Error
	}
	if err != nil {
		return nil, translateError(err)
	}
	return record.toProjection(), nil
}

// FindLatestProductNumber reads the number of the most recently inserted product.
func (r *Repository) FindLatestProductNumber(ctx context.Context) (string, error) {
	if err := r.ensureDB(); err != nil {
		return "", err
	}
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&productRecord{}).
		Order("id DESC").
		Limit(1).
		Pluck("product_number", &numbers).Error; err != nil {
		return "", err
	}
	if len(numbers) == 0 {
		return "", nil
	}
	return numbers[0], nil
}

// FindAllBySellingStatusIn returns products matching any provided status.
func (r *Repository) FindAllBySellingStatusIn(ctx context.Context, statuses []domain.SellingStatus) ([]*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(statuses) == 0 {
		return nil, nil
	}
	args := make([]string, 0, len(statuses))
	for _, s := range statuses {
		args = append(args, string(s))
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Where("selling_status IN ?", args).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// FindAllByProductNumberIn returns one row per distinct matching product number.
func (r *Repository) FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(numbers) == 0 {
		return nil, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).
		Where("product_number IN ?", numbers).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// List returns every persisted product.
func (r *Repository) List(ctx context.Context) ([]*types.ProductProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return recordsToProjections(records), nil
}

// DeleteAll removes every product in a single statement.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&productRecord{}).Error
}

// WithNumberingLock opens a transaction, takes the numbering advisory lock and
// hands fn a repository bound to that transaction. The lock is released on
// commit or rollback.
func (r *Repository) WithNumberingLock(ctx context.Context, fn func(ctx context.Context, repo ports.Repository) error) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", numberingLockKey).Error; err != nil {
			return err
		}
		return fn(ctx, &Repository{db: tx})
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ports.ErrDuplicateProductNumber
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ports.ErrDuplicateProductNumber
	}
	return err
}

func toRecord(p *domain.Product) productRecord {
	return productRecord{
		ID:            p.ID,
		ProductNumber: p.Number,
		Type:          string(p.Type),
		SellingStatus: string(p.SellingStatus),
		Name:          p.Name,
		Price:         p.Price,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		Number:        r.ProductNumber,
		Type:          domain.Type(r.Type),
		SellingStatus: domain.SellingStatus(r.SellingStatus),
		Name:          r.Name,
		Price:         r.Price,
	}
}

func (r productRecord) toProjection() *types.ProductProjection {
	return types.NewProductProjection(r.toDomain(), r.CreatedAt, r.UpdatedAt)
}

func recordsToProjections(records []productRecord) []*types.ProductProjection {
	list := make([]*types.ProductProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list
}
