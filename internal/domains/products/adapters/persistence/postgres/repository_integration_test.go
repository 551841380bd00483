//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	productsapp "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application"
	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("cafekiosk_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func saveProduct(t *testing.T, repo *Repository, number, name string, price int64, status domain.SellingStatus) *types.ProductProjection {
	t.Helper()
	product, err := domain.NewProduct(domain.NewProductParams{
		Number:        number,
		Type:          domain.TypeHandmade,
		SellingStatus: status,
		Name:          name,
		Price:         price,
	})
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)
	return saved
}

func seedBaseline(t *testing.T, repo *Repository) {
	t.Helper()
	saveProduct(t, repo, "001", "Americano", 4000, domain.SellingStatusSelling)
	saveProduct(t, repo, "002", "Cafe Latte", 4500, domain.SellingStatusHold)
	saveProduct(t, repo, "003", "Bingsu", 7000, domain.SellingStatusStopSelling)
}

func TestRepository_FindAllBySellingStatusIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	seedBaseline(t, repo)

	products, err := repo.FindAllBySellingStatusIn(context.Background(), []domain.SellingStatus{domain.SellingStatusSelling, domain.SellingStatusHold})
	require.NoError(t, err)
	require.Len(t, products, 2)

	numbers := []string{products[0].Product.Number, products[1].Product.Number}
	assert.ElementsMatch(t, []string{"001", "002"}, numbers)
}

func TestRepository_FindAllByProductNumberIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	seedBaseline(t, repo)

	products, err := repo.FindAllByProductNumberIn(context.Background(), []string{"001", "002", "001"})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Americano", products[0].Product.Name)
	assert.Equal(t, "Cafe Latte", products[1].Product.Name)
}

func TestRepository_FindLatestProductNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	latest, err := repo.FindLatestProductNumber(ctx)
	require.NoError(t, err)
	assert.Empty(t, latest)

	seedBaseline(t, repo)
	latest, err = repo.FindLatestProductNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "003", latest)
}

func TestRepository_DuplicateNumber(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saveProduct(t, repo, "001", "Americano", 4000, domain.SellingStatusSelling)

	product, err := domain.NewProduct(domain.NewProductParams{
		Number:        "001",
		Type:          domain.TypeBottle,
		SellingStatus: domain.SellingStatusSelling,
		Name:          "Sparkling Water",
		Price:         2000,
	})
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), product)
	assert.ErrorIs(t, err, ports.ErrDuplicateProductNumber)
}

func TestRepository_DeleteAll(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	seedBaseline(t, repo)

	require.NoError(t, repo.DeleteAll(context.Background()))
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestService_ConcurrentCreateProductUnderAdvisoryLock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	svc := productsapp.NewService(repo)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.CreateProduct(context.Background(), types.CreateProductInput{
				Name:          fmt.Sprintf("Blend %d", i),
				Price:         4000,
				Type:          "HANDMADE",
				SellingStatus: "SELLING",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	latest, err := repo.FindLatestProductNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%03d", workers), latest)
}
