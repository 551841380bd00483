package application

import (
	"context"
	"strings"

	types "github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/application/types"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/domain"
	"github.com/Apurer/go-gin-cafe-kiosk/internal/domains/products/ports"
)

// Service orchestrates the catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the products service with its dependencies.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct assigns the next product number and persists the product.
// Number assignment and the insert share the repository numbering lock.
func (s *Service) CreateProduct(ctx context.Context, input types.CreateProductInput) (*types.ProductProjection, error) {
	var saved *types.ProductProjection
	err := s.repo.WithNumberingLock(ctx, func(ctx context.Context, repo ports.Repository) error {
		number, err := NewProductNumberFactory(repo).CreateNextProductNumber(ctx)
		if err != nil {
			return err
		}
		product, err := domain.NewProduct(domain.NewProductParams{
			Number:        number,
			Type:          domain.Type(strings.ToUpper(strings.TrimSpace(input.Type))),
			SellingStatus: domain.SellingStatus(strings.ToUpper(strings.TrimSpace(input.SellingStatus))),
			Name:          strings.TrimSpace(input.Name),
			Price:         input.Price,
		})
		if err != nil {
			return err
		}
		saved, err = repo.Save(ctx, product)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// ListSellingProducts returns products customers can see at the kiosk.
func (s *Service) ListSellingProducts(ctx context.Context) ([]*types.ProductProjection, error) {
	result, err := s.repo.FindAllBySellingStatusIn(ctx, domain.DisplayStatuses())
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// ListProducts filters the catalog by any of the provided selling statuses.
func (s *Service) ListProducts(ctx context.Context, input types.ListProductsInput) ([]*types.ProductProjection, error) {
	statuses := make([]domain.SellingStatus, 0, len(input.SellingStatuses))
	for _, raw := range input.SellingStatuses {
		status := domain.SellingStatus(strings.ToUpper(strings.TrimSpace(raw)))
		if !status.Valid() {
			return nil, mapError(domain.ErrInvalidSellingStatus)
		}
		statuses = append(statuses, status)
	}
	if len(statuses) == 0 {
		statuses = domain.DisplayStatuses()
	}
	result, err := s.repo.FindAllBySellingStatusIn(ctx, statuses)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

var _ ports.Service = (*Service)(nil)
