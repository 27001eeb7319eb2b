package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"
	"github.com/Shema-glitch/StockTracker/internal/repository"

	"gorm.io/gorm"
)

type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uint) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type productService struct {
	repo    repository.ProductRepository
	catRepo repository.CategoryRepository
}

func NewProductService(repo repository.ProductRepository, catRepo repository.CategoryRepository) ProductService {
	return &productService{repo: repo, catRepo: catRepo}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	cat, err := s.catRepo.FindByID(ctx, req.CategoryID)
	if err != nil || !cat.IsActive {
		return nil, fmt.Errorf("category %d: %w", req.CategoryID, apierror.ErrNotFound)
	}
	if cat.DepartmentID != req.DepartmentID {
		return nil, fmt.Errorf("category %d does not belong to department %d: %w",
			req.CategoryID, req.DepartmentID, apierror.ErrConflict)
	}
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("product code %q: %w", req.Code, apierror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	product := &model.Product{
		Name:          req.Name,
		Code:          req.Code,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		Image:         req.Image,
		DepartmentID:  req.DepartmentID,
		CategoryID:    req.CategoryID,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uint) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = toProductResponse(&products[i])
	}
	return resp, nil
}

// Update never touches stock_quantity. Stock only moves through purchases,
// sales and stock movements so the transaction history always explains the
// current quantity.
func (s *productService) Update(ctx context.Context, id uint, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	if req.CategoryID != nil && *req.CategoryID != product.CategoryID {
		cat, err := s.catRepo.FindByID(ctx, *req.CategoryID)
		if err != nil || !cat.IsActive {
			return nil, fmt.Errorf("category %d: %w", *req.CategoryID, apierror.ErrNotFound)
		}
		if cat.DepartmentID != product.DepartmentID {
			return nil, fmt.Errorf("category %d does not belong to department %d: %w",
				*req.CategoryID, product.DepartmentID, apierror.ErrConflict)
		}
		product.CategoryID = *req.CategoryID
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}
	if req.Image != nil {
		product.Image = req.Image
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Deactivate soft-deletes the product. Its transaction rows stay; the
// product just stops appearing in listings and rejects new transactions.
func (s *productService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", id, apierror.ErrNotFound)
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Code:          p.Code,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		Image:         p.Image,
		DepartmentID:  p.DepartmentID,
		CategoryID:    p.CategoryID,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
