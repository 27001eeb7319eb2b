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

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseService interface {
	Create(ctx context.Context, userID uint, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]dto.PurchaseResponse, error)
}

type purchaseService struct {
	repo     repository.PurchaseRepository
	products repository.ProductRepository
	ledger   LedgerService
}

func NewPurchaseService(repo repository.PurchaseRepository, products repository.ProductRepository, ledger LedgerService) PurchaseService {
	return &purchaseService{repo: repo, products: products, ledger: ledger}
}

// Create records a purchase and applies its +quantity ledger delta as one
// atomic unit. TotalCost is always quantity × unitCost computed here — any
// client-supplied total is ignored at the DTO boundary.
func (s *purchaseService) Create(ctx context.Context, userID uint, req dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", req.ProductID, apierror.ErrNotFound)
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, fmt.Errorf("product %q is inactive: %w", product.Name, apierror.ErrNotFound)
	}

	totalCost := req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))

	purchase := model.Purchase{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		TotalCost:    totalCost,
		SupplierName: req.SupplierName,
		UserID:       userID,
		DepartmentID: product.DepartmentID,
	}

	var newQty int
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &purchase); err != nil {
			return err
		}
		ref := LedgerRef{Kind: "purchase", ID: purchase.ID}
		newQty, err = s.ledger.ApplyDeltaTx(tx, purchase.ProductID, purchase.Quantity, ref)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := purchaseToResponse(&purchase)
	resp.ProductName = product.Name
	resp.NewStockQuantity = newQty
	return resp, nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.TransactionFilter) ([]dto.PurchaseResponse, error) {
	purchases, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		resp := purchaseToResponse(&p)
		if p.Product != nil {
			resp.ProductName = p.Product.Name
			resp.NewStockQuantity = p.Product.StockQuantity
		}
		items = append(items, *resp)
	}
	return items, nil
}

func purchaseToResponse(p *model.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:           p.ID,
		ProductID:    p.ProductID,
		Quantity:     p.Quantity,
		UnitCost:     p.UnitCost,
		TotalCost:    p.TotalCost,
		SupplierName: p.SupplierName,
		UserID:       p.UserID,
		DepartmentID: p.DepartmentID,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
}
