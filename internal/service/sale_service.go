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
	"github.com/Shema-glitch/StockTracker/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Create(ctx context.Context, userID uint, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]dto.SaleResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	ledger     LedgerService
	dispatcher *worker.Dispatcher
}

func NewSaleService(repo repository.SaleRepository, products repository.ProductRepository, ledger LedgerService, dispatcher *worker.Dispatcher) SaleService {
	return &saleService{repo: repo, products: products, ledger: ledger, dispatcher: dispatcher}
}

// Create records a sale and applies its -quantity ledger delta as one atomic
// unit. When the product has fewer units than requested, the whole operation
// fails with ErrInsufficientStock and no sale row exists afterwards.
func (s *saleService) Create(ctx context.Context, userID uint, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
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

	// quantity × unitPrice, always computed here. The pre-flight read above
	// is NOT the stock check — the conditional update inside the transaction
	// is, so a concurrent sale cannot slip between read and write.
	totalPrice := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	sale := model.Sale{
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TotalPrice:   totalPrice,
		UserID:       userID,
		DepartmentID: product.DepartmentID,
	}

	var newQty int
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}
		ref := LedgerRef{Kind: "sale", ID: sale.ID}
		newQty, err = s.ledger.ApplyDeltaTx(tx, sale.ProductID, -sale.Quantity, ref)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	// Post-commit, best effort: alert when the sale took the product below
	// its minimum stock level.
	if s.dispatcher != nil && newQty < product.MinStockLevel {
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductCode:   product.Code,
			StockQuantity: newQty,
			MinStockLevel: product.MinStockLevel,
		})
	}

	resp := saleToResponse(&sale)
	resp.ProductName = product.Name
	resp.NewStockQuantity = newQty
	return resp, nil
}

func (s *saleService) List(ctx context.Context, filter dto.TransactionFilter) ([]dto.SaleResponse, error) {
	sales, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, sl := range sales {
		resp := saleToResponse(&sl)
		if sl.Product != nil {
			resp.ProductName = sl.Product.Name
			resp.NewStockQuantity = sl.Product.StockQuantity
		}
		items = append(items, *resp)
	}
	return items, nil
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		Quantity:     s.Quantity,
		UnitPrice:    s.UnitPrice,
		TotalPrice:   s.TotalPrice,
		UserID:       s.UserID,
		DepartmentID: s.DepartmentID,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}
