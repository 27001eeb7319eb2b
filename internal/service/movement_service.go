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

	"gorm.io/gorm"
)

type MovementService interface {
	Create(ctx context.Context, userID uint, req dto.CreateStockMovementRequest) (*dto.StockMovementResponse, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]dto.StockMovementResponse, error)
}

type movementService struct {
	repo       repository.StockMovementRepository
	products   repository.ProductRepository
	ledger     LedgerService
	dispatcher *worker.Dispatcher
}

func NewMovementService(repo repository.StockMovementRepository, products repository.ProductRepository, ledger LedgerService, dispatcher *worker.Dispatcher) MovementService {
	return &movementService{repo: repo, products: products, ledger: ledger, dispatcher: dispatcher}
}

// Create records a manual adjustment. The delta sign follows the movement
// type: +quantity for "in", -quantity for "out". An "out" movement larger
// than the current stock is rejected whole — the quantity never clamps to
// zero, it stays untouched.
func (s *movementService) Create(ctx context.Context, userID uint, req dto.CreateStockMovementRequest) (*dto.StockMovementResponse, error) {
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

	delta := req.Quantity
	if req.Type == model.MovementOut {
		delta = -req.Quantity
	}

	movement := model.StockMovement{
		ProductID:    req.ProductID,
		Type:         req.Type,
		Quantity:     req.Quantity,
		Reason:       req.Reason,
		Notes:        req.Notes,
		UserID:       userID,
		DepartmentID: product.DepartmentID,
	}

	var newQty int
	txErr := runTx(ctx, s.products.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &movement); err != nil {
			return err
		}
		ref := LedgerRef{Kind: "movement", ID: movement.ID}
		newQty, err = s.ledger.ApplyDeltaTx(tx, movement.ProductID, delta, ref)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.dispatcher != nil && delta < 0 && newQty < product.MinStockLevel {
		_ = s.dispatcher.EnqueueLowStockAlert(ctx, worker.LowStockAlertPayload{
			ProductID:     product.ID,
			ProductName:   product.Name,
			ProductCode:   product.Code,
			StockQuantity: newQty,
			MinStockLevel: product.MinStockLevel,
		})
	}

	resp := movementToResponse(&movement)
	resp.ProductName = product.Name
	resp.NewStockQuantity = newQty
	return resp, nil
}

func (s *movementService) List(ctx context.Context, filter dto.TransactionFilter) ([]dto.StockMovementResponse, error) {
	movements, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		resp := movementToResponse(&m)
		if m.Product != nil {
			resp.ProductName = m.Product.Name
			resp.NewStockQuantity = m.Product.StockQuantity
		}
		items = append(items, *resp)
	}
	return items, nil
}

func movementToResponse(m *model.StockMovement) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		Type:         m.Type,
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		Notes:        m.Notes,
		UserID:       m.UserID,
		DepartmentID: m.DepartmentID,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
	}
}
