package service

import (
	"context"
	"testing"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMovementRepo struct {
	movements []*model.StockMovement
	nextID    uint
}

func newStubMovementRepo() *stubMovementRepo { return &stubMovementRepo{nextID: 1} }

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	m.ID = r.nextID
	r.nextID++
	r.movements = append(r.movements, m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter dto.TransactionFilter) ([]model.StockMovement, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.ProductID != 0 && m.ProductID != filter.ProductID {
			continue
		}
		if filter.DepartmentID != 0 && m.DepartmentID != filter.DepartmentID {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func TestMovementInAddsStock(t *testing.T) {
	products := newStubProductRepo()
	p := products.add(&model.Product{
		Name: "Batteries AA", Code: "EL-0020", StockQuantity: 8, IsActive: true,
	})
	svc := NewMovementService(newStubMovementRepo(), products, NewLedgerService(products), nil)

	resp, err := svc.Create(context.Background(), 2, dto.CreateStockMovementRequest{
		ProductID: p.ID,
		Type:      model.MovementIn,
		Quantity:  5,
		Reason:    "supplier return credit",
	})
	require.NoError(t, err)
	assert.Equal(t, 13, resp.NewStockQuantity)
	assert.Equal(t, model.MovementIn, resp.Type)
}

func TestMovementOutRemovesStock(t *testing.T) {
	products := newStubProductRepo()
	p := products.add(&model.Product{
		Name: "Batteries AA", Code: "EL-0020", StockQuantity: 8, IsActive: true,
	})
	svc := NewMovementService(newStubMovementRepo(), products, NewLedgerService(products), nil)

	resp, err := svc.Create(context.Background(), 2, dto.CreateStockMovementRequest{
		ProductID: p.ID,
		Type:      model.MovementOut,
		Quantity:  3,
		Reason:    "damaged in storage",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.NewStockQuantity)
}

// An out-movement larger than the stock must fail whole. The quantity stays
// where it was; it never clamps to zero.
func TestMovementOutRejectsBelowZero(t *testing.T) {
	products := newStubProductRepo()
	p := products.add(&model.Product{
		Name: "Batteries AA", Code: "EL-0020", StockQuantity: 4, IsActive: true,
	})
	movRepo := newStubMovementRepo()
	svc := NewMovementService(movRepo, products, NewLedgerService(products), nil)

	_, err := svc.Create(context.Background(), 2, dto.CreateStockMovementRequest{
		ProductID: p.ID,
		Type:      model.MovementOut,
		Quantity:  9,
		Reason:    "inventory write-off",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apierror.ErrInsufficientStock)

	qty, err := products.StockQuantityTx(nil, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, qty)
}

func TestMovementUnknownProduct(t *testing.T) {
	products := newStubProductRepo()
	svc := NewMovementService(newStubMovementRepo(), products, NewLedgerService(products), nil)

	_, err := svc.Create(context.Background(), 2, dto.CreateStockMovementRequest{
		ProductID: 77,
		Type:      model.MovementIn,
		Quantity:  1,
		Reason:    "initial load",
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
