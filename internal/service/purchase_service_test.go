package service

import (
	"context"
	"testing"

	"github.com/Shema-glitch/StockTracker/internal/apierror"
	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPurchaseRepo struct {
	purchases []*model.Purchase
	nextID    uint
}

func newStubPurchaseRepo() *stubPurchaseRepo { return &stubPurchaseRepo{nextID: 1} }

func (r *stubPurchaseRepo) CreateTx(_ *gorm.DB, p *model.Purchase) error {
	p.ID = r.nextID
	r.nextID++
	r.purchases = append(r.purchases, p)
	return nil
}

func (r *stubPurchaseRepo) FindByID(_ context.Context, id uint) (*model.Purchase, error) {
	for _, p := range r.purchases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPurchaseRepo) List(_ context.Context, filter dto.TransactionFilter) ([]model.Purchase, error) {
	var out []model.Purchase
	for _, p := range r.purchases {
		if filter.ProductID != 0 && p.ProductID != filter.ProductID {
			continue
		}
		if filter.DepartmentID != 0 && p.DepartmentID != filter.DepartmentID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPurchaseRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.purchases)), nil
}

func TestPurchaseCreateIncreasesStock(t *testing.T) {
	products := newStubProductRepo()
	p := products.add(&model.Product{
		Name: "Flour 25kg", Code: "FD-0010", StockQuantity: 2,
		DepartmentID: 1, IsActive: true,
	})
	svc := NewPurchaseService(newStubPurchaseRepo(), products, NewLedgerService(products))

	supplier := "Kigali Wholesale"
	resp, err := svc.Create(context.Background(), 4, dto.CreatePurchaseRequest{
		ProductID:    p.ID,
		Quantity:     12,
		UnitCost:     decimal.RequireFromString("8.50"),
		SupplierName: &supplier,
	})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("102.00").Equal(resp.TotalCost),
		"total must be quantity × unitCost, got %s", resp.TotalCost)
	assert.Equal(t, 14, resp.NewStockQuantity)
	assert.Equal(t, "Flour 25kg", resp.ProductName)
	require.NotNil(t, resp.SupplierName)
	assert.Equal(t, supplier, *resp.SupplierName)
}

func TestPurchaseUnknownProduct(t *testing.T) {
	products := newStubProductRepo()
	svc := NewPurchaseService(newStubPurchaseRepo(), products, NewLedgerService(products))

	_, err := svc.Create(context.Background(), 1, dto.CreatePurchaseRequest{
		ProductID: 123,
		Quantity:  1,
		UnitCost:  decimal.RequireFromString("1.00"),
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestPurchaseInactiveProduct(t *testing.T) {
	products := newStubProductRepo()
	p := products.add(&model.Product{
		Name: "Old Stock", Code: "FD-0099", StockQuantity: 0, IsActive: false,
	})
	svc := NewPurchaseService(newStubPurchaseRepo(), products, NewLedgerService(products))

	_, err := svc.Create(context.Background(), 1, dto.CreatePurchaseRequest{
		ProductID: p.ID,
		Quantity:  5,
		UnitCost:  decimal.RequireFromString("2.00"),
	})
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}
