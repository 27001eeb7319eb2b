package repository

import (
	"context"

	"github.com/Shema-glitch/StockTracker/internal/dto"
	"github.com/Shema-glitch/StockTracker/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	// CreateTx inserts the purchase row inside the caller's transaction —
	// the same one that applies the ledger delta.
	CreateTx(tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uint) (*model.Purchase, error)
	List(ctx context.Context, filter dto.TransactionFilter) ([]model.Purchase, error)
	Count(ctx context.Context) (int64, error)
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) CreateTx(tx *gorm.DB, p *model.Purchase) error {
	return tx.Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uint) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Product").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.TransactionFilter) ([]model.Purchase, error) {
	q := r.db.WithContext(ctx).Preload("Product")
	if filter.DepartmentID != 0 {
		q = q.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.ProductID != 0 {
		q = q.Where("product_id = ?", filter.ProductID)
	}
	var purchases []model.Purchase
	err := q.Order("created_at DESC").Find(&purchases).Error
	return purchases, err
}

func (r *purchaseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).Count(&n).Error
	return n, err
}
