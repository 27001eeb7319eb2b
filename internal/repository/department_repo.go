package repository

import (
	"context"

	"github.com/Shema-glitch/StockTracker/internal/model"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(ctx context.Context, d *model.Department) error
	FindByID(ctx context.Context, id uint) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Update(ctx context.Context, d *model.Department) error
	SoftDelete(ctx context.Context, id uint) error
}

type departmentRepo struct{ db *gorm.DB }

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository { return &departmentRepo{db: db} }

func (r *departmentRepo) Create(ctx context.Context, d *model.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *departmentRepo) FindByID(ctx context.Context, id uint) (*model.Department, error) {
	var d model.Department
	err := r.db.WithContext(ctx).First(&d, id).Error
	return &d, err
}

// List returns active departments only. Soft-deleted rows stay retrievable
// by id but never appear here.
func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.WithContext(ctx).Where("is_active = true").Order("name ASC").Find(&departments).Error
	return departments, err
}

func (r *departmentRepo) Update(ctx context.Context, d *model.Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *departmentRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Department{}).Where("id = ?", id).Update("is_active", false).Error
}
