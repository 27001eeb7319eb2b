package repository

import (
	"context"

	"github.com/Shema-glitch/StockTracker/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	FindByCode(ctx context.Context, code string) (*model.Category, error)
	List(ctx context.Context, departmentID uint) ([]model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	SoftDelete(ctx context.Context, id uint) error
}

type categoryRepo struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepo{db: db} }

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *categoryRepo) FindByCode(ctx context.Context, code string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	return &c, err
}

// List returns active categories, optionally scoped to one department.
func (r *categoryRepo) List(ctx context.Context, departmentID uint) ([]model.Category, error) {
	q := r.db.WithContext(ctx).Where("is_active = true")
	if departmentID != 0 {
		q = q.Where("department_id = ?", departmentID)
	}
	var categories []model.Category
	err := q.Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepo) Update(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *categoryRepo) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Update("is_active", false).Error
}
