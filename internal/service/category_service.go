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

type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Get(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	List(ctx context.Context, departmentID uint) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type categoryService struct {
	repo    repository.CategoryRepository
	depRepo repository.DepartmentRepository
}

func NewCategoryService(repo repository.CategoryRepository, depRepo repository.DepartmentRepository) CategoryService {
	return &categoryService{repo: repo, depRepo: depRepo}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	dep, err := s.depRepo.FindByID(ctx, req.DepartmentID)
	if err != nil || !dep.IsActive {
		return nil, fmt.Errorf("department %d: %w", req.DepartmentID, apierror.ErrNotFound)
	}
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("category code %q: %w", req.Code, apierror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cat := &model.Category{
		Name:         req.Name,
		Code:         req.Code,
		DepartmentID: req.DepartmentID,
		ParentID:     req.ParentID,
		IsActive:     true,
	}
	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) List(ctx context.Context, departmentID uint) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = toCategoryResponse(&categories[i])
	}
	return resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	if req.Code != nil && *req.Code != cat.Code {
		if _, err := s.repo.FindByCode(ctx, *req.Code); err == nil {
			return nil, fmt.Errorf("category code %q: %w", *req.Code, apierror.ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		cat.Code = *req.Code
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.ParentID != nil {
		cat.ParentID = req.ParentID
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(cat)
	return &resp, nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %d: %w", id, apierror.ErrNotFound)
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func toCategoryResponse(c *model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		DepartmentID: c.DepartmentID,
		ParentID:     c.ParentID,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
