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

type DepartmentService interface {
	Create(ctx context.Context, req dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	Get(ctx context.Context, id uint) (*dto.DepartmentResponse, error)
	List(ctx context.Context) ([]dto.DepartmentResponse, error)
	Update(ctx context.Context, id uint, req dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	Deactivate(ctx context.Context, id uint) error
}

type departmentService struct {
	repo repository.DepartmentRepository
}

func NewDepartmentService(repo repository.DepartmentRepository) DepartmentService {
	return &departmentService{repo: repo}
}

func (s *departmentService) Create(ctx context.Context, req dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dep := &model.Department{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, dep); err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(dep)
	return &resp, nil
}

func (s *departmentService) Get(ctx context.Context, id uint) (*dto.DepartmentResponse, error) {
	dep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("department %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	resp := toDepartmentResponse(dep)
	return &resp, nil
}

func (s *departmentService) List(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.DepartmentResponse, len(departments))
	for i := range departments {
		resp[i] = toDepartmentResponse(&departments[i])
	}
	return resp, nil
}

func (s *departmentService) Update(ctx context.Context, id uint, req dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	dep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("department %d: %w", id, apierror.ErrNotFound)
		}
		return nil, err
	}
	if req.Name != nil {
		dep.Name = *req.Name
	}
	if req.Description != nil {
		dep.Description = req.Description
	}
	if req.IsActive != nil {
		dep.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, dep); err != nil {
		return nil, err
	}
	resp := toDepartmentResponse(dep)
	return &resp, nil
}

// Deactivate soft-deletes the department. Existing categories, products and
// transaction rows keep their department_id so history stays intact.
func (s *departmentService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("department %d: %w", id, apierror.ErrNotFound)
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func toDepartmentResponse(d *model.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
}
