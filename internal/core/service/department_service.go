package service

import (
	"context"
	"time"

	"github.com/officecorner/hr-system/internal/core/domain"
	"github.com/officecorner/hr-system/internal/core/ports"
)

// DepartmentService implements department CRUD.
type DepartmentService struct {
	repo ports.DepartmentRepository
}

func NewDepartmentService(repo ports.DepartmentRepository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) Create(ctx context.Context, name, description, managerID string) (*domain.Department, error) {
	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Department{
		Name:        name,
		Description: description,
		ManagerID:   managerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*domain.Department, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DepartmentService) List(ctx context.Context) ([]*domain.Department, error) {
	return s.repo.List(ctx)
}

func (s *DepartmentService) Update(ctx context.Context, id, name, description, managerID string) (*domain.Department, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		dept.Name = name
	}
	if description != "" {
		dept.Description = description
	}
	if managerID != "" {
		dept.ManagerID = managerID
	}
	dept.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
