package service

import (
	"context"
	"fmt"

	"assetflow/internal/model"
	"assetflow/internal/repository"
	"assetflow/pkg/apperr"

	"github.com/google/uuid"
)

type CreateDepartmentRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type DepartmentResponse struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// DepartmentService maintains the organizational units assets and budget
// plans are attached to. Mechanical data access, no workflow logic.
type DepartmentService interface {
	Create(ctx context.Context, orgID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	Get(ctx context.Context, id string) (DepartmentResponse, error)
	List(ctx context.Context, orgID string) ([]DepartmentResponse, error)
}

type departmentService struct {
	departments repository.DepartmentRepository
}

func NewDepartmentService(departments repository.DepartmentRepository) DepartmentService {
	return &departmentService{departments: departments}
}

func (s *departmentService) Create(ctx context.Context, orgID string, req CreateDepartmentRequest) (DepartmentResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return DepartmentResponse{}, apperr.Validation("invalid organization id %q", orgID)
	}

	dept := &model.Department{
		ID:             uuid.New(),
		OrganizationID: org,
		Code:           req.Code,
		Name:           req.Name,
	}
	if err := s.departments.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, fmt.Errorf("failed to create department: %w", err)
	}

	return toDepartmentResponse(dept), nil
}

func (s *departmentService) Get(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, apperr.Validation("invalid department id %q", id)
	}
	dept, err := s.departments.FindByID(ctx, deptID)
	if err != nil {
		if repository.IsNotFound(err) {
			return DepartmentResponse{}, apperr.NotFound("department", id)
		}
		return DepartmentResponse{}, fmt.Errorf("failed to load department: %w", err)
	}
	return toDepartmentResponse(dept), nil
}

func (s *departmentService) List(ctx context.Context, orgID string) ([]DepartmentResponse, error) {
	org, err := uuid.Parse(orgID)
	if err != nil {
		return nil, apperr.Validation("invalid organization id %q", orgID)
	}
	depts, err := s.departments.List(ctx, org)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	res := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		res = append(res, toDepartmentResponse(&depts[i]))
	}
	return res, nil
}

func toDepartmentResponse(d *model.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:   d.ID.String(),
		Code: d.Code,
		Name: d.Name,
	}
}
