package codemock

import (
	"context"

	domain "fleetcodes/internal/domain/entitycode"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies entitycode.Repository.
// Fill in the function fields a test needs; unfilled lookups act empty.
type Repo struct {
	CreateFn         func(ctx context.Context, ec *domain.EntityCode) error
	GetByEntityFn    func(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*domain.EntityCode, error)
	GetByCodeFn      func(ctx context.Context, tenantID *uint64, code string) (*domain.EntityCode, error)
	DeleteByEntityFn func(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) error
	ListByTenantFn   func(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) ([]domain.EntityCode, error)
	CountByTenantFn  func(ctx context.Context, tenantID *uint64, entityType string) (int64, error)
}

func (m *Repo) Create(ctx context.Context, ec *domain.EntityCode) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, ec)
	}
	return nil
}

func (m *Repo) GetByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*domain.EntityCode, error) {
	if m.GetByEntityFn != nil {
		return m.GetByEntityFn(ctx, tenantID, entityType, entityID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByCode(ctx context.Context, tenantID *uint64, code string) (*domain.EntityCode, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, tenantID, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) DeleteByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) error {
	if m.DeleteByEntityFn != nil {
		return m.DeleteByEntityFn(ctx, tenantID, entityType, entityID)
	}
	return nil
}

func (m *Repo) ListByTenant(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) ([]domain.EntityCode, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID, entityType, limit, offset)
	}
	return nil, nil
}

func (m *Repo) CountByTenant(ctx context.Context, tenantID *uint64, entityType string) (int64, error) {
	if m.CountByTenantFn != nil {
		return m.CountByTenantFn(ctx, tenantID, entityType)
	}
	return 0, nil
}
