package formatmock

import (
	"context"

	domain "fleetcodes/internal/domain/codeformat"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies codeformat.Repository.
type Repo struct {
	CreateFn             func(ctx context.Context, f *domain.CodeFormat) error
	SaveFn               func(ctx context.Context, f *domain.CodeFormat) error
	DeleteFn             func(ctx context.Context, id uint64) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.CodeFormat, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.CodeFormat, error)
	GetActiveFn          func(ctx context.Context, tenantID *uint64, entityType string) (*domain.CodeFormat, error)
	GetActiveForUpdateFn func(ctx context.Context, tenantID *uint64, entityType string) (*domain.CodeFormat, error)
	ListByTenantFn       func(ctx context.Context, tenantID *uint64) ([]domain.CodeFormat, error)
	CountByTenantFn      func(ctx context.Context, tenantID *uint64) (int64, error)
}

func (m *Repo) Create(ctx context.Context, f *domain.CodeFormat) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, f)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, f *domain.CodeFormat) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, f)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, id uint64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.CodeFormat, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.CodeFormat, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActive(ctx context.Context, tenantID *uint64, entityType string) (*domain.CodeFormat, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx, tenantID, entityType)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetActiveForUpdate(ctx context.Context, tenantID *uint64, entityType string) (*domain.CodeFormat, error) {
	if m.GetActiveForUpdateFn != nil {
		return m.GetActiveForUpdateFn(ctx, tenantID, entityType)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByTenant(ctx context.Context, tenantID *uint64) ([]domain.CodeFormat, error) {
	if m.ListByTenantFn != nil {
		return m.ListByTenantFn(ctx, tenantID)
	}
	return nil, nil
}

func (m *Repo) CountByTenant(ctx context.Context, tenantID *uint64) (int64, error) {
	if m.CountByTenantFn != nil {
		return m.CountByTenantFn(ctx, tenantID)
	}
	return 0, nil
}
