package tenantmock

import (
	"context"

	domain "fleetcodes/internal/domain/tenant"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies tenant.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, t *domain.Tenant) error
	SaveFn          func(ctx context.Context, t *domain.Tenant) error
	GetByIDFn       func(ctx context.Context, id uint64) (*domain.Tenant, error)
	GetByPublicIDFn func(ctx context.Context, tenantID string) (*domain.Tenant, error)
	ListFn          func(ctx context.Context, limit, offset int) ([]domain.Tenant, error)
}

func (m *Repo) Create(ctx context.Context, t *domain.Tenant) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, t *domain.Tenant) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Tenant, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByPublicID(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	if m.GetByPublicIDFn != nil {
		return m.GetByPublicIDFn(ctx, tenantID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context, limit, offset int) ([]domain.Tenant, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit, offset)
	}
	return nil, nil
}
