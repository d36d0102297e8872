package codeformat

import "context"

type Repository interface {
	Create(ctx context.Context, f *CodeFormat) error
	Save(ctx context.Context, f *CodeFormat) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*CodeFormat, error)
	// GetByIDForUpdate locks the row for the duration of the surrounding
	// transaction; only meaningful on a tx-bound repository.
	GetByIDForUpdate(ctx context.Context, id uint64) (*CodeFormat, error)
	// GetActive resolves the active format for one scope: tenantID = nil
	// addresses the global fallback row.
	GetActive(ctx context.Context, tenantID *uint64, entityType string) (*CodeFormat, error)
	GetActiveForUpdate(ctx context.Context, tenantID *uint64, entityType string) (*CodeFormat, error)
	ListByTenant(ctx context.Context, tenantID *uint64) ([]CodeFormat, error)
	CountByTenant(ctx context.Context, tenantID *uint64) (int64, error)
}
