package entitycode

import "context"

type Repository interface {
	Create(ctx context.Context, ec *EntityCode) error
	GetByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*EntityCode, error)
	// GetByCode looks a code string up within one tenant scope.
	GetByCode(ctx context.Context, tenantID *uint64, code string) (*EntityCode, error)
	// DeleteByEntity cascades a business-entity deletion onto its code.
	DeleteByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) error
	ListByTenant(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) ([]EntityCode, error)
	CountByTenant(ctx context.Context, tenantID *uint64, entityType string) (int64, error)
}
