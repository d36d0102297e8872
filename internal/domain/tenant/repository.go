package tenant

import "context"

type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	Save(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uint64) (*Tenant, error)
	GetByPublicID(ctx context.Context, tenantID string) (*Tenant, error)
	List(ctx context.Context, limit, offset int) ([]Tenant, error)
}
