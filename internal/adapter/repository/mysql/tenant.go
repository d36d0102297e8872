package mysql

import (
	"context"

	tenantDomain "fleetcodes/internal/domain/tenant"

	"gorm.io/gorm"
)

type TenantRepository struct{ db *gorm.DB }

func NewTenantRepository(db *gorm.DB) *TenantRepository { return &TenantRepository{db: db} }

func (r *TenantRepository) Create(ctx context.Context, t *tenantDomain.Tenant) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TenantRepository) Save(ctx context.Context, t *tenantDomain.Tenant) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TenantRepository) GetByID(ctx context.Context, id uint64) (*tenantDomain.Tenant, error) {
	var out tenantDomain.Tenant
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *TenantRepository) GetByPublicID(ctx context.Context, tenantID string) (*tenantDomain.Tenant, error) {
	var out tenantDomain.Tenant
	res := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).First(&out)
	return &out, res.Error
}

func (r *TenantRepository) List(ctx context.Context, limit, offset int) ([]tenantDomain.Tenant, error) {
	var out []tenantDomain.Tenant
	res := r.db.WithContext(ctx).Order("id ASC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}
