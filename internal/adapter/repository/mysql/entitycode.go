package mysql

import (
	"context"

	codeDomain "fleetcodes/internal/domain/entitycode"

	"gorm.io/gorm"
)

type EntityCodeRepository struct{ db *gorm.DB }

func NewEntityCodeRepository(db *gorm.DB) *EntityCodeRepository {
	return &EntityCodeRepository{db: db}
}

func (r *EntityCodeRepository) Create(ctx context.Context, ec *codeDomain.EntityCode) error {
	return r.db.WithContext(ctx).Create(ec).Error
}

func (r *EntityCodeRepository) GetByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*codeDomain.EntityCode, error) {
	var out codeDomain.EntityCode
	res := scoped(r.db.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", entityType, entityID), tenantID).
		First(&out)
	return &out, res.Error
}

func (r *EntityCodeRepository) GetByCode(ctx context.Context, tenantID *uint64, code string) (*codeDomain.EntityCode, error) {
	var out codeDomain.EntityCode
	res := scoped(r.db.WithContext(ctx).Where("code = ?", code), tenantID).
		First(&out)
	return &out, res.Error
}

func (r *EntityCodeRepository) DeleteByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) error {
	return scoped(r.db.WithContext(ctx).Where("entity_type = ? AND entity_id = ?", entityType, entityID), tenantID).
		Delete(&codeDomain.EntityCode{}).Error
}

func (r *EntityCodeRepository) ListByTenant(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) ([]codeDomain.EntityCode, error) {
	q := scoped(r.db.WithContext(ctx), tenantID)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	var out []codeDomain.EntityCode
	res := q.Order("id DESC").Limit(limit).Offset(offset).Find(&out)
	return out, res.Error
}

func (r *EntityCodeRepository) CountByTenant(ctx context.Context, tenantID *uint64, entityType string) (int64, error) {
	q := scoped(r.db.WithContext(ctx).Model(&codeDomain.EntityCode{}), tenantID)
	if entityType != "" {
		q = q.Where("entity_type = ?", entityType)
	}
	var n int64
	res := q.Count(&n)
	return n, res.Error
}
