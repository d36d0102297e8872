package mysql

import (
	"context"

	formatDomain "fleetcodes/internal/domain/codeformat"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FormatRepository struct{ db *gorm.DB }

func NewFormatRepository(db *gorm.DB) *FormatRepository { return &FormatRepository{db: db} }

func (r *FormatRepository) Create(ctx context.Context, f *formatDomain.CodeFormat) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FormatRepository) Save(ctx context.Context, f *formatDomain.CodeFormat) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *FormatRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&formatDomain.CodeFormat{}, id).Error
}

func (r *FormatRepository) GetByID(ctx context.Context, id uint64) (*formatDomain.CodeFormat, error) {
	var out formatDomain.CodeFormat
	res := r.db.WithContext(ctx).First(&out, id)
	return &out, res.Error
}

func (r *FormatRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*formatDomain.CodeFormat, error) {
	var out formatDomain.CodeFormat
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out, id)
	return &out, res.Error
}

// scoped narrows a query to one tenant scope; nil addresses the global rows.
func scoped(q *gorm.DB, tenantID *uint64) *gorm.DB {
	if tenantID == nil {
		return q.Where("tenant_id IS NULL")
	}
	return q.Where("tenant_id = ?", *tenantID)
}

func (r *FormatRepository) GetActive(ctx context.Context, tenantID *uint64, entityType string) (*formatDomain.CodeFormat, error) {
	var out formatDomain.CodeFormat
	res := scoped(r.db.WithContext(ctx).Where("entity_type = ? AND is_active = ?", entityType, true), tenantID).
		First(&out)
	return &out, res.Error
}

// GetActiveForUpdate takes the row-level exclusive lock that serializes
// concurrent issuance for one (tenant, entity type). Rows for other scopes
// stay unlocked.
func (r *FormatRepository) GetActiveForUpdate(ctx context.Context, tenantID *uint64, entityType string) (*formatDomain.CodeFormat, error) {
	var out formatDomain.CodeFormat
	res := scoped(r.db.WithContext(ctx).Where("entity_type = ? AND is_active = ?", entityType, true), tenantID).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&out)
	return &out, res.Error
}

func (r *FormatRepository) ListByTenant(ctx context.Context, tenantID *uint64) ([]formatDomain.CodeFormat, error) {
	var out []formatDomain.CodeFormat
	res := scoped(r.db.WithContext(ctx), tenantID).
		Order("entity_type ASC").
		Find(&out)
	return out, res.Error
}

func (r *FormatRepository) CountByTenant(ctx context.Context, tenantID *uint64) (int64, error) {
	var n int64
	res := scoped(r.db.WithContext(ctx).Model(&formatDomain.CodeFormat{}), tenantID).Count(&n)
	return n, res.Error
}
