package mysql

import (
	"context"
	"errors"

	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func txRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Formats: &FormatRepository{db: tx},
		Codes:   &EntityCodeRepository{db: tx},
		Tenants: &TenantRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(txRepos(tx))
	})
}

func (u *GormUoW) WithinFormatTx(ctx context.Context, tenantID *uint64, entityType string, fn func(r uow.Repos, f *formatDomain.CodeFormat) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		// Lock the tenant row up-front; fall back to the global row when the
		// tenant has no active format of its own.
		f, err := r.Formats.GetActiveForUpdate(ctx, tenantID, entityType)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if tenantID == nil {
				return formatDomain.ErrNoFormat
			}
			f, err = r.Formats.GetActiveForUpdate(ctx, nil, entityType)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return formatDomain.ErrNoFormat
				}
				return err
			}
		}
		return fn(r, f)
	})
}

func (u *GormUoW) WithinFormatIDTx(ctx context.Context, formatID uint64, fn func(r uow.Repos, f *formatDomain.CodeFormat) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := txRepos(tx)
		f, err := r.Formats.GetByIDForUpdate(ctx, formatID)
		if err != nil {
			return err
		}
		return fn(r, f)
	})
}
