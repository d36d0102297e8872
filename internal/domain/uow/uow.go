package uow

import (
	"context"

	"fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/domain/entitycode"
	"fleetcodes/internal/domain/tenant"
)

type Repos struct {
	Formats codeformat.Repository
	Codes   entitycode.Repository
	Tenants tenant.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinFormatTx resolves the active format for (tenantID, entityType),
	// trying the tenant row first and the global fallback second, takes the
	// row lock, and runs fn with the locked row. Returns codeformat.ErrNoFormat
	// when neither scope has an active row.
	WithinFormatTx(ctx context.Context, tenantID *uint64, entityType string, fn func(r Repos, f *codeformat.CodeFormat) error) error
	// WithinFormatIDTx locks one format row by primary key, no fallback.
	WithinFormatIDTx(ctx context.Context, formatID uint64, fn func(r Repos, f *codeformat.CodeFormat) error) error
}
