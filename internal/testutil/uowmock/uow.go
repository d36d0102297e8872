package uowmock

import (
	"context"
	"errors"

	"fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork. Fill in the
// function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinFormatTxFn   func(ctx context.Context, tenantID *uint64, entityType string, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error
	WithinFormatIDTxFn func(ctx context.Context, formatID uint64, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinFormatTx(ctx context.Context, tenantID *uint64, entityType string, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error {
	if m.WithinFormatTxFn != nil {
		return m.WithinFormatTxFn(ctx, tenantID, entityType, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinFormatIDTx(ctx context.Context, formatID uint64, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error {
	if m.WithinFormatIDTxFn != nil {
		return m.WithinFormatIDTxFn(ctx, formatID, fn)
	}
	return errUnimplemented
}
