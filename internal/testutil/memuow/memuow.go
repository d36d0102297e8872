// Package memuow is an in-memory unit of work with the same locking contract
// as the GORM implementation: per-format-row exclusive locks, transactional
// rollback, and duplicate-key errors surfaced as gorm.ErrDuplicatedKey. It
// exists so concurrency properties of code issuance can be stress-tested
// without a database.
package memuow

import (
	"context"
	"sort"
	"sync"
	"time"

	"fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/domain/entitycode"
	"fleetcodes/internal/domain/uow"

	"gorm.io/gorm"
)

type Store struct {
	mu       sync.Mutex
	nextID   uint64
	formats  map[uint64]codeformat.CodeFormat
	rowLocks map[uint64]*sync.Mutex
	nextCode uint64
	codes    []entitycode.EntityCode
}

var _ uow.UnitOfWork = (*Store)(nil)

func New() *Store {
	return &Store{
		formats:  make(map[uint64]codeformat.CodeFormat),
		rowLocks: make(map[uint64]*sync.Mutex),
	}
}

// AddFormat commits a format row and returns its assigned id.
func (s *Store) AddFormat(f *codeformat.CodeFormat) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = time.Now().UTC()
	}
	s.formats[f.ID] = *f
	s.rowLocks[f.ID] = &sync.Mutex{}
	return f.ID
}

// Format returns a copy of the committed row.
func (s *Store) Format(id uint64) (codeformat.CodeFormat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.formats[id]
	return f, ok
}

// AddCode commits an issued code directly, bypassing issuance. Used to set up
// collision scenarios.
func (s *Store) AddCode(ec entitycode.EntityCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCode++
	ec.ID = s.nextCode
	s.codes = append(s.codes, ec)
}

// Codes returns a copy of all committed codes.
func (s *Store) Codes() []entitycode.EntityCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entitycode.EntityCode, len(s.codes))
	copy(out, s.codes)
	return out
}

// CodeRepo returns a repository view over committed state, for wiring into
// the usecase the way the real GORM repo is.
func (s *Store) CodeRepo() entitycode.Repository { return &codeRepo{s: s} }

// FormatRepo returns a repository view over committed state.
func (s *Store) FormatRepo() codeformat.Repository { return &formatRepo{s: s} }

// ---- tx state ----

type txState struct {
	s             *Store
	pendingFormat *codeformat.CodeFormat
	pendingCodes  []entitycode.EntityCode
}

func (t *txState) commit() {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.pendingFormat != nil {
		t.pendingFormat.UpdatedAt = time.Now().UTC()
		t.s.formats[t.pendingFormat.ID] = *t.pendingFormat
	}
	for _, ec := range t.pendingCodes {
		t.s.nextCode++
		ec.ID = t.s.nextCode
		if ec.CreatedAt.IsZero() {
			ec.CreatedAt = time.Now().UTC()
		}
		t.s.codes = append(t.s.codes, ec)
	}
}

func (s *Store) repos(tx *txState) uow.Repos {
	return uow.Repos{
		Formats: &formatRepo{s: s, tx: tx},
		Codes:   &codeRepo{s: s, tx: tx},
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	tx := &txState{s: s}
	if err := fn(s.repos(tx)); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// resolveActive mirrors the SQL fallback: tenant row first, global second.
func (s *Store) resolveActive(tenantID *uint64, entityType string) (codeformat.CodeFormat, bool) {
	if tenantID != nil {
		if f, ok := s.findActive(tenantID, entityType); ok {
			return f, true
		}
	}
	return s.findActive(nil, entityType)
}

func (s *Store) findActive(tenantID *uint64, entityType string) (codeformat.CodeFormat, bool) {
	for _, f := range s.formats {
		if f.EntityType == entityType && f.IsActive && sameScope(f.TenantID, tenantID) {
			return f, true
		}
	}
	return codeformat.CodeFormat{}, false
}

func sameScope(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Store) WithinFormatTx(ctx context.Context, tenantID *uint64, entityType string, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error {
	s.mu.Lock()
	committed, ok := s.resolveActive(tenantID, entityType)
	if !ok {
		s.mu.Unlock()
		return codeformat.ErrNoFormat
	}
	lock := s.rowLocks[committed.ID]
	s.mu.Unlock()

	// The row lock serializes issuance per format; other rows stay free.
	lock.Lock()
	defer lock.Unlock()

	// Re-read under the lock: another tx may have committed meanwhile.
	s.mu.Lock()
	committed = s.formats[committed.ID]
	s.mu.Unlock()

	tx := &txState{s: s}
	fcopy := committed
	if err := fn(s.repos(tx), &fcopy); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) WithinFormatIDTx(ctx context.Context, formatID uint64, fn func(r uow.Repos, f *codeformat.CodeFormat) error) error {
	s.mu.Lock()
	committed, ok := s.formats[formatID]
	if !ok {
		s.mu.Unlock()
		return gorm.ErrRecordNotFound
	}
	lock := s.rowLocks[formatID]
	s.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	committed = s.formats[formatID]
	s.mu.Unlock()

	tx := &txState{s: s}
	fcopy := committed
	if err := fn(s.repos(tx), &fcopy); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// ---- format repository ----

type formatRepo struct {
	s  *Store
	tx *txState
}

func (r *formatRepo) Create(ctx context.Context, f *codeformat.CodeFormat) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.formats {
		if ex.EntityType == f.EntityType && sameScope(ex.TenantID, f.TenantID) {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.nextID++
	f.ID = r.s.nextID
	f.UpdatedAt = time.Now().UTC()
	r.s.formats[f.ID] = *f
	r.s.rowLocks[f.ID] = &sync.Mutex{}
	return nil
}

func (r *formatRepo) Save(ctx context.Context, f *codeformat.CodeFormat) error {
	if r.tx != nil {
		cp := *f
		r.tx.pendingFormat = &cp
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f.UpdatedAt = time.Now().UTC()
	r.s.formats[f.ID] = *f
	return nil
}

func (r *formatRepo) Delete(ctx context.Context, id uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.formats[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.formats, id)
	return nil
}

func (r *formatRepo) GetByID(ctx context.Context, id uint64) (*codeformat.CodeFormat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.formats[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r *formatRepo) GetByIDForUpdate(ctx context.Context, id uint64) (*codeformat.CodeFormat, error) {
	return r.GetByID(ctx, id)
}

func (r *formatRepo) GetActive(ctx context.Context, tenantID *uint64, entityType string) (*codeformat.CodeFormat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.findActive(tenantID, entityType)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &f, nil
}

func (r *formatRepo) GetActiveForUpdate(ctx context.Context, tenantID *uint64, entityType string) (*codeformat.CodeFormat, error) {
	return r.GetActive(ctx, tenantID, entityType)
}

func (r *formatRepo) ListByTenant(ctx context.Context, tenantID *uint64) ([]codeformat.CodeFormat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []codeformat.CodeFormat
	for _, f := range r.s.formats {
		if sameScope(f.TenantID, tenantID) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityType < out[j].EntityType })
	return out, nil
}

func (r *formatRepo) CountByTenant(ctx context.Context, tenantID *uint64) (int64, error) {
	rows, _ := r.ListByTenant(ctx, tenantID)
	return int64(len(rows)), nil
}

// ---- entity code repository ----

type codeRepo struct {
	s  *Store
	tx *txState
}

func (r *codeRepo) Create(ctx context.Context, ec *entitycode.EntityCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.codes {
		if !sameScope(ex.TenantID, ec.TenantID) {
			continue
		}
		if ex.EntityType == ec.EntityType && ex.EntityID == ec.EntityID {
			return gorm.ErrDuplicatedKey
		}
		if ex.Code == ec.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if r.tx != nil {
		r.tx.pendingCodes = append(r.tx.pendingCodes, *ec)
		return nil
	}
	r.s.nextCode++
	ec.ID = r.s.nextCode
	if ec.CreatedAt.IsZero() {
		ec.CreatedAt = time.Now().UTC()
	}
	r.s.codes = append(r.s.codes, *ec)
	return nil
}

func (r *codeRepo) GetByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*entitycode.EntityCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.codes {
		ec := r.s.codes[i]
		if sameScope(ec.TenantID, tenantID) && ec.EntityType == entityType && ec.EntityID == entityID {
			return &ec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *codeRepo) GetByCode(ctx context.Context, tenantID *uint64, code string) (*entitycode.EntityCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.codes {
		ec := r.s.codes[i]
		if sameScope(ec.TenantID, tenantID) && ec.Code == code {
			return &ec, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *codeRepo) DeleteByEntity(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.codes {
		ec := r.s.codes[i]
		if sameScope(ec.TenantID, tenantID) && ec.EntityType == entityType && ec.EntityID == entityID {
			r.s.codes = append(r.s.codes[:i], r.s.codes[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *codeRepo) ListByTenant(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) ([]entitycode.EntityCode, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []entitycode.EntityCode
	for _, ec := range r.s.codes {
		if sameScope(ec.TenantID, tenantID) && (entityType == "" || ec.EntityType == entityType) {
			all = append(all, ec)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *codeRepo) CountByTenant(ctx context.Context, tenantID *uint64, entityType string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, ec := range r.s.codes {
		if sameScope(ec.TenantID, tenantID) && (entityType == "" || ec.EntityType == entityType) {
			n++
		}
	}
	return n, nil
}
