package codegen

import (
	"context"
	"errors"
	"sync"
	"time"

	formatDomain "fleetcodes/internal/domain/codeformat"
	codeDomain "fleetcodes/internal/domain/entitycode"
	"fleetcodes/internal/domain/uow"
	"fleetcodes/internal/metrics"
	"fleetcodes/pkg/id"
	"fleetcodes/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// One transparent retry on a duplicate-code insert; a second failure means the
// counter was tampered with and the collision is surfaced.
const collisionRetries = 1

type Usecase struct {
	codes codeDomain.Repository
	uow   uow.UnitOfWork

	// compiled patterns keyed by format id, invalidated via UpdatedAt
	patterns sync.Map
}

func NewUsecase(codes codeDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{codes: codes, uow: tx}
}

type cachedPattern struct {
	stamp   time.Time
	pattern formatDomain.Pattern
}

// compiled returns the cached compiled pattern for f, recompiling only when
// the row changed since it was last seen.
func (u *Usecase) compiled(f *formatDomain.CodeFormat) (formatDomain.Pattern, error) {
	if f.ID != 0 {
		if v, ok := u.patterns.Load(f.ID); ok {
			if c := v.(cachedPattern); c.stamp.Equal(f.UpdatedAt) {
				return c.pattern, nil
			}
		}
	}
	p, err := f.Compile()
	if err != nil {
		return nil, err
	}
	if f.ID != 0 {
		u.patterns.Store(f.ID, cachedPattern{stamp: f.UpdatedAt, pattern: p})
	}
	return p, nil
}

// Generate issues a code for one (tenant, entityType, entityID) triple.
// Idempotent per triple: a pre-existing code is returned as-is and the
// sequence is not advanced. The sequence increment happens under the format
// row lock, before the code is formatted or inserted, so two concurrent
// callers can never observe the same value.
func (u *Usecase) Generate(ctx context.Context, in GenerateInput) (*CodeDTO, error) {
	if in.EntityType == "" || in.EntityID == 0 {
		return nil, ErrInvalidInput
	}
	log := logger.FromContext(ctx).With(
		zap.String("entity_type", in.EntityType),
		zap.Uint64("entity_id", in.EntityID),
	)

	// At-most-once issuance per entity.
	if existing, err := u.codes.GetByEntity(ctx, in.TenantID, in.EntityType, in.EntityID); err == nil {
		metrics.CodesIssued.WithLabelValues(in.EntityType, metrics.OutcomeReplayed).Inc()
		return toDTO(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var (
		out      *codeDomain.EntityCode
		replayed bool
		err      error
	)
	for attempt := 0; attempt <= collisionRetries; attempt++ {
		err = u.uow.WithinFormatTx(ctx, in.TenantID, in.EntityType, func(r uow.Repos, f *formatDomain.CodeFormat) error {
			// The unique indexes include the nullable tenant_id and therefore
			// do not bind for the global scope (NULL compares distinct), so
			// both uniqueness invariants are re-checked here, under the row
			// lock that serializes issuance for this format.
			if existing, err := r.Codes.GetByEntity(ctx, in.TenantID, in.EntityType, in.EntityID); err == nil {
				out = existing
				replayed = true
				return nil
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			next := f.NextSequence()
			// Claim the value before formatting: this write is the
			// linearization point of the whole operation.
			f.CurrentSequence = next
			if err := r.Formats.Save(ctx, f); err != nil {
				return err
			}
			pat, err := u.compiled(f)
			if err != nil {
				return err
			}
			code := pat.Render(next, time.Now().UTC())
			if _, err := r.Codes.GetByCode(ctx, in.TenantID, code); err == nil {
				return gorm.ErrDuplicatedKey
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			ec := &codeDomain.EntityCode{
				CodeID:     id.NewID32(),
				TenantID:   in.TenantID,
				EntityType: in.EntityType,
				EntityID:   in.EntityID,
				Code:       code,
				IssuedBy:   in.IssuedBy,
			}
			if err := r.Codes.Create(ctx, ec); err != nil {
				return err
			}
			out = ec
			return nil
		})
		if err == nil {
			outcome := metrics.OutcomeIssued
			if replayed {
				outcome = metrics.OutcomeReplayed
			}
			metrics.CodesIssued.WithLabelValues(in.EntityType, outcome).Inc()
			return toDTO(out), nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either a concurrent caller won the race for this entity, or the
			// code string itself collided (ux_entity_codes_code).
			if ec, lookupErr := u.codes.GetByEntity(ctx, in.TenantID, in.EntityType, in.EntityID); lookupErr == nil {
				metrics.CodesIssued.WithLabelValues(in.EntityType, metrics.OutcomeReplayed).Inc()
				return toDTO(ec), nil
			}
			log.Warn("issued code collided, retrying with fresh sequence", zap.Int("attempt", attempt+1))
			continue
		}
		break
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Retries exhausted: a data-integrity problem, e.g. a manually edited
		// counter. Loud on purpose.
		log.Error("code collision persisted after retry", zap.Error(err))
		metrics.CodesIssued.WithLabelValues(in.EntityType, metrics.OutcomeCollision).Inc()
		return nil, formatDomain.ErrCodeCollision
	}
	if errors.Is(err, formatDomain.ErrNoFormat) && !in.Required {
		log.Warn("no active code format, continuing without a code")
		metrics.CodesIssued.WithLabelValues(in.EntityType, metrics.OutcomeSkipped).Inc()
		return nil, nil
	}
	return nil, err
}

// GetExisting is a pure lookup; it returns (nil, nil) when no code was issued
// for the triple yet.
func (u *Usecase) GetExisting(ctx context.Context, tenantID *uint64, entityType string, entityID uint64) (*CodeDTO, error) {
	ec, err := u.codes.GetByEntity(ctx, tenantID, entityType, entityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toDTO(ec), nil
}

// List pages through the issuance audit trail for one tenant scope.
func (u *Usecase) List(ctx context.Context, tenantID *uint64, entityType string, limit, offset int) (*CodeListDTO, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	total, err := u.codes.CountByTenant(ctx, tenantID, entityType)
	if err != nil {
		return nil, err
	}
	rows, err := u.codes.ListByTenant(ctx, tenantID, entityType, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &CodeListDTO{Total: total, Items: make([]CodeDTO, 0, len(rows))}
	for i := range rows {
		out.Items = append(out.Items, *toDTO(&rows[i]))
	}
	return out, nil
}

// ResetSequence winds the counter back to SequenceStart-1 (floored at zero)
// so the next issuance yields exactly SequenceStart. Previously issued codes
// are untouched. Runs under the same row lock as issuance.
func (u *Usecase) ResetSequence(ctx context.Context, formatID uint64) error {
	err := u.uow.WithinFormatIDTx(ctx, formatID, func(r uow.Repos, f *formatDomain.CodeFormat) error {
		reset := f.SequenceStart - 1
		if reset < 0 {
			reset = 0
		}
		f.CurrentSequence = reset
		return r.Formats.Save(ctx, f)
	})
	if err != nil {
		return err
	}
	metrics.SequenceResets.Inc()
	logger.FromContext(ctx).Info("sequence reset", zap.Uint64("format_id", formatID))
	return nil
}

// Preview renders what the next code would look like for a hypothetical
// configuration. Pure: nothing is persisted, no counter moves.
func (u *Usecase) Preview(f *formatDomain.CodeFormat, at time.Time) (string, error) {
	pat, err := f.Compile()
	if err != nil {
		return "", err
	}
	return pat.Render(f.NextSequence(), at), nil
}

func toDTO(ec *codeDomain.EntityCode) *CodeDTO {
	return &CodeDTO{
		CodeID:     ec.CodeID,
		TenantID:   ec.TenantID,
		EntityType: ec.EntityType,
		EntityID:   ec.EntityID,
		Code:       ec.Code,
		IssuedBy:   ec.IssuedBy,
		CreatedAt:  ec.CreatedAt,
	}
}
