package format

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	formatDomain "fleetcodes/internal/domain/codeformat"
	"fleetcodes/internal/domain/uow"
	"fleetcodes/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrFormatExists = errors.New("a format already exists for this tenant and entity type")

var reTypeKey = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

type Usecase struct {
	formats formatDomain.Repository
	uow     uow.UnitOfWork
}

func NewUsecase(formats formatDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{formats: formats, uow: tx}
}

type CreateInput struct {
	TenantID       *uint64
	EntityType     string
	FormatPattern  string
	Prefix         string
	Suffix         string
	IncludeYear    bool
	IncludeMonth   bool
	IncludeDay     bool
	SequenceLength int
	SequenceStart  int64
	Separator      string
	IsActive       bool
}

type UpdateInput struct {
	FormatPattern  *string
	Prefix         *string
	Suffix         *string
	IncludeYear    *bool
	IncludeMonth   *bool
	IncludeDay     *bool
	SequenceLength *int
	SequenceStart  *int64
	Separator      *string
	IsActive       *bool
}

// validate enforces the write-time contract: a row that passes here can
// always be compiled and rendered at issuance time.
func validate(f *formatDomain.CodeFormat) error {
	if !reTypeKey.MatchString(f.EntityType) {
		return fmt.Errorf("%w: bad entity type key %q", formatDomain.ErrInvalidConfig, f.EntityType)
	}
	if f.SequenceLength < 1 || f.SequenceLength > 12 {
		return fmt.Errorf("%w: sequence length %d out of range [1,12]", formatDomain.ErrInvalidConfig, f.SequenceLength)
	}
	if f.SequenceStart < 1 {
		return fmt.Errorf("%w: sequence start must be >= 1", formatDomain.ErrInvalidConfig)
	}
	if len(f.Separator) > 8 {
		return fmt.Errorf("%w: separator too long", formatDomain.ErrInvalidConfig)
	}
	if len(f.Prefix) > 16 || len(f.Suffix) > 16 {
		return fmt.Errorf("%w: prefix/suffix too long", formatDomain.ErrInvalidConfig)
	}
	if _, err := f.Compile(); err != nil {
		return err
	}
	return nil
}

// List returns the formats for one tenant scope. The first call for a scope
// with no rows provisions the default catalog, so a freshly created tenant
// shows a complete, editable set.
func (u *Usecase) List(ctx context.Context, tenantID *uint64) ([]formatDomain.CodeFormat, error) {
	var out []formatDomain.CodeFormat
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		n, err := r.Formats.CountByTenant(ctx, tenantID)
		if err != nil {
			return err
		}
		if n == 0 {
			for _, typ := range formatDomain.DefaultTypes() {
				if err := r.Formats.Create(ctx, formatDomain.NewDefault(tenantID, typ)); err != nil {
					return err
				}
			}
			logger.FromContext(ctx).Info("provisioned default code formats",
				zap.Int("count", len(formatDomain.DefaultTypes())))
		}
		out, err = r.Formats.ListByTenant(ctx, tenantID)
		return err
	})
	return out, err
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*formatDomain.CodeFormat, error) {
	return u.formats.GetByID(ctx, id)
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*formatDomain.CodeFormat, error) {
	f := &formatDomain.CodeFormat{
		TenantID:       in.TenantID,
		EntityType:     in.EntityType,
		FormatPattern:  in.FormatPattern,
		Prefix:         in.Prefix,
		Suffix:         in.Suffix,
		IncludeYear:    in.IncludeYear,
		IncludeMonth:   in.IncludeMonth,
		IncludeDay:     in.IncludeDay,
		SequenceLength: in.SequenceLength,
		SequenceStart:  in.SequenceStart,
		Separator:      in.Separator,
		IsActive:       in.IsActive,
	}
	if f.SequenceLength == 0 {
		f.SequenceLength = formatDomain.DefaultSequenceLength
	}
	if f.SequenceStart == 0 {
		f.SequenceStart = formatDomain.DefaultSequenceStart
	}
	if f.Separator == "" {
		f.Separator = formatDomain.DefaultSeparator
	}
	if err := validate(f); err != nil {
		return nil, err
	}
	if err := u.formats.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFormatExists
		}
		return nil, err
	}
	return f, nil
}

// Update applies a partial edit under the issuance row lock, so an edit can
// never interleave with a concurrent sequence claim. The counter itself is
// not editable here; ResetSequence is the only sanctioned way to move it back.
func (u *Usecase) Update(ctx context.Context, id uint64, in UpdateInput) (*formatDomain.CodeFormat, error) {
	var out *formatDomain.CodeFormat
	err := u.uow.WithinFormatIDTx(ctx, id, func(r uow.Repos, f *formatDomain.CodeFormat) error {
		if in.FormatPattern != nil {
			f.FormatPattern = *in.FormatPattern
		}
		if in.Prefix != nil {
			f.Prefix = *in.Prefix
		}
		if in.Suffix != nil {
			f.Suffix = *in.Suffix
		}
		if in.IncludeYear != nil {
			f.IncludeYear = *in.IncludeYear
		}
		if in.IncludeMonth != nil {
			f.IncludeMonth = *in.IncludeMonth
		}
		if in.IncludeDay != nil {
			f.IncludeDay = *in.IncludeDay
		}
		if in.SequenceLength != nil {
			f.SequenceLength = *in.SequenceLength
		}
		if in.SequenceStart != nil {
			f.SequenceStart = *in.SequenceStart
		}
		if in.Separator != nil {
			f.Separator = *in.Separator
		}
		if in.IsActive != nil {
			f.IsActive = *in.IsActive
		}
		if err := validate(f); err != nil {
			return err
		}
		if err := r.Formats.Save(ctx, f); err != nil {
			return err
		}
		out = f
		return nil
	})
	return out, err
}

func (u *Usecase) Delete(ctx context.Context, id uint64) error {
	if _, err := u.formats.GetByID(ctx, id); err != nil {
		return err
	}
	return u.formats.Delete(ctx, id)
}
