package tenant

import (
	"context"
	"errors"

	tenantDomain "fleetcodes/internal/domain/tenant"
	"fleetcodes/pkg/id"

	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("invalid tenant input")
	ErrNameTaken    = errors.New("tenant name already taken")
)

type Usecase struct{ repo tenantDomain.Repository }

func NewUsecase(r tenantDomain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	Name        string
	Description string
	OwnerID     string
}

type UpdateInput struct {
	Name        *string
	Description *string
	Active      *bool
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*tenantDomain.Tenant, error) {
	if in.Name == "" {
		return nil, ErrInvalidInput
	}
	t := &tenantDomain.Tenant{
		TenantID:    id.NewID32(),
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		Active:      true,
	}
	if err := u.repo.Create(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return t, nil
}

func (u *Usecase) Get(ctx context.Context, publicID string) (*tenantDomain.Tenant, error) {
	t, err := u.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenantDomain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (u *Usecase) List(ctx context.Context, limit, offset int) ([]tenantDomain.Tenant, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return u.repo.List(ctx, limit, offset)
}

func (u *Usecase) Update(ctx context.Context, publicID string, in UpdateInput) (*tenantDomain.Tenant, error) {
	t, err := u.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrInvalidInput
		}
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Active != nil {
		t.Active = *in.Active
	}
	if err := u.repo.Save(ctx, t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return t, nil
}
