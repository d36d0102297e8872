package codegen

import (
	"context"

	formatDomain "fleetcodes/internal/domain/codeformat"
)

// Per-type convenience wrappers for the fixed catalog. Each is Generate with
// a pinned entity-type key and the hard-failure policy.

func (u *Usecase) generateFor(ctx context.Context, entityType string, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.Generate(ctx, GenerateInput{
		EntityType: entityType,
		EntityID:   entityID,
		TenantID:   tenantID,
		IssuedBy:   issuedBy,
		Required:   true,
	})
}

func (u *Usecase) GenerateVehicleCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeVehicle, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateDriverCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeDriver, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateInterventionCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeIntervention, entityID, tenantID, issuedBy)
}

func (u *Usecase) GeneratePrediagnosticCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInterventionPrediagnostic, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateWorkAuthorizationCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInterventionWorkAuthorization, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateReceptionReportCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInterventionReceptionReport, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateFieldVerificationCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInterventionFieldVerification, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateMaintenanceCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeMaintenance, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateFuelLogCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeFuelLog, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateInsuranceCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInsurance, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateQuoteCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeQuote, entityID, tenantID, issuedBy)
}

func (u *Usecase) GenerateInvoiceCode(ctx context.Context, entityID uint64, tenantID *uint64, issuedBy string) (*CodeDTO, error) {
	return u.generateFor(ctx, formatDomain.TypeInvoice, entityID, tenantID, issuedBy)
}
