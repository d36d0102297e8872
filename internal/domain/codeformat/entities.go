package codeformat

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNoFormat      = errors.New("no active code format for entity type")
	ErrCodeCollision = errors.New("generated code collides with an issued code")
	ErrInvalidConfig = errors.New("invalid code format configuration")
)

const (
	DefaultSequenceLength = 4
	DefaultSequenceStart  = 1
	DefaultSeparator      = "-"
)

// Known entity-type keys. The catalog is fixed but not closed: tenants may
// configure formats for custom keys as long as they pass key validation.
const (
	TypeVehicle                       = "vehicle"
	TypeDriver                        = "driver"
	TypeIntervention                  = "intervention"
	TypeInterventionPrediagnostic     = "intervention_prediagnostic"
	TypeInterventionWorkAuthorization = "intervention_work_authorization"
	TypeInterventionReceptionReport   = "intervention_reception_report"
	TypeInterventionFieldVerification = "intervention_field_verification"
	TypeMaintenance                   = "maintenance"
	TypeFuelLog                       = "fuel_log"
	TypeInsurance                     = "insurance"
	TypeQuote                         = "quote"
	TypeInvoice                       = "invoice"
)

// DefaultTypes returns the catalog provisioned for a fresh tenant.
func DefaultTypes() []string {
	return []string{
		TypeVehicle, TypeDriver, TypeIntervention,
		TypeInterventionPrediagnostic, TypeInterventionWorkAuthorization,
		TypeInterventionReceptionReport, TypeInterventionFieldVerification,
		TypeMaintenance, TypeFuelLog, TypeInsurance, TypeQuote, TypeInvoice,
	}
}

// defaultPrefixes gives new tenants something readable out of the box.
var defaultPrefixes = map[string]string{
	TypeVehicle:                       "VH",
	TypeDriver:                        "DR",
	TypeIntervention:                  "INT",
	TypeInterventionPrediagnostic:     "PRD",
	TypeInterventionWorkAuthorization: "WAU",
	TypeInterventionReceptionReport:   "RCP",
	TypeInterventionFieldVerification: "FVR",
	TypeMaintenance:                   "MNT",
	TypeFuelLog:                       "FUEL",
	TypeInsurance:                     "INS",
	TypeQuote:                         "QT",
	TypeInvoice:                       "INV",
}

// CodeFormat configures how codes look for one (tenant, entity type) and owns
// the sequence counter. A row with TenantID = nil is the global fallback used
// when the tenant has no active row of its own.
type CodeFormat struct {
	ID       uint64  `gorm:"primaryKey;column:id" json:"id"`
	TenantID *uint64 `gorm:"column:tenant_id;uniqueIndex:ux_code_formats_scope" json:"tenant_id,omitempty"`
	// Entity-type key, e.g. "vehicle" or "invoice".
	EntityType string `gorm:"size:64;column:entity_type;not null;uniqueIndex:ux_code_formats_scope" json:"entity_type"`
	// Legacy template with {YEAR}/{MONTH}/{DAY}/{SEQUENCE} placeholders.
	// When set it wins over the discrete flags below.
	FormatPattern   string         `gorm:"size:255;column:format_pattern" json:"format_pattern,omitempty"`
	Prefix          string         `gorm:"size:16;column:prefix" json:"prefix,omitempty"`
	Suffix          string         `gorm:"size:16;column:suffix" json:"suffix,omitempty"`
	IncludeYear     bool           `gorm:"column:include_year;default:true" json:"include_year"`
	IncludeMonth    bool           `gorm:"column:include_month;default:true" json:"include_month"`
	IncludeDay      bool           `gorm:"column:include_day;default:false" json:"include_day"`
	SequenceLength  int            `gorm:"column:sequence_length;default:4" json:"sequence_length"`
	SequenceStart   int64          `gorm:"column:sequence_start;default:1" json:"sequence_start"`
	CurrentSequence int64          `gorm:"column:current_sequence;default:0" json:"current_sequence"`
	Separator       string         `gorm:"size:8;column:separator;default:'-'" json:"separator"`
	IsActive        bool           `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (CodeFormat) TableName() string { return "code_formats" }

// NextSequence returns the value the next issuance will claim. Sequences
// issued are strictly increasing; SequenceStart acts as a floor so a fresh or
// reset counter yields exactly SequenceStart first.
func (f *CodeFormat) NextSequence() int64 {
	next := f.CurrentSequence + 1
	if next < f.SequenceStart {
		next = f.SequenceStart
	}
	return next
}

// NewDefault builds the provisioning-time format for one entity type.
func NewDefault(tenantID *uint64, entityType string) *CodeFormat {
	return &CodeFormat{
		TenantID:       tenantID,
		EntityType:     entityType,
		Prefix:         defaultPrefixes[entityType],
		IncludeYear:    true,
		IncludeMonth:   true,
		SequenceLength: DefaultSequenceLength,
		SequenceStart:  DefaultSequenceStart,
		Separator:      DefaultSeparator,
		IsActive:       true,
	}
}
