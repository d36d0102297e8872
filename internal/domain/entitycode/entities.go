package entitycode

import (
	"time"
)

// EntityCode is the immutable record of a code that was actually issued to a
// specific business entity. Created exactly once, never updated; removed only
// when the owning entity goes away.
type EntityCode struct {
	ID uint64 `gorm:"primaryKey;column:id"`
	// Public identifier (32-char lowercase hex)
	CodeID   string  `gorm:"column:code_id;type:char(32);not null;uniqueIndex:ux_entity_codes_code_id"`
	TenantID *uint64 `gorm:"column:tenant_id;uniqueIndex:ux_entity_codes_entity;uniqueIndex:ux_entity_codes_code"`
	// Entity-type key plus the target entity's numeric id. One code per
	// entity instance, enforced by ux_entity_codes_entity.
	EntityType string `gorm:"size:64;column:entity_type;not null;uniqueIndex:ux_entity_codes_entity"`
	EntityID   uint64 `gorm:"column:entity_id;not null;uniqueIndex:ux_entity_codes_entity"`
	// The final formatted string, unique per tenant scope.
	Code string `gorm:"size:64;column:code;not null;uniqueIndex:ux_entity_codes_code"`
	// Actor reference for the audit trail (32-char hex, may be empty).
	IssuedBy  string    `gorm:"column:issued_by;type:char(32)"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EntityCode) TableName() string { return "entity_codes" }
