package tenant

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("tenant not found")

// Tenant is an isolated customer namespace. Code sequences and issued codes
// are scoped per tenant; a nil tenant reference elsewhere means global scope.
type Tenant struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex)
	TenantID    string         `gorm:"column:tenant_id;type:char(32);not null;uniqueIndex:ux_tenants_tenant_id" json:"tenant_id"`
	Name        string         `gorm:"size:100;column:name;not null;uniqueIndex:ux_tenants_name" json:"name"`
	Description string         `gorm:"type:text;column:description" json:"description"`
	// Owner actor reference (32-char hex), audit only.
	OwnerID   string         `gorm:"column:owner_id;type:char(32)" json:"owner_id,omitempty"`
	Active    bool           `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Tenant) TableName() string { return "tenants" }
