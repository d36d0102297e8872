package codegen

import (
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid code generation input")

type GenerateInput struct {
	EntityType string
	EntityID   uint64
	TenantID   *uint64
	// IssuedBy is an optional actor reference (32-char hex) for the audit trail.
	IssuedBy string
	// Required selects the failure policy when no format is configured:
	// true surfaces codeformat.ErrNoFormat, false logs and skips the code.
	Required bool
}

type CodeDTO struct {
	CodeID     string    `json:"code_id"`
	TenantID   *uint64   `json:"tenant_id,omitempty"`
	EntityType string    `json:"entity_type"`
	EntityID   uint64    `json:"entity_id"`
	Code       string    `json:"code"`
	IssuedBy   string    `json:"issued_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CodeListDTO struct {
	Total int64     `json:"total"`
	Items []CodeDTO `json:"items"`
}
