package models

import (
	"fmt"
	"strings"

	dErrors "verity/pkg/domain-errors"
)

// EntityType distinguishes the two kinds of subject the governance core scores.
type EntityType string

const (
	EntityUser  EntityType = "USER"
	EntityBrand EntityType = "BRAND"
)

// IsValid checks if the entity type is one of the supported values.
func (t EntityType) IsValid() bool {
	return t == EntityUser || t == EntityBrand
}

func (t EntityType) String() string {
	return string(t)
}

// ParseEntityType accepts either case ("brand" or "BRAND").
func ParseEntityType(s string) (EntityType, error) {
	t := EntityType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid entity type: must be 'USER' or 'BRAND'")
	}
	return t, nil
}

// EntityRef identifies a scored entity.
type EntityRef struct {
	Type EntityType
	ID   string
}

// Key is the stable "TYPE:id" form used for locks, audit subjects and map keys.
func (r EntityRef) Key() string {
	return fmt.Sprintf("%s:%s", r.Type, r.ID)
}

// Validate rejects unknown types and blank identifiers.
func (r EntityRef) Validate() error {
	if !r.Type.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid entity type: must be 'USER' or 'BRAND'")
	}
	if strings.TrimSpace(r.ID) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "entity id is required")
	}
	return nil
}
