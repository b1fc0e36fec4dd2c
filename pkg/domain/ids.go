// Package domain holds identifier primitives parsed at trust boundaries.
package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	dErrors "verity/pkg/domain-errors"
)

// maxExternalIDLength bounds identifiers owned by external systems (brands, users,
// complaints, responses).
const maxExternalIDLength = 128

// ExternalID is an opaque identifier issued by the complaint platform.
type ExternalID string

// ParseCaseID parses a case identifier. Empty, malformed and nil UUIDs are rejected.
func ParseCaseID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "case id is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid case id format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "case id cannot be nil")
	}
	return id, nil
}

// ParseExternalID trims s and rejects values that are empty, too long, not valid
// UTF-8 or contain control characters. field names the value in error messages.
func ParseExternalID(field, s string) (ExternalID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	if len(s) > maxExternalIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" is too long")
	}
	if !utf8.ValidString(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, field+" must be valid UTF-8")
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", dErrors.New(dErrors.CodeInvalidInput, field+" contains control characters")
		}
	}
	return ExternalID(s), nil
}

func (id ExternalID) String() string {
	return string(id)
}
