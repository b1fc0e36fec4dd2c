// Package schema embeds the Postgres DDL for the governance stores.
package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var ddl string

// OwnedTables lists the tables written by the governance stores.
var OwnedTables = []string{
	"trust_scores",
	"reputation_scores",
	"enforcement_actions",
	"responder_authenticity_scores",
	"escalation_cases",
}

// PlatformTables lists the read-model tables owned by the complaint platform.
var PlatformTables = []string{
	"brands",
	"consumers",
	"complaints",
	"complaint_ratings",
	"business_responses",
}

// DDL returns the embedded schema.
func DDL() string {
	return ddl
}

// Apply creates every table and index that does not exist yet. It is idempotent.
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply governance schema: %w", err)
	}
	return nil
}
