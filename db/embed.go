// Package db embeds the database schema.
package db

import _ "embed"

// Schema contains the DDL for the storefront tables. Statements are
// idempotent (IF NOT EXISTS) so the schema can be re-applied at startup.
//
//go:embed migrations/001_schema.sql
var Schema string
