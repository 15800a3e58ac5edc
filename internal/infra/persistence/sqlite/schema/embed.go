// Package schema holds the bundled SQLite schema for the user store.
package schema

import _ "embed"

//go:embed schema.sql
var SQL string
