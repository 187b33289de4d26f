// Package migrations embeds the SQLite schema for the save store.
package migrations

import "embed"

// FS holds the *.sql migrations at its root, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
