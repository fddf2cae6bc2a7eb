// Package archive records exported trades in Postgres as an optional
// secondary sink. Inserts are append-only and deduplicated on the
// exchange-assigned trade id, so re-archiving a batch is harmless.
package archive
