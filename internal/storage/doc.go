// Package storage defines the persistence contract of the storefront.
//
// Every operation maps to a single table statement. Implementations live in
// subpackages: memstore keeps rows in process memory and pgstore talks to
// PostgreSQL. Both follow the same rules:
//
//   - single-row lookups return (nil, nil) when the row is absent
//   - creates generate the id and stamp created_at/updated_at
//   - updates take a Patch keyed by column name; unknown and managed
//     columns are dropped and updated_at is stamped
//   - deletes report whether a row was removed
package storage
