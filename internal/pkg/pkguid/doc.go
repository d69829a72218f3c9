// Package pkguid provides helpers for generating unique identifiers.
//
// Depending on the use case you can generate:
//   - String IDs (UUIDv7), used as run IDs attached to logs.
//   - Numeric IDs (Snowflake), used to mint split seeds when none is
//     configured so a run can still be reproduced from its logs.
package pkguid
