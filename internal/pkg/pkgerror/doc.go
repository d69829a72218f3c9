// Package pkgerror defines shared error types and sentinel errors used across
// the application.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, code and
//     the offending subject (column, extension, configuration key), which can
//     be mapped to process exit codes at the edge (commands).
package pkgerror
