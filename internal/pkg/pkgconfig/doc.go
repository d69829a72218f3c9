// Package pkgconfig provides a small abstraction for reading configuration values.
//
// The application expects config values to come from a concrete implementation
// (for example Viper). Commands and business code depend on the Config
// interface so they stay easy to test and do not care where values come from
// (command-line flags, RETIP_* environment variables, a YAML file or defaults).
package pkgconfig
