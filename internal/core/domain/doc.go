// Package domain defines the core business entities for SIRIA.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Event: A normalised third-sector event announcement
//   - Category: A label from the fixed classification taxonomy
//   - SourceConfig: Declarative configuration for a config-driven source
//   - RunReport: The outcome of one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
