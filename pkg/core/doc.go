// Package core defines the shared language of the PipeForge compiler.
//
// This package contains:
//   - The AST node set produced by the parser (statements, expressions)
//   - Auxiliary clause types (TableRef, Join, OrderByItem, Assignment)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
