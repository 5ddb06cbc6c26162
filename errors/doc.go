// Package errors provides structured error types for the glinspect module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a resource path (interface and property names), detail and
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseQuery, errors.KindNativeQueryRejected).
//		Path("ATOMIC_COUNTER_BUFFER", "MAX_NAME_LENGTH").
//		Cause(glErr).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnsupportedCategory(errors.PhaseCatalog, iface)
//	err := errors.NotFound(errors.PhaseLink, "resource", "lightPos")
//
// All errors implement the standard error interface and support errors.Is/As.
// IsKind and IsNotFound match on Kind alone.
package errors
