package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseCatalog Phase = "catalog" // property table lookup
	PhaseQuery   Phase = "query"   // native introspection call
	PhaseCollect Phase = "collect" // per-interface resource collection
	PhaseLink    Phase = "link"    // post-init handler pass
	PhaseDraw    Phase = "draw"    // pre-draw handler pass
	PhaseRelink  Phase = "relink"  // program recompilation
	PhaseLoad    Phase = "load"    // fixture/config loading
	PhaseNative  Phase = "native"  // native context setup and binding
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupportedCategory Kind = "unsupported_category"
	KindNativeQueryRejected Kind = "native_query_rejected"
	KindNotFound            Kind = "not_found"
	KindNotCollected        Kind = "not_collected"
	KindInvalidState        Kind = "invalid_state"
	KindUnsupported         Kind = "unsupported"
	KindInvalidInput        Kind = "invalid_input"
	KindInvalidData         Kind = "invalid_data"
	KindCompile             Kind = "compile"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsNotFound reports whether err is a lookup miss, either against a
// collected interface or against one that was never collected.
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound) || IsKind(err, KindNotCollected)
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the resource path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedCategory creates an error for an interface outside the catalog
func UnsupportedCategory(phase Phase, value any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupportedCategory,
		Detail: fmt.Sprintf("unexpected interface: %v", value),
		Value:  value,
	}
}

// NativeQueryRejected creates an error for a query the native layer refused
func NativeQueryRejected(path []string, cause error) *Error {
	return &Error{
		Phase:  PhaseQuery,
		Kind:   KindNativeQueryRejected,
		Path:   path,
		Detail: "native layer rejected query",
		Cause:  cause,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// NotCollected creates an error for a lookup against an interface that has
// no data in the current generation
func NotCollected(phase Phase, iface string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotCollected,
		Path:   []string{iface},
		Detail: "interface not collected",
	}
}

// InvalidState creates an error for an operation called in the wrong state
func InvalidState(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: detail,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Compile creates a shader compilation or link error
func Compile(stage, log string) *Error {
	return &Error{
		Phase:  PhaseRelink,
		Kind:   KindCompile,
		Path:   []string{stage},
		Detail: strings.TrimRight(log, "\x00\n "),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a fixture or config loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
