package glinspect

import (
	"fmt"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
)

// Native is the graphics context's program introspection surface.
// Implementations report GL errors (INVALID_ENUM, INVALID_OPERATION, ...)
// as returned errors; they never panic on an illegal combination.
type Native interface {
	// ProgramInterface wraps glGetProgramInterfaceiv.
	ProgramInterface(program uint32, iface catalog.Interface, pname catalog.Parameter) (int32, error)

	// ProgramResource wraps glGetProgramResourceiv for a batch of scalar
	// properties. The result holds the values actually written, in the order
	// of props; it may be shorter than props.
	ProgramResource(program uint32, iface catalog.Interface, index uint32, props []catalog.Property) ([]int32, error)

	// ProgramResourceArray wraps glGetProgramResourceiv for a single
	// array-valued property with a caller-supplied buffer length.
	ProgramResourceArray(program uint32, iface catalog.Interface, index uint32, prop catalog.Property, length uint32) ([]int32, error)

	// ProgramResourceName wraps glGetProgramResourceName. At most bufSize-1
	// characters are returned.
	ProgramResourceName(program uint32, iface catalog.Interface, index uint32, bufSize int32) (string, error)

	// ProgramResourceIndex wraps glGetProgramResourceIndex and returns
	// catalog.InvalidIndex for unmatched names.
	ProgramResourceIndex(program uint32, iface catalog.Interface, name string) (uint32, error)

	// CurrentProgram reports GL_CURRENT_PROGRAM.
	CurrentProgram() (uint32, error)

	// UseProgram wraps glUseProgram.
	UseProgram(program uint32) error
}

// SubroutineSetter is implemented by contexts that can upload subroutine
// uniform selections (glUniformSubroutinesuiv) for the bound program.
type SubroutineSetter interface {
	UniformSubroutines(stage catalog.Stage, indices []uint32) error
}

// GLError is a GL error code raised by a native call.
type GLError struct {
	Call string
	Code catalog.ErrorCode
}

func (e *GLError) Error() string {
	return fmt.Sprintf("%s: %s", e.Call, e.Code)
}

// Positive clamps non-positive native values to zero.
func Positive(num int32) uint32 {
	if num <= 0 {
		return 0
	}
	return uint32(num)
}

// WithProgram binds program for the duration of fn and restores the
// previously bound program on every exit path.
func WithProgram(n Native, program uint32, fn func() error) (err error) {
	prev, err := n.CurrentProgram()
	if err != nil {
		return errors.Wrap(errors.PhaseNative, errors.KindInvalidState, err, "read current program")
	}
	if err := n.UseProgram(program); err != nil {
		return errors.New(errors.PhaseNative, errors.KindInvalidState).
			Value(program).
			Cause(err).
			Detail("bind program %d", program).
			Build()
	}
	defer func() {
		if rerr := n.UseProgram(prev); rerr != nil && err == nil {
			err = errors.Wrap(errors.PhaseNative, errors.KindInvalidState, rerr, "restore previous program")
		}
	}()
	return fn()
}
