package opengl

import (
	"github.com/go-gl/gl/v4.3-core/gl"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
)

// Context issues program introspection calls against the current GL
// context. Every method must run on the thread that owns the context.
type Context struct{}

var (
	_ glinspect.Native           = (*Context)(nil)
	_ glinspect.SubroutineSetter = (*Context)(nil)
)

// NewContext loads the GL 4.3 entry points of the current context.
func NewContext() (*Context, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	Logger().Debug("GL initialized")
	return &Context{}, nil
}

// maxQueuedErrors bounds the drain loop; a lost context keeps reporting
// CONTEXT_LOST.
const maxQueuedErrors = 16

// check drains the GL error queue and reports the first error raised by
// call.
func check(call string) error {
	code := catalog.ErrorCode(gl.GetError())
	if code == catalog.NoError {
		return nil
	}
	for i := 0; i < maxQueuedErrors && gl.GetError() != gl.NO_ERROR; i++ {
	}
	return &glinspect.GLError{Call: call, Code: code}
}

func (c *Context) ProgramInterface(program uint32, iface catalog.Interface, pname catalog.Parameter) (int32, error) {
	var v int32
	gl.GetProgramInterfaceiv(program, uint32(iface), uint32(pname), &v)
	if err := check("glGetProgramInterfaceiv"); err != nil {
		return 0, err
	}
	return v, nil
}

// ProgramResource returns only the values the driver wrote.
func (c *Context) ProgramResource(program uint32, iface catalog.Interface, index uint32, props []catalog.Property) ([]int32, error) {
	if len(props) == 0 {
		return nil, nil
	}
	enums := make([]uint32, len(props))
	for i, p := range props {
		enums[i] = uint32(p)
	}
	out := make([]int32, len(props))
	var written int32
	gl.GetProgramResourceiv(program, uint32(iface), index, int32(len(enums)), &enums[0], int32(len(out)), &written, &out[0])
	if err := check("glGetProgramResourceiv"); err != nil {
		return nil, err
	}
	return out[:min(int(max(written, 0)), len(out))], nil
}

func (c *Context) ProgramResourceArray(program uint32, iface catalog.Interface, index uint32, prop catalog.Property, length uint32) ([]int32, error) {
	if length == 0 {
		return nil, nil
	}
	enum := uint32(prop)
	out := make([]int32, length)
	var written int32
	gl.GetProgramResourceiv(program, uint32(iface), index, 1, &enum, int32(length), &written, &out[0])
	if err := check("glGetProgramResourceiv"); err != nil {
		return nil, err
	}
	return out[:min(int(max(written, 0)), len(out))], nil
}

// ProgramResourceName returns at most bufSize-1 bytes, without the
// terminator.
func (c *Context) ProgramResourceName(program uint32, iface catalog.Interface, index uint32, bufSize int32) (string, error) {
	if bufSize <= 0 {
		return "", nil
	}
	buf := make([]uint8, bufSize)
	var length int32
	gl.GetProgramResourceName(program, uint32(iface), index, bufSize, &length, &buf[0])
	if err := check("glGetProgramResourceName"); err != nil {
		return "", err
	}
	return string(buf[:min(int(max(length, 0)), len(buf)-1)]), nil
}

func (c *Context) ProgramResourceIndex(program uint32, iface catalog.Interface, name string) (uint32, error) {
	cname, free := gl.Strs(name + "\x00")
	defer free()
	idx := gl.GetProgramResourceIndex(program, uint32(iface), *cname)
	if err := check("glGetProgramResourceIndex"); err != nil {
		return catalog.InvalidIndex, err
	}
	return idx, nil
}

// CurrentProgram reads GL_CURRENT_PROGRAM.
func (c *Context) CurrentProgram() (uint32, error) {
	var v int32
	gl.GetIntegerv(gl.CURRENT_PROGRAM, &v)
	if err := check("glGetIntegerv"); err != nil {
		return 0, err
	}
	return glinspect.Positive(v), nil
}

func (c *Context) UseProgram(program uint32) error {
	gl.UseProgram(program)
	return check("glUseProgram")
}

// UniformSubroutines uploads the subroutine selection of stage for the
// bound program.
func (c *Context) UniformSubroutines(stage catalog.Stage, indices []uint32) error {
	if len(indices) == 0 {
		return nil
	}
	gl.UniformSubroutinesuiv(uint32(stage), int32(len(indices)), &indices[0])
	return check("glUniformSubroutinesuiv")
}

// DeleteProgram releases a program object.
func (c *Context) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}
