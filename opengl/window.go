package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/wippyai/glinspect/errors"
)

// Window is an invisible window owning a GL 4.3 core context.
type Window struct {
	win *glfw.Window
}

// NewHiddenWindow initializes glfw and makes a hidden window's context
// current on the calling thread. The caller must have locked the OS thread
// and must call Close on the same thread.
func NewHiddenWindow() (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(errors.PhaseNative, errors.KindUnsupported, err, "initialize glfw")
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(16, 16, "glinspect", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(errors.PhaseNative, errors.KindUnsupported, err, "create GL 4.3 context")
	}
	win.MakeContextCurrent()
	Logger().Debug("hidden GL window created")
	return &Window{win: win}, nil
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() {
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	glfw.Terminate()
}
