// Package opengl connects the inspector to a real OpenGL 4.3 context
// through go-gl.
//
// [Context] implements glinspect.Native by issuing the program interface
// queries and translating glGetError codes to *glinspect.GLError values.
// [CompileProgram] and [FileProgram] build programs from GLSL sources, and
// [NewHiddenWindow] supplies an offscreen context for command line use.
//
// GL calls are bound to the thread owning the context; callers lock the
// OS thread with runtime.LockOSThread before using this package.
package opengl
