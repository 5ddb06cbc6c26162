// Package snapshot describes linked programs as TOML data and serves them
// through glinspect.Native.
//
// A snapshot file lists programs, their interfaces and the active resources
// of each interface:
//
//	[[program]]
//	id = 1
//	name = "phong"
//
//	  [[program.interface]]
//	  name = "UNIFORM"
//
//	    [[program.interface.resource]]
//	    name = "lightPos"
//	    type = "FLOAT_VEC3"
//	    properties = { LOCATION = 0, REFERENCED_BY_VERTEX_SHADER = 1 }
//
// Context enforces the same legality rules a GL driver does: parameters and
// properties that do not apply to an interface are refused, names and
// indices are unavailable for atomic counter and transform feedback
// buffers, and NAME_LENGTH is derived from the resource name. The reject
// list of an interface forces refusals to exercise error paths.
//
// Capture walks a live program and produces the same description, so a
// program inspected once through a real context can be replayed without
// one:
//
//	p, err := snapshot.Capture(ctx, program, "phong")
//	err = snapshot.Save("phong.toml", &snapshot.Snapshot{Programs: []snapshot.Program{*p}})
package snapshot
