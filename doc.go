// Package glinspect introspects linked GL shader programs.
//
// The module enumerates the active resources of every program interface
// (uniforms, blocks, inputs, outputs, buffer variables, atomic counter
// buffers, transform feedback varyings and buffers, subroutines and
// subroutine uniforms), queries the properties legal for each interface,
// resolves names and indexes resources by name. Handlers registered per
// interface turn raw records into typed ones and link interfaces together
// once every interface has been collected.
//
// # Architecture Overview
//
//	glinspect/          Root package with the Native boundary and scoped binding
//	├── catalog/        GL enums, per-interface property table, name lookup
//	├── resource/       PropertyMap, Resource, Named and Entry records
//	├── introspect/     Per-interface queries built on Native
//	├── inspector/      Two-phase collect/link pipeline and name index
//	├── handler/        Standard handlers (typed uniforms, blocks, subroutines)
//	├── snapshot/       TOML-described programs served through Native
//	├── opengl/         go-gl backed Native, shader compilation, hidden window
//	├── report/         Text rendering of an inspector
//	├── config/         CLI configuration
//	├── watch/          Shader source watcher for relinking
//	├── errors/         Structured error types
//	└── cmd/glinspect/  CLI: show, counts, dump, tui
//
// # Quick Start
//
//	insp := inspector.New(ctx, program, inspector.WithName("phong"))
//	set := handler.Install(insp)
//	if err := insp.Initialize(); err != nil {
//	    log.Printf("some interfaces were not collected: %v", err)
//	}
//	loc, err := insp.ResourceIndex(catalog.Uniform, "lightPos")
//	err = set.Subroutines[catalog.FragmentShader].Select(insp, "shadeModel", "toon")
//	err = insp.PrepareDraw()
//
// # Thread Safety
//
// Apart from the watch package, nothing in this module is safe for
// concurrent use. GL contexts are bound to one OS thread; every Native
// call, Initialize and PrepareDraw must run on that thread.
package glinspect
