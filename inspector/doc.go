// Package inspector collects every program interface of one program and
// links them together.
//
// # Pipeline
//
// An Inspector moves through these states:
//
//	Empty -> Collecting -> Linking -> Ready
//	Ready -> PreDrawing -> Ready        (PrepareDraw, once per frame)
//	Ready -> Empty -> Collecting ...    (Relink)
//
// Collecting enumerates every interface in a fixed order and converts each
// resource through the interface's Handler, else its TransformFunc, else
// stores it unchanged. Once every interface is collected the name index is
// rebuilt and Linking runs the PostInit pass of every handler, so a handler
// may rely on the collected data of any sibling interface but never on a
// sibling's PostInit having run.
//
// # Failures
//
// A rejected native query or failing handler removes its interface from the
// generation without stopping the others. Initialize returns the combined
// errors; Failures reports them per interface. Lookups distinguish an
// interface that was never collected (not_collected) from a missing name
// (not_found); errors.IsNotFound matches both.
//
// # Usage
//
//	insp := inspector.New(ctx, program,
//	    inspector.WithName("phong"),
//	    inspector.WithRecompile(src.Compile),
//	)
//	insp.SetTransform(catalog.Uniform, handler.UniformTransform)
//	if err := insp.Initialize(); err != nil {
//	    log.Printf("partial introspection: %v", err)
//	}
//
//	for frame := range frames {
//	    _ = insp.PrepareDraw()
//	    draw(frame)
//	}
//
// Inspectors are not safe for concurrent use. Handlers must not call
// Initialize, PrepareDraw or Relink.
package inspector
