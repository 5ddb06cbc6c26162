// Package handler provides the standard per-interface handlers.
//
// VariableTransform decodes TYPE, ARRAY_SIZE, LOCATION, BLOCK_INDEX,
// OFFSET and the referencing stages into a Variable. Blocks reads the
// ACTIVE_VARIABLES of a block interface and, once every interface has been
// collected, resolves them into the member interface's entries.
// Subroutines resolves COMPATIBLE_SUBROUTINES of one stage, keeps a
// selection per uniform and uploads it before every frame through
// glinspect.SubroutineSetter.
//
//	set := handler.Install(insp)
//	_ = insp.Initialize()
//	_ = set.Subroutines[catalog.FragmentShader].Select(insp, "shadeModel", "toon")
//	_ = insp.PrepareDraw()
package handler
