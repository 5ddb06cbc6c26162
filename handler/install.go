package handler

import (
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/inspector"
)

// Set holds the standard handlers installed on an inspector.
type Set struct {
	Blocks      map[catalog.Interface]*Blocks
	Subroutines map[catalog.Stage]*Subroutines
}

// Install registers the standard transforms and handlers for every
// interface of the inspector: typed variables, resolved block members and
// per-stage subroutine selection.
func Install(insp *inspector.Inspector) *Set {
	set := &Set{
		Blocks:      make(map[catalog.Interface]*Blocks),
		Subroutines: make(map[catalog.Stage]*Subroutines),
	}
	for _, iface := range insp.Interfaces() {
		switch iface.Category() {
		case catalog.CategoryUniform, catalog.CategoryProgramInput, catalog.CategoryProgramOutput,
			catalog.CategoryBufferVariable, catalog.CategoryTransformFeedbackVarying:
			insp.SetTransform(iface, VariableTransform)
		case catalog.CategoryUniformBlock, catalog.CategoryShaderStorageBlock,
			catalog.CategoryAtomicCounterBuffer, catalog.CategoryTransformFeedbackBuffer:
			b, err := NewBlocks(iface)
			if err != nil {
				continue
			}
			insp.SetHandler(iface, b)
			set.Blocks[iface] = b
		case catalog.CategorySubroutineUniform:
			s, err := NewSubroutines(iface)
			if err != nil {
				continue
			}
			insp.SetHandler(iface, s)
			set.Subroutines[s.Stage()] = s
		}
	}
	return set
}
