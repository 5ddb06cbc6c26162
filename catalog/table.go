package catalog

import (
	"slices"

	"github.com/wippyai/glinspect/errors"
)

// Category groups program interfaces that share a property set.
// Subroutine and subroutine-uniform interfaces exist once per shader stage
// but belong to a single category each.
type Category uint8

const (
	CategoryUnknown Category = iota
	CategoryUniform
	CategoryUniformBlock
	CategoryProgramInput
	CategoryProgramOutput
	CategoryBufferVariable
	CategoryShaderStorageBlock
	CategoryAtomicCounterBuffer
	CategoryTransformFeedbackVarying
	CategoryTransformFeedbackBuffer
	CategorySubroutineUniform
	CategorySubroutine
)

// Categories lists the supported categories.
var Categories = []Category{
	CategoryUniform,
	CategoryUniformBlock,
	CategoryProgramInput,
	CategoryProgramOutput,
	CategoryBufferVariable,
	CategoryShaderStorageBlock,
	CategoryAtomicCounterBuffer,
	CategoryTransformFeedbackVarying,
	CategoryTransformFeedbackBuffer,
	CategorySubroutineUniform,
	CategorySubroutine,
}

var referencedBy = []Property{
	ReferencedByVertexShader,
	ReferencedByTessControlShader,
	ReferencedByTessEvalShader,
	ReferencedByGeometryShader,
	ReferencedByFragmentShader,
	ReferencedByComputeShader,
}

func concat(parts ...[]Property) []Property {
	var out []Property
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

//	                         TYPE  ARRAY_SIZE  LOCATION  NAME_LENGTH  REFERENCED_BY_*
//	UNIFORM                    x       x          x          x             x        + OFFSET BLOCK_INDEX ARRAY_STRIDE MATRIX_STRIDE IS_ROW_MAJOR
//	UNIFORM_BLOCK                                            x             x        + BUFFER_BINDING NUM_ACTIVE_VARIABLES BUFFER_DATA_SIZE
//	PROGRAM_INPUT              x       x          x          x             x        + IS_PER_PATCH LOCATION_COMPONENT
//	PROGRAM_OUTPUT             x       x          x          x             x        + IS_PER_PATCH LOCATION_COMPONENT LOCATION_INDEX
//	BUFFER_VARIABLE            x       x                     x             x        + OFFSET BLOCK_INDEX ARRAY_STRIDE MATRIX_STRIDE IS_ROW_MAJOR TOP_LEVEL_ARRAY_*
//	SHADER_STORAGE_BLOCK                                     x             x        + BUFFER_BINDING NUM_ACTIVE_VARIABLES BUFFER_DATA_SIZE
//	ATOMIC_COUNTER_BUFFER                                                  x        + BUFFER_BINDING NUM_ACTIVE_VARIABLES BUFFER_DATA_SIZE
//	TRANSFORM_FEEDBACK_VARYING x       x                     x                      + OFFSET TRANSFORM_FEEDBACK_BUFFER_INDEX
//	TRANSFORM_FEEDBACK_BUFFER                                                       + BUFFER_BINDING NUM_ACTIVE_VARIABLES TRANSFORM_FEEDBACK_BUFFER_STRIDE
//	*_SUBROUTINE_UNIFORM               x          x          x                      + NUM_COMPATIBLE_SUBROUTINES
//	*_SUBROUTINE                                             x

// properties lists the queried properties of every category.
var properties = map[Category][]Property{
	CategoryUniform: concat(referencedBy, []Property{
		Type, ArraySize, Location,
		Offset, BlockIndex, ArrayStride, MatrixStride, IsRowMajor,
		NameLength,
	}),
	CategoryUniformBlock: concat([]Property{
		BufferBinding, NumActiveVariables, BufferDataSize,
		NameLength,
	}, referencedBy),
	CategoryProgramInput: concat(referencedBy, []Property{
		Type, ArraySize, Location,
		NameLength,
		IsPerPatch, LocationComponent,
	}),
	CategoryProgramOutput: concat(referencedBy, []Property{
		Type, ArraySize, Location,
		NameLength,
		IsPerPatch, LocationComponent, LocationIndex,
	}),
	CategoryBufferVariable: concat(referencedBy, []Property{
		Type, ArraySize,
		Offset, BlockIndex, ArrayStride, MatrixStride, IsRowMajor,
		TopLevelArraySize, TopLevelArrayStride,
		NameLength,
	}),
	CategoryShaderStorageBlock: concat([]Property{
		BufferBinding, NumActiveVariables, BufferDataSize,
		NameLength,
	}, referencedBy),
	CategoryAtomicCounterBuffer: concat(referencedBy, []Property{
		BufferBinding, NumActiveVariables, BufferDataSize,
	}),
	CategoryTransformFeedbackVarying: {
		Type, ArraySize, Offset, TransformFeedbackBufferIndex, NameLength,
	},
	CategoryTransformFeedbackBuffer: {
		TransformFeedbackBufferStride, BufferBinding, NumActiveVariables,
	},
	CategorySubroutineUniform: {
		ArraySize, Location, NameLength, NumCompatibleSubroutines,
	},
	CategorySubroutine: {
		NameLength,
	},
}

// all is the fixed enumeration order used by the inspector.
var all = []Interface{
	Uniform,
	UniformBlock,
	AtomicCounterBuffer,
	ProgramInput,
	ProgramOutput,

	TransformFeedbackVarying,
	TransformFeedbackBuffer,
	BufferVariable,
	ShaderStorageBlock,

	VertexSubroutine,
	VertexSubroutineUniform,
	TessControlSubroutine,
	TessControlSubroutineUniform,
	TessEvaluationSubroutine,
	TessEvaluationSubroutineUniform,
	GeometrySubroutine,
	GeometrySubroutineUniform,
	FragmentSubroutine,
	FragmentSubroutineUniform,
	ComputeSubroutine,
	ComputeSubroutineUniform,
}

// All returns every supported interface in enumeration order.
func All() []Interface {
	return slices.Clone(all)
}

// Category classifies the interface. Unknown interfaces report CategoryUnknown.
func (i Interface) Category() Category {
	switch i {
	case Uniform:
		return CategoryUniform
	case UniformBlock:
		return CategoryUniformBlock
	case ProgramInput:
		return CategoryProgramInput
	case ProgramOutput:
		return CategoryProgramOutput
	case BufferVariable:
		return CategoryBufferVariable
	case ShaderStorageBlock:
		return CategoryShaderStorageBlock
	case AtomicCounterBuffer:
		return CategoryAtomicCounterBuffer
	case TransformFeedbackVarying:
		return CategoryTransformFeedbackVarying
	case TransformFeedbackBuffer:
		return CategoryTransformFeedbackBuffer
	case VertexSubroutineUniform, TessControlSubroutineUniform, TessEvaluationSubroutineUniform,
		GeometrySubroutineUniform, FragmentSubroutineUniform, ComputeSubroutineUniform:
		return CategorySubroutineUniform
	case VertexSubroutine, TessControlSubroutine, TessEvaluationSubroutine,
		GeometrySubroutine, FragmentSubroutine, ComputeSubroutine:
		return CategorySubroutine
	}
	return CategoryUnknown
}

// Valid reports whether the interface is one of the supported interfaces.
func (i Interface) Valid() bool {
	return i.Category() != CategoryUnknown
}

// Stage returns the shader stage of a subroutine or subroutine-uniform
// interface, and false for every other interface.
func (i Interface) Stage() (Stage, bool) {
	switch i {
	case VertexSubroutine, VertexSubroutineUniform:
		return VertexShader, true
	case TessControlSubroutine, TessControlSubroutineUniform:
		return TessControlShader, true
	case TessEvaluationSubroutine, TessEvaluationSubroutineUniform:
		return TessEvaluationShader, true
	case GeometrySubroutine, GeometrySubroutineUniform:
		return GeometryShader, true
	case FragmentSubroutine, FragmentSubroutineUniform:
		return FragmentShader, true
	case ComputeSubroutine, ComputeSubroutineUniform:
		return ComputeShader, true
	}
	return 0, false
}

// Subroutines returns the subroutine interface a subroutine-uniform
// interface selects from.
func (i Interface) Subroutines() (Interface, bool) {
	switch i {
	case VertexSubroutineUniform:
		return VertexSubroutine, true
	case TessControlSubroutineUniform:
		return TessControlSubroutine, true
	case TessEvaluationSubroutineUniform:
		return TessEvaluationSubroutine, true
	case GeometrySubroutineUniform:
		return GeometrySubroutine, true
	case FragmentSubroutineUniform:
		return FragmentSubroutine, true
	case ComputeSubroutineUniform:
		return ComputeSubroutine, true
	}
	return 0, false
}

// Properties returns the ordered scalar property set of the category.
func (c Category) Properties() ([]Property, error) {
	props, ok := properties[c]
	if !ok {
		return nil, errors.UnsupportedCategory(errors.PhaseCatalog, c)
	}
	return slices.Clone(props), nil
}

// PropertiesFor returns the ordered scalar property set queried for every
// resource of the interface.
func PropertiesFor(i Interface) ([]Property, error) {
	c := i.Category()
	if c == CategoryUnknown {
		return nil, errors.UnsupportedCategory(errors.PhaseCatalog, i)
	}
	return c.Properties()
}

// ArrayProperty returns the array-valued property of the interface and the
// interface parameter that bounds its length.
func ArrayProperty(i Interface) (Property, Parameter, bool) {
	switch i.Category() {
	case CategoryUniformBlock, CategoryShaderStorageBlock,
		CategoryAtomicCounterBuffer, CategoryTransformFeedbackBuffer:
		return ActiveVariables, MaxNumActiveVariables, true
	case CategorySubroutineUniform:
		return CompatibleSubroutines, MaxNumCompatibleSubroutines, true
	}
	return 0, 0, false
}

// Legal reports whether the property may be queried for resources of the
// interface, either as a scalar catalog property or as its array property.
func Legal(i Interface, p Property) bool {
	props, ok := properties[i.Category()]
	if !ok {
		return false
	}
	if slices.Contains(props, p) {
		return true
	}
	ap, _, ok := ArrayProperty(i)
	return ok && ap == p
}

// ParameterLegal reports whether glGetProgramInterfaceiv accepts the
// parameter for the interface.
func ParameterLegal(i Interface, pname Parameter) bool {
	if !i.Valid() {
		return false
	}
	switch pname {
	case ActiveResources:
		return true
	case MaxNameLength:
		return i != AtomicCounterBuffer && i != TransformFeedbackBuffer
	case MaxNumActiveVariables:
		ap, _, ok := ArrayProperty(i)
		return ok && ap == ActiveVariables
	case MaxNumCompatibleSubroutines:
		return i.Category() == CategorySubroutineUniform
	}
	return false
}
