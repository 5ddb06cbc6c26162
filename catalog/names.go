package catalog

import (
	"fmt"
	"strings"
)

var interfaceNames = map[Interface]string{
	Uniform:                         "UNIFORM",
	UniformBlock:                    "UNIFORM_BLOCK",
	ProgramInput:                    "PROGRAM_INPUT",
	ProgramOutput:                   "PROGRAM_OUTPUT",
	BufferVariable:                  "BUFFER_VARIABLE",
	ShaderStorageBlock:              "SHADER_STORAGE_BLOCK",
	AtomicCounterBuffer:             "ATOMIC_COUNTER_BUFFER",
	VertexSubroutine:                "VERTEX_SUBROUTINE",
	TessControlSubroutine:           "TESS_CONTROL_SUBROUTINE",
	TessEvaluationSubroutine:        "TESS_EVALUATION_SUBROUTINE",
	GeometrySubroutine:              "GEOMETRY_SUBROUTINE",
	FragmentSubroutine:              "FRAGMENT_SUBROUTINE",
	ComputeSubroutine:               "COMPUTE_SUBROUTINE",
	VertexSubroutineUniform:         "VERTEX_SUBROUTINE_UNIFORM",
	TessControlSubroutineUniform:    "TESS_CONTROL_SUBROUTINE_UNIFORM",
	TessEvaluationSubroutineUniform: "TESS_EVALUATION_SUBROUTINE_UNIFORM",
	GeometrySubroutineUniform:       "GEOMETRY_SUBROUTINE_UNIFORM",
	FragmentSubroutineUniform:       "FRAGMENT_SUBROUTINE_UNIFORM",
	ComputeSubroutineUniform:        "COMPUTE_SUBROUTINE_UNIFORM",
	TransformFeedbackVarying:        "TRANSFORM_FEEDBACK_VARYING",
	TransformFeedbackBuffer:         "TRANSFORM_FEEDBACK_BUFFER",
}

var parameterNames = map[Parameter]string{
	ActiveResources:             "ACTIVE_RESOURCES",
	MaxNameLength:               "MAX_NAME_LENGTH",
	MaxNumActiveVariables:       "MAX_NUM_ACTIVE_VARIABLES",
	MaxNumCompatibleSubroutines: "MAX_NUM_COMPATIBLE_SUBROUTINES",
}

var propertyNames = map[Property]string{
	NameLength:                    "NAME_LENGTH",
	Type:                          "TYPE",
	ArraySize:                     "ARRAY_SIZE",
	Offset:                        "OFFSET",
	BlockIndex:                    "BLOCK_INDEX",
	ArrayStride:                   "ARRAY_STRIDE",
	MatrixStride:                  "MATRIX_STRIDE",
	IsRowMajor:                    "IS_ROW_MAJOR",
	AtomicCounterBufferIndex:      "ATOMIC_COUNTER_BUFFER_INDEX",
	BufferBinding:                 "BUFFER_BINDING",
	BufferDataSize:                "BUFFER_DATA_SIZE",
	NumActiveVariables:            "NUM_ACTIVE_VARIABLES",
	ActiveVariables:               "ACTIVE_VARIABLES",
	ReferencedByVertexShader:      "REFERENCED_BY_VERTEX_SHADER",
	ReferencedByTessControlShader: "REFERENCED_BY_TESS_CONTROL_SHADER",
	ReferencedByTessEvalShader:    "REFERENCED_BY_TESS_EVALUATION_SHADER",
	ReferencedByGeometryShader:    "REFERENCED_BY_GEOMETRY_SHADER",
	ReferencedByFragmentShader:    "REFERENCED_BY_FRAGMENT_SHADER",
	ReferencedByComputeShader:     "REFERENCED_BY_COMPUTE_SHADER",
	TopLevelArraySize:             "TOP_LEVEL_ARRAY_SIZE",
	TopLevelArrayStride:           "TOP_LEVEL_ARRAY_STRIDE",
	Location:                      "LOCATION",
	LocationIndex:                 "LOCATION_INDEX",
	IsPerPatch:                    "IS_PER_PATCH",
	LocationComponent:             "LOCATION_COMPONENT",
	TransformFeedbackBufferIndex:  "TRANSFORM_FEEDBACK_BUFFER_INDEX",
	TransformFeedbackBufferStride: "TRANSFORM_FEEDBACK_BUFFER_STRIDE",
	NumCompatibleSubroutines:      "NUM_COMPATIBLE_SUBROUTINES",
	CompatibleSubroutines:         "COMPATIBLE_SUBROUTINES",
}

var stageNames = map[Stage]string{
	VertexShader:         "VERTEX_SHADER",
	TessControlShader:    "TESS_CONTROL_SHADER",
	TessEvaluationShader: "TESS_EVALUATION_SHADER",
	GeometryShader:       "GEOMETRY_SHADER",
	FragmentShader:       "FRAGMENT_SHADER",
	ComputeShader:        "COMPUTE_SHADER",
}

var dataTypeNames = map[DataType]string{
	TypeFloat:                    "FLOAT",
	TypeFloatVec2:                "FLOAT_VEC2",
	TypeFloatVec3:                "FLOAT_VEC3",
	TypeFloatVec4:                "FLOAT_VEC4",
	TypeDouble:                   "DOUBLE",
	TypeInt:                      "INT",
	TypeIntVec2:                  "INT_VEC2",
	TypeIntVec3:                  "INT_VEC3",
	TypeIntVec4:                  "INT_VEC4",
	TypeUnsignedInt:              "UNSIGNED_INT",
	TypeUnsignedIntVec2:          "UNSIGNED_INT_VEC2",
	TypeUnsignedIntVec3:          "UNSIGNED_INT_VEC3",
	TypeUnsignedIntVec4:          "UNSIGNED_INT_VEC4",
	TypeBool:                     "BOOL",
	TypeBoolVec2:                 "BOOL_VEC2",
	TypeBoolVec3:                 "BOOL_VEC3",
	TypeBoolVec4:                 "BOOL_VEC4",
	TypeFloatMat2:                "FLOAT_MAT2",
	TypeFloatMat3:                "FLOAT_MAT3",
	TypeFloatMat4:                "FLOAT_MAT4",
	TypeSampler1D:                "SAMPLER_1D",
	TypeSampler2D:                "SAMPLER_2D",
	TypeSampler3D:                "SAMPLER_3D",
	TypeSamplerCube:              "SAMPLER_CUBE",
	TypeSampler2DShadow:          "SAMPLER_2D_SHADOW",
	TypeImage2D:                  "IMAGE_2D",
	TypeUnsignedIntAtomicCounter: "UNSIGNED_INT_ATOMIC_COUNTER",
}

var errorCodeNames = map[ErrorCode]string{
	NoError:                     "NO_ERROR",
	InvalidEnum:                 "INVALID_ENUM",
	InvalidValue:                "INVALID_VALUE",
	InvalidOperation:            "INVALID_OPERATION",
	StackOverflow:               "STACK_OVERFLOW",
	StackUnderflow:              "STACK_UNDERFLOW",
	OutOfMemory:                 "OUT_OF_MEMORY",
	InvalidFramebufferOperation: "INVALID_FRAMEBUFFER_OPERATION",
}

var categoryNames = map[Category]string{
	CategoryUniform:                  "uniform",
	CategoryUniformBlock:             "uniform-block",
	CategoryProgramInput:             "program-input",
	CategoryProgramOutput:            "program-output",
	CategoryBufferVariable:           "buffer-variable",
	CategoryShaderStorageBlock:       "shader-storage-block",
	CategoryAtomicCounterBuffer:      "atomic-counter-buffer",
	CategoryTransformFeedbackVarying: "transform-feedback-varying",
	CategoryTransformFeedbackBuffer:  "transform-feedback-buffer",
	CategorySubroutineUniform:        "subroutine-uniform",
	CategorySubroutine:               "subroutine",
}

func enumString[T ~uint32](names map[T]string, v T) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("0x%04X", uint32(v))
}

// parseEnum accepts the symbolic name with or without a "GL_" prefix,
// in any case.
func parseEnum[T ~uint32](names map[T]string, s string) (T, bool) {
	key := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "GL_")
	for v, name := range names {
		if name == key {
			return v, true
		}
	}
	return 0, false
}

func (i Interface) String() string { return enumString(interfaceNames, i) }
func (p Parameter) String() string { return enumString(parameterNames, p) }
func (p Property) String() string  { return enumString(propertyNames, p) }
func (s Stage) String() string     { return enumString(stageNames, s) }
func (t DataType) String() string  { return enumString(dataTypeNames, t) }
func (e ErrorCode) String() string { return enumString(errorCodeNames, e) }

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// ParseInterface converts a symbolic interface name such as "UNIFORM" or
// "GL_PROGRAM_INPUT".
func ParseInterface(s string) (Interface, bool) { return parseEnum(interfaceNames, s) }

// ParseProperty converts a symbolic property name such as "ARRAY_SIZE".
func ParseProperty(s string) (Property, bool) { return parseEnum(propertyNames, s) }

// ParseParameter converts a symbolic interface parameter name.
func ParseParameter(s string) (Parameter, bool) { return parseEnum(parameterNames, s) }

// ParseStage converts a symbolic shader stage name such as "FRAGMENT_SHADER".
func ParseStage(s string) (Stage, bool) { return parseEnum(stageNames, s) }

// ParseDataType converts a symbolic GLSL type name such as "FLOAT_VEC3".
func ParseDataType(s string) (DataType, bool) { return parseEnum(dataTypeNames, s) }
