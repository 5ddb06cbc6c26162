package catalog

// Interface is a GL program interface enum (GL_UNIFORM, GL_PROGRAM_INPUT, ...).
type Interface uint32

const (
	Uniform                         Interface = 0x92E1
	UniformBlock                    Interface = 0x92E2
	ProgramInput                    Interface = 0x92E3
	ProgramOutput                   Interface = 0x92E4
	BufferVariable                  Interface = 0x92E5
	ShaderStorageBlock              Interface = 0x92E6
	AtomicCounterBuffer             Interface = 0x92C0
	VertexSubroutine                Interface = 0x92E8
	TessControlSubroutine           Interface = 0x92E9
	TessEvaluationSubroutine        Interface = 0x92EA
	GeometrySubroutine              Interface = 0x92EB
	FragmentSubroutine              Interface = 0x92EC
	ComputeSubroutine               Interface = 0x92ED
	VertexSubroutineUniform         Interface = 0x92EE
	TessControlSubroutineUniform    Interface = 0x92EF
	TessEvaluationSubroutineUniform Interface = 0x92F0
	GeometrySubroutineUniform       Interface = 0x92F1
	FragmentSubroutineUniform       Interface = 0x92F2
	ComputeSubroutineUniform        Interface = 0x92F3
	TransformFeedbackVarying        Interface = 0x92F4
	TransformFeedbackBuffer         Interface = 0x8C8E
)

// Parameter is a pname accepted by glGetProgramInterfaceiv.
type Parameter uint32

const (
	ActiveResources             Parameter = 0x92F5
	MaxNameLength               Parameter = 0x92F6
	MaxNumActiveVariables       Parameter = 0x92F7
	MaxNumCompatibleSubroutines Parameter = 0x92F8
)

// Property is a resource property accepted by glGetProgramResourceiv.
type Property uint32

const (
	NameLength                    Property = 0x92F9
	Type                          Property = 0x92FA
	ArraySize                     Property = 0x92FB
	Offset                        Property = 0x92FC
	BlockIndex                    Property = 0x92FD
	ArrayStride                   Property = 0x92FE
	MatrixStride                  Property = 0x92FF
	IsRowMajor                    Property = 0x9300
	AtomicCounterBufferIndex      Property = 0x9301
	BufferBinding                 Property = 0x9302
	BufferDataSize                Property = 0x9303
	NumActiveVariables            Property = 0x9304
	ActiveVariables               Property = 0x9305
	ReferencedByVertexShader      Property = 0x9306
	ReferencedByTessControlShader Property = 0x9307
	ReferencedByTessEvalShader    Property = 0x9308
	ReferencedByGeometryShader    Property = 0x9309
	ReferencedByFragmentShader    Property = 0x930A
	ReferencedByComputeShader     Property = 0x930B
	TopLevelArraySize             Property = 0x930C
	TopLevelArrayStride           Property = 0x930D
	Location                      Property = 0x930E
	LocationIndex                 Property = 0x930F
	IsPerPatch                    Property = 0x92E7
	LocationComponent             Property = 0x934A
	TransformFeedbackBufferIndex  Property = 0x934B
	TransformFeedbackBufferStride Property = 0x934C
	NumCompatibleSubroutines      Property = 0x8E4A
	CompatibleSubroutines         Property = 0x8E4B
)

// Stage is a GL shader type enum.
type Stage uint32

const (
	VertexShader         Stage = 0x8B31
	TessControlShader    Stage = 0x8E88
	TessEvaluationShader Stage = 0x8E87
	GeometryShader       Stage = 0x8DD9
	FragmentShader       Stage = 0x8B30
	ComputeShader        Stage = 0x91B9
)

// Stages lists the shader stages in pipeline order.
var Stages = []Stage{
	VertexShader,
	TessControlShader,
	TessEvaluationShader,
	GeometryShader,
	FragmentShader,
	ComputeShader,
}

// ReferencedBy returns the REFERENCED_BY_*_SHADER property for the stage.
func (s Stage) ReferencedBy() Property {
	switch s {
	case VertexShader:
		return ReferencedByVertexShader
	case TessControlShader:
		return ReferencedByTessControlShader
	case TessEvaluationShader:
		return ReferencedByTessEvalShader
	case GeometryShader:
		return ReferencedByGeometryShader
	case FragmentShader:
		return ReferencedByFragmentShader
	case ComputeShader:
		return ReferencedByComputeShader
	}
	return 0
}

// DataType is a GLSL data type enum as reported by the TYPE property.
type DataType uint32

const (
	TypeFloat                    DataType = 0x1406
	TypeFloatVec2                DataType = 0x8B50
	TypeFloatVec3                DataType = 0x8B51
	TypeFloatVec4                DataType = 0x8B52
	TypeDouble                   DataType = 0x140A
	TypeInt                      DataType = 0x1404
	TypeIntVec2                  DataType = 0x8B53
	TypeIntVec3                  DataType = 0x8B54
	TypeIntVec4                  DataType = 0x8B55
	TypeUnsignedInt              DataType = 0x1405
	TypeUnsignedIntVec2          DataType = 0x8DC6
	TypeUnsignedIntVec3          DataType = 0x8DC7
	TypeUnsignedIntVec4          DataType = 0x8DC8
	TypeBool                     DataType = 0x8B56
	TypeBoolVec2                 DataType = 0x8B57
	TypeBoolVec3                 DataType = 0x8B58
	TypeBoolVec4                 DataType = 0x8B59
	TypeFloatMat2                DataType = 0x8B5A
	TypeFloatMat3                DataType = 0x8B5B
	TypeFloatMat4                DataType = 0x8B5C
	TypeSampler1D                DataType = 0x8B5D
	TypeSampler2D                DataType = 0x8B5E
	TypeSampler3D                DataType = 0x8B5F
	TypeSamplerCube              DataType = 0x8B60
	TypeSampler2DShadow          DataType = 0x8B62
	TypeImage2D                  DataType = 0x904D
	TypeUnsignedIntAtomicCounter DataType = 0x92DB
)

// ErrorCode is a value returned by glGetError.
type ErrorCode uint32

const (
	NoError                     ErrorCode = 0
	InvalidEnum                 ErrorCode = 0x0500
	InvalidValue                ErrorCode = 0x0501
	InvalidOperation            ErrorCode = 0x0502
	StackOverflow               ErrorCode = 0x0503
	StackUnderflow              ErrorCode = 0x0504
	OutOfMemory                 ErrorCode = 0x0505
	InvalidFramebufferOperation ErrorCode = 0x0506
)

// InvalidIndex is GL_INVALID_INDEX, returned by glGetProgramResourceIndex
// for names that do not match an active resource.
const InvalidIndex uint32 = 0xFFFFFFFF
