package opengl

import (
	"os"
	"slices"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
)

// CompileProgram compiles the given GLSL sources and links them into a
// program. Shader objects are deleted once the program is linked.
func CompileProgram(sources map[catalog.Stage]string) (uint32, error) {
	if len(sources) == 0 {
		return 0, errors.InvalidInput(errors.PhaseRelink, "no shader sources")
	}

	stages := make([]catalog.Stage, 0, len(sources))
	for stage := range sources {
		stages = append(stages, stage)
	}
	slices.SortFunc(stages, func(a, b catalog.Stage) int {
		return slices.Index(catalog.Stages, a) - slices.Index(catalog.Stages, b)
	})

	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, stage := range stages {
		shader, err := compileShader(sources[stage], stage)
		if err != nil {
			return 0, err
		}
		shaders = append(shaders, shader)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetProgramInfoLog(program, logLen, nil, buf) })
		gl.DeleteProgram(program)
		return 0, errors.Compile("link", log)
	}
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}

	Logger().Debug("program linked", zap.Uint32("program", program), zap.Int("stages", len(stages)))
	return program, nil
}

func compileShader(source string, stage catalog.Stage) (uint32, error) {
	shader := gl.CreateShader(uint32(stage))
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := infoLog(logLen, func(buf *uint8) { gl.GetShaderInfoLog(shader, logLen, nil, buf) })
		gl.DeleteShader(shader)
		return 0, errors.Compile(stage.String(), log)
	}
	return shader, nil
}

func infoLog(length int32, read func(*uint8)) string {
	if length <= 0 {
		return ""
	}
	buf := make([]uint8, length)
	read(&buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}

// FileProgram compiles a program from GLSL files on disk. Compile re-reads
// the files every time, so it serves as the relink callback of an
// inspector watching those files.
type FileProgram struct {
	Sources map[catalog.Stage]string
	ctx     *Context
	last    uint32
}

// NewFileProgram creates a file-backed program for the given stage paths.
func NewFileProgram(ctx *Context, sources map[catalog.Stage]string) *FileProgram {
	return &FileProgram{Sources: sources, ctx: ctx}
}

// Paths returns the source paths.
func (p *FileProgram) Paths() []string {
	out := make([]string, 0, len(p.Sources))
	for _, path := range p.Sources {
		out = append(out, path)
	}
	slices.Sort(out)
	return out
}

// Compile reads the sources and links a new program. The previously
// compiled program is deleted only after the new one links.
func (p *FileProgram) Compile() (uint32, error) {
	sources := make(map[catalog.Stage]string, len(p.Sources))
	for stage, path := range p.Sources {
		data, err := os.ReadFile(path)
		if err != nil {
			return 0, errors.Wrap(errors.PhaseRelink, errors.KindInvalidInput, err, "read "+path)
		}
		sources[stage] = string(data)
	}
	program, err := CompileProgram(sources)
	if err != nil {
		return 0, err
	}
	if p.last != 0 && p.ctx != nil {
		p.ctx.DeleteProgram(p.last)
	}
	p.last = program
	return program, nil
}
