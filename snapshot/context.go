package snapshot

import (
	"slices"
	"strings"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
)

// Upload records one subroutine selection upload.
type Upload struct {
	Indices []uint32
	Program uint32
	Stage   catalog.Stage
}

type compiledResource struct {
	props   map[catalog.Property]int32
	arrays  map[catalog.Property][]int32
	name    string
	written int
}

type compiledInterface struct {
	rejectParams map[catalog.Parameter]bool
	rejectProps  map[catalog.Property]bool
	resources    []compiledResource
	rejectAll    bool
}

type compiledProgram struct {
	ifaces map[catalog.Interface]*compiledInterface
	name   string
}

// Context serves a snapshot through glinspect.Native and follows the GL
// error rules for illegal interface, parameter and property combinations.
type Context struct {
	programs map[uint32]*compiledProgram
	uploads  []Upload
	current  uint32
}

var (
	_ glinspect.Native           = (*Context)(nil)
	_ glinspect.SubroutineSetter = (*Context)(nil)
)

// NewContext validates the snapshot and builds a context over it.
func NewContext(s *Snapshot) (*Context, error) {
	programs, err := compileSnapshot(s)
	if err != nil {
		return nil, err
	}
	return &Context{programs: programs}, nil
}

func compileSnapshot(s *Snapshot) (map[uint32]*compiledProgram, error) {
	programs := make(map[uint32]*compiledProgram, len(s.Programs))
	for _, p := range s.Programs {
		if p.ID == 0 {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{p.Name}, "program id 0 is reserved")
		}
		if _, dup := programs[p.ID]; dup {
			return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
				Value(p.ID).
				Detail("duplicate program id %d", p.ID).
				Build()
		}
		cp, err := compileProgram(p)
		if err != nil {
			return nil, err
		}
		programs[p.ID] = cp
	}
	return programs, nil
}

// Replace swaps the served programs for those of s, the way relinking
// replaces a program's interface. The bound program and recorded uploads
// are kept. An invalid snapshot leaves the context unchanged.
func (c *Context) Replace(s *Snapshot) error {
	programs, err := compileSnapshot(s)
	if err != nil {
		return err
	}
	c.programs = programs
	return nil
}

// Reload replaces the served programs with the snapshot file at path.
func (c *Context) Reload(path string) error {
	s, err := Load(path)
	if err != nil {
		return err
	}
	return c.Replace(s)
}

// HasProgram reports whether program is served.
func (c *Context) HasProgram(program uint32) bool {
	_, ok := c.programs[program]
	return ok
}

// LoadContext reads a snapshot file and builds a context over it.
func LoadContext(path string) (*Context, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewContext(s)
}

func compileProgram(p Program) (*compiledProgram, error) {
	cp := &compiledProgram{
		name:   p.Name,
		ifaces: make(map[catalog.Interface]*compiledInterface),
	}
	for _, in := range p.Interfaces {
		iface, ok := catalog.ParseInterface(in.Name)
		if !ok {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{p.Name, in.Name}, "unknown interface")
		}
		if _, dup := cp.ifaces[iface]; dup {
			return nil, errors.InvalidData(errors.PhaseLoad, []string{p.Name, in.Name}, "duplicate interface")
		}
		ci, err := compileInterface(iface, in, []string{p.Name, in.Name})
		if err != nil {
			return nil, err
		}
		cp.ifaces[iface] = ci
	}
	return cp, nil
}

func compileInterface(iface catalog.Interface, in Interface, path []string) (*compiledInterface, error) {
	ci := &compiledInterface{
		rejectParams: make(map[catalog.Parameter]bool),
		rejectProps:  make(map[catalog.Property]bool),
	}
	for _, r := range in.Reject {
		if strings.TrimSpace(r) == "*" {
			ci.rejectAll = true
			continue
		}
		if pname, ok := catalog.ParseParameter(r); ok {
			ci.rejectParams[pname] = true
			continue
		}
		if prop, ok := catalog.ParseProperty(r); ok {
			ci.rejectProps[prop] = true
			continue
		}
		return nil, errors.InvalidData(errors.PhaseLoad, path, "unknown reject entry "+r)
	}

	arrayProp, _, hasArray := catalog.ArrayProperty(iface)
	for _, res := range in.Resources {
		cr := compiledResource{
			name:    res.Name,
			props:   defaults(iface),
			arrays:  make(map[catalog.Property][]int32),
			written: -1,
		}
		if res.Written != nil {
			cr.written = *res.Written
		}
		if res.Type != "" {
			t, ok := catalog.ParseDataType(res.Type)
			if !ok {
				return nil, errors.InvalidData(errors.PhaseLoad, append(path, res.Name), "unknown type "+res.Type)
			}
			cr.props[catalog.Type] = int32(t)
		}
		for key, v := range res.Properties {
			prop, ok := catalog.ParseProperty(key)
			if !ok || !catalog.Legal(iface, prop) || prop == catalog.NameLength {
				return nil, errors.InvalidData(errors.PhaseLoad, append(path, res.Name), "illegal property "+key)
			}
			cr.props[prop] = v
		}
		for _, a := range []struct {
			prop   catalog.Property
			values []int32
		}{
			{catalog.ActiveVariables, res.ActiveVariables},
			{catalog.CompatibleSubroutines, res.CompatibleSubroutines},
		} {
			if len(a.values) == 0 {
				continue
			}
			if !hasArray || a.prop != arrayProp {
				return nil, errors.InvalidData(errors.PhaseLoad, append(path, res.Name), "illegal property "+a.prop.String())
			}
			cr.arrays[a.prop] = slices.Clone(a.values)
		}
		if hasArray {
			count := int32(len(cr.arrays[arrayProp]))
			switch arrayProp {
			case catalog.ActiveVariables:
				cr.props[catalog.NumActiveVariables] = count
			case catalog.CompatibleSubroutines:
				cr.props[catalog.NumCompatibleSubroutines] = count
			}
		}
		if catalog.Legal(iface, catalog.NameLength) && res.Name != "" {
			cr.props[catalog.NameLength] = int32(len(res.Name) + 1)
		}
		ci.resources = append(ci.resources, cr)
	}
	return ci, nil
}

// defaults fills the legal scalar properties with the values a driver
// reports for a resource that does not use them.
func defaults(iface catalog.Interface) map[catalog.Property]int32 {
	props, _ := catalog.PropertiesFor(iface)
	m := make(map[catalog.Property]int32, len(props))
	for _, p := range props {
		switch p {
		case catalog.Location, catalog.BlockIndex, catalog.LocationIndex,
			catalog.AtomicCounterBufferIndex, catalog.TransformFeedbackBufferIndex:
			m[p] = -1
		case catalog.ArraySize:
			m[p] = 1
		default:
			m[p] = 0
		}
	}
	return m
}

func glError(call string, code catalog.ErrorCode) error {
	return &glinspect.GLError{Call: call, Code: code}
}

func (c *Context) lookup(call string, program uint32, iface catalog.Interface) (*compiledInterface, error) {
	p, ok := c.programs[program]
	if !ok {
		return nil, glError(call, catalog.InvalidValue)
	}
	if !iface.Valid() {
		return nil, glError(call, catalog.InvalidEnum)
	}
	ci, ok := p.ifaces[iface]
	if !ok {
		return &compiledInterface{}, nil
	}
	return ci, nil
}

// ProgramInterface implements glinspect.Native.
func (c *Context) ProgramInterface(program uint32, iface catalog.Interface, pname catalog.Parameter) (int32, error) {
	const call = "glGetProgramInterfaceiv"
	ci, err := c.lookup(call, program, iface)
	if err != nil {
		return 0, err
	}
	if !catalog.ParameterLegal(iface, pname) {
		return 0, glError(call, catalog.InvalidOperation)
	}
	if ci.rejectAll || ci.rejectParams[pname] {
		return 0, glError(call, catalog.InvalidEnum)
	}

	var out int32
	switch pname {
	case catalog.ActiveResources:
		out = int32(len(ci.resources))
	case catalog.MaxNameLength:
		for _, r := range ci.resources {
			if r.name != "" {
				out = max(out, int32(len(r.name)+1))
			}
		}
	case catalog.MaxNumActiveVariables:
		for _, r := range ci.resources {
			out = max(out, int32(len(r.arrays[catalog.ActiveVariables])))
		}
	case catalog.MaxNumCompatibleSubroutines:
		for _, r := range ci.resources {
			out = max(out, int32(len(r.arrays[catalog.CompatibleSubroutines])))
		}
	}
	return out, nil
}

func (c *Context) resource(call string, program uint32, iface catalog.Interface, index uint32) (*compiledInterface, *compiledResource, error) {
	ci, err := c.lookup(call, program, iface)
	if err != nil {
		return nil, nil, err
	}
	if ci.rejectAll {
		return nil, nil, glError(call, catalog.InvalidEnum)
	}
	if int(index) >= len(ci.resources) {
		return nil, nil, glError(call, catalog.InvalidValue)
	}
	return ci, &ci.resources[index], nil
}

// ProgramResource implements glinspect.Native. Array-valued properties
// write every element in place.
func (c *Context) ProgramResource(program uint32, iface catalog.Interface, index uint32, props []catalog.Property) ([]int32, error) {
	const call = "glGetProgramResourceiv"
	ci, r, err := c.resource(call, program, iface, index)
	if err != nil {
		return nil, err
	}
	out := make([]int32, 0, len(props))
	for _, p := range props {
		if !catalog.Legal(iface, p) {
			return nil, glError(call, catalog.InvalidOperation)
		}
		if ci.rejectProps[p] {
			return nil, glError(call, catalog.InvalidEnum)
		}
		if values, ok := r.arrays[p]; ok {
			out = append(out, values...)
			continue
		}
		out = append(out, r.props[p])
	}
	if r.written >= 0 && r.written < len(out) {
		out = out[:r.written]
	}
	return out, nil
}

// ProgramResourceArray implements glinspect.Native.
func (c *Context) ProgramResourceArray(program uint32, iface catalog.Interface, index uint32, prop catalog.Property, length uint32) ([]int32, error) {
	const call = "glGetProgramResourceiv"
	ci, r, err := c.resource(call, program, iface, index)
	if err != nil {
		return nil, err
	}
	if ap, _, ok := catalog.ArrayProperty(iface); !ok || ap != prop {
		return nil, glError(call, catalog.InvalidOperation)
	}
	if ci.rejectProps[prop] {
		return nil, glError(call, catalog.InvalidEnum)
	}
	values := r.arrays[prop]
	if uint32(len(values)) > length {
		values = values[:length]
	}
	return slices.Clone(values), nil
}

// ProgramResourceName implements glinspect.Native.
func (c *Context) ProgramResourceName(program uint32, iface catalog.Interface, index uint32, bufSize int32) (string, error) {
	const call = "glGetProgramResourceName"
	if !catalog.Legal(iface, catalog.NameLength) {
		return "", glError(call, catalog.InvalidEnum)
	}
	if bufSize < 0 {
		return "", glError(call, catalog.InvalidValue)
	}
	_, r, err := c.resource(call, program, iface, index)
	if err != nil {
		return "", err
	}
	name := r.name
	if bufSize == 0 {
		return "", nil
	}
	if limit := int(bufSize) - 1; len(name) > limit {
		name = name[:limit]
	}
	return name, nil
}

// ProgramResourceIndex implements glinspect.Native. Array names match with
// or without a trailing "[0]".
func (c *Context) ProgramResourceIndex(program uint32, iface catalog.Interface, name string) (uint32, error) {
	const call = "glGetProgramResourceIndex"
	if !catalog.Legal(iface, catalog.NameLength) {
		return 0, glError(call, catalog.InvalidEnum)
	}
	ci, err := c.lookup(call, program, iface)
	if err != nil {
		return 0, err
	}
	alt := strings.TrimSuffix(name, "[0]")
	for i, r := range ci.resources {
		if r.name == "" {
			continue
		}
		if r.name == name || r.name == alt || strings.TrimSuffix(r.name, "[0]") == name {
			return uint32(i), nil
		}
	}
	return catalog.InvalidIndex, nil
}

// CurrentProgram implements glinspect.Native.
func (c *Context) CurrentProgram() (uint32, error) {
	return c.current, nil
}

// UseProgram implements glinspect.Native. Program 0 unbinds.
func (c *Context) UseProgram(program uint32) error {
	if program != 0 {
		if _, ok := c.programs[program]; !ok {
			return glError("glUseProgram", catalog.InvalidValue)
		}
	}
	c.current = program
	return nil
}

// UniformSubroutines implements glinspect.SubroutineSetter for the bound
// program. The index count must match the stage's subroutine uniform
// locations and every index must name a subroutine of the stage.
func (c *Context) UniformSubroutines(stage catalog.Stage, indices []uint32) error {
	const call = "glUniformSubroutinesuiv"
	p, ok := c.programs[c.current]
	if !ok {
		return glError(call, catalog.InvalidOperation)
	}
	uniforms, subs, ok := stageInterfaces(stage)
	if !ok {
		return glError(call, catalog.InvalidEnum)
	}
	if len(indices) != locations(p.ifaces[uniforms]) {
		return glError(call, catalog.InvalidValue)
	}
	var available int
	if ci := p.ifaces[subs]; ci != nil {
		available = len(ci.resources)
	}
	for _, idx := range indices {
		if int(idx) >= available {
			return glError(call, catalog.InvalidValue)
		}
	}
	c.uploads = append(c.uploads, Upload{
		Program: c.current,
		Stage:   stage,
		Indices: slices.Clone(indices),
	})
	return nil
}

// Uploads returns the recorded subroutine uploads in call order.
func (c *Context) Uploads() []Upload {
	return slices.Clone(c.uploads)
}

// ProgramName returns the name of a program in the snapshot.
func (c *Context) ProgramName(program uint32) (string, bool) {
	p, ok := c.programs[program]
	if !ok {
		return "", false
	}
	return p.name, true
}

func stageInterfaces(stage catalog.Stage) (uniforms, subs catalog.Interface, ok bool) {
	for _, iface := range catalog.All() {
		if iface.Category() != catalog.CategorySubroutineUniform {
			continue
		}
		if s, _ := iface.Stage(); s == stage {
			subs, _ = iface.Subroutines()
			return iface, subs, true
		}
	}
	return 0, 0, false
}

// locations counts the subroutine uniform locations of a stage.
func locations(ci *compiledInterface) int {
	if ci == nil {
		return 0
	}
	n := 0
	for _, r := range ci.resources {
		loc := r.props[catalog.Location]
		size := max(r.props[catalog.ArraySize], 1)
		if loc >= 0 {
			n = max(n, int(loc+size))
		}
	}
	return n
}
