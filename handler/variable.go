package handler

import (
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/resource"
)

// Variable is a typed uniform, program input or output, buffer variable or
// transform feedback varying. Location, BlockIndex and Offset keep the GL
// value -1 for "not applicable".
type Variable struct {
	resource.Named
	Stages     []catalog.Stage
	Type       catalog.DataType
	ArraySize  uint32
	Location   int32
	BlockIndex int32
	Offset     int32
}

// HasLocation reports whether the variable has an assigned location.
func (v *Variable) HasLocation() bool { return v.Location >= 0 }

// InBlock reports whether the variable is a member of a block.
func (v *Variable) InBlock() bool { return v.BlockIndex >= 0 }

// Referenced reports whether the stage references the variable.
func (v *Variable) Referenced(stage catalog.Stage) bool {
	for _, s := range v.Stages {
		if s == stage {
			return true
		}
	}
	return false
}

func value(m resource.PropertyMap, p catalog.Property, def int32) int32 {
	if v, ok := m.Get(p); ok {
		return v
	}
	return def
}

// stages lists the stages whose REFERENCED_BY_* property is set.
func stages(m resource.PropertyMap) []catalog.Stage {
	var out []catalog.Stage
	for _, s := range catalog.Stages {
		if m.Bool(s.ReferencedBy()) {
			out = append(out, s)
		}
	}
	return out
}

// VariableTransform decodes the variable properties of a resource. It
// applies to every interface with TYPE in its property set.
func VariableTransform(res resource.Named) resource.Entry {
	p := res.Properties
	return &Variable{
		Named:      res,
		Type:       catalog.DataType(uint32(value(p, catalog.Type, 0))),
		ArraySize:  p.Uint(catalog.ArraySize),
		Location:   value(p, catalog.Location, -1),
		BlockIndex: value(p, catalog.BlockIndex, -1),
		Offset:     value(p, catalog.Offset, -1),
		Stages:     stages(p),
	}
}

// UniformTransform decodes uniforms.
func UniformTransform(res resource.Named) resource.Entry {
	return VariableTransform(res)
}
