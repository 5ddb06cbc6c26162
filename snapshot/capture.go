package snapshot

import (
	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/introspect"
)

// Capture records every interface of a live program. Rejected interface
// queries are recorded in the interface's reject list and do not fail the
// capture; interfaces without active resources are omitted.
func Capture(native glinspect.Native, program uint32, name string) (*Program, error) {
	if program == 0 {
		return nil, errors.InvalidInput(errors.PhaseCollect, "program 0 cannot be captured")
	}
	p := &Program{ID: program, Name: name}
	for _, iface := range catalog.All() {
		in, err := captureInterface(native, program, iface)
		if err != nil {
			return nil, err
		}
		if in != nil {
			p.Interfaces = append(p.Interfaces, *in)
		}
	}
	return p, nil
}

func captureInterface(native glinspect.Native, program uint32, iface catalog.Interface) (*Interface, error) {
	q, err := introspect.New(native, program, iface)
	if err != nil {
		return nil, err
	}
	in := &Interface{Name: iface.String()}

	count, err := q.ActiveResourceCount()
	if err != nil {
		in.Reject = []string{"*"}
		return in, nil
	}
	if count == 0 {
		return nil, nil
	}

	arrayProp, maxParam, hasArray := catalog.ArrayProperty(iface)
	var arrayLen uint32
	if hasArray {
		if maxParam == catalog.MaxNumActiveVariables {
			arrayLen, err = q.MaxNumActiveVariables()
		} else {
			arrayLen, err = q.MaxNumCompatibleSubroutines()
		}
		if err != nil {
			in.Reject = append(in.Reject, maxParam.String())
			hasArray = false
		}
	}

	for i := uint32(0); i < count; i++ {
		named, err := q.NamedResource(i)
		if err != nil {
			in.Reject = []string{"*"}
			in.Resources = nil
			return in, nil
		}
		res := Resource{Name: named.Name, Properties: make(map[string]int32)}
		for _, prop := range named.Properties.Keys() {
			v := named.Properties[prop]
			switch prop {
			case catalog.NameLength, catalog.NumActiveVariables, catalog.NumCompatibleSubroutines:
				continue
			case catalog.Type:
				t := catalog.DataType(uint32(v))
				if _, known := catalog.ParseDataType(t.String()); known {
					res.Type = t.String()
					continue
				}
			}
			res.Properties[prop.String()] = v
		}
		if len(res.Properties) == 0 {
			res.Properties = nil
		}
		if hasArray && arrayLen > 0 {
			values, err := q.ArrayProperty(i, arrayProp, arrayLen)
			if err == nil {
				switch arrayProp {
				case catalog.ActiveVariables:
					res.ActiveVariables = values
				case catalog.CompatibleSubroutines:
					res.CompatibleSubroutines = values
				}
			}
		}
		in.Resources = append(in.Resources, res)
	}
	return in, nil
}
