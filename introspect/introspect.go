package introspect

import (
	"go.uber.org/zap"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/resource"
)

// Interface queries one program interface of one program. It holds no
// state beyond its identity; every query goes to the native layer.
type Interface struct {
	native  glinspect.Native
	props   []catalog.Property
	program uint32
	iface   catalog.Interface
}

// New creates a query for the interface of the program.
func New(native glinspect.Native, program uint32, iface catalog.Interface) (*Interface, error) {
	props, err := catalog.PropertiesFor(iface)
	if err != nil {
		return nil, err
	}
	return &Interface{
		native:  native,
		props:   props,
		program: program,
		iface:   iface,
	}, nil
}

// Program returns the program handle.
func (q *Interface) Program() uint32 { return q.program }

// Interface returns the queried interface.
func (q *Interface) Interface() catalog.Interface { return q.iface }

// Properties returns the scalar property set queried for each resource.
func (q *Interface) Properties() []catalog.Property {
	out := make([]catalog.Property, len(q.props))
	copy(out, q.props)
	return out
}

func (q *Interface) scalar(pname catalog.Parameter) (uint32, error) {
	v, err := q.native.ProgramInterface(q.program, q.iface, pname)
	if err != nil {
		return 0, errors.NativeQueryRejected([]string{q.iface.String(), pname.String()}, err)
	}
	return glinspect.Positive(v), nil
}

// ActiveResourceCount returns the number of active resources.
func (q *Interface) ActiveResourceCount() (uint32, error) {
	return q.scalar(catalog.ActiveResources)
}

// MaxNameLength returns the longest name length including the terminator.
func (q *Interface) MaxNameLength() (uint32, error) {
	return q.scalar(catalog.MaxNameLength)
}

// MaxNumActiveVariables returns the largest ACTIVE_VARIABLES length.
func (q *Interface) MaxNumActiveVariables() (uint32, error) {
	return q.scalar(catalog.MaxNumActiveVariables)
}

// MaxNumCompatibleSubroutines returns the largest COMPATIBLE_SUBROUTINES length.
func (q *Interface) MaxNumCompatibleSubroutines() (uint32, error) {
	return q.scalar(catalog.MaxNumCompatibleSubroutines)
}

// Query reads the given properties of resource index. Only the values
// written by the native layer are zipped with their keys.
func (q *Interface) Query(index uint32, props []catalog.Property) (resource.PropertyMap, error) {
	m := make(resource.PropertyMap, len(props))
	if len(props) == 0 {
		return m, nil
	}
	values, err := q.native.ProgramResource(q.program, q.iface, index, props)
	if err != nil {
		return nil, errors.NativeQueryRejected([]string{q.iface.String(), "resource"}, err)
	}
	n := min(len(values), len(props))
	for i := 0; i < n; i++ {
		m[props[i]] = values[i]
	}
	return m, nil
}

// ResourceProperties reads the catalog property set of resource index.
func (q *Interface) ResourceProperties(index uint32) (resource.PropertyMap, error) {
	return q.Query(index, q.props)
}

// ArrayProperty reads an array-valued property with a buffer of length
// values. A zero length makes no native call.
func (q *Interface) ArrayProperty(index uint32, prop catalog.Property, length uint32) ([]int32, error) {
	if length == 0 {
		return []int32{}, nil
	}
	values, err := q.native.ProgramResourceArray(q.program, q.iface, index, prop, length)
	if err != nil {
		return nil, errors.NativeQueryRejected([]string{q.iface.String(), prop.String()}, err)
	}
	if uint32(len(values)) > length {
		values = values[:length]
	}
	return values, nil
}

func (q *Interface) indices(index uint32, prop catalog.Property, length uint32) ([]uint32, error) {
	values, err := q.ArrayProperty(index, prop, length)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(values))
	for i, v := range values {
		out[i] = glinspect.Positive(v)
	}
	return out, nil
}

// ActiveVariables reads ACTIVE_VARIABLES of a block or buffer resource.
func (q *Interface) ActiveVariables(index, length uint32) ([]uint32, error) {
	return q.indices(index, catalog.ActiveVariables, length)
}

// CompatibleSubroutines reads COMPATIBLE_SUBROUTINES of a subroutine uniform.
func (q *Interface) CompatibleSubroutines(index, length uint32) ([]uint32, error) {
	return q.indices(index, catalog.CompatibleSubroutines, length)
}

// ResourceName returns the name of resource index, at most bufSize-1
// characters long.
func (q *Interface) ResourceName(index uint32, bufSize uint32) (string, error) {
	if bufSize == 0 {
		return "", nil
	}
	name, err := q.native.ProgramResourceName(q.program, q.iface, index, int32(bufSize))
	if err != nil {
		return "", errors.NativeQueryRejected([]string{q.iface.String(), "name"}, err)
	}
	if limit := int(bufSize) - 1; len(name) > limit {
		name = name[:limit]
	}
	return name, nil
}

// DefaultResourceName sizes the name buffer from MaxNameLength.
func (q *Interface) DefaultResourceName(index uint32) (string, error) {
	size, err := q.MaxNameLength()
	if err != nil {
		return "", err
	}
	return q.ResourceName(index, size)
}

// ResourceIndex looks a resource up by name.
func (q *Interface) ResourceIndex(name string) (uint32, error) {
	index, err := q.native.ProgramResourceIndex(q.program, q.iface, name)
	if err != nil {
		return 0, errors.NativeQueryRejected([]string{q.iface.String(), "index"}, err)
	}
	if index == catalog.InvalidIndex {
		return 0, errors.NotFound(errors.PhaseQuery, q.iface.String()+" resource", name)
	}
	return index, nil
}

// Resource reads resource index with the catalog property set.
func (q *Interface) Resource(index uint32) (resource.Resource, error) {
	props, err := q.ResourceProperties(index)
	if err != nil {
		return resource.Resource{}, err
	}
	return resource.Resource{Index: index, Properties: props}, nil
}

// NamedResource reads resource index and resolves its name. Name
// resolution never fails: a missing or non-positive NAME_LENGTH, or a
// native failure, yields an empty name.
func (q *Interface) NamedResource(index uint32) (resource.Named, error) {
	res, err := q.Resource(index)
	if err != nil {
		return resource.Named{}, err
	}
	return resource.Named{Name: q.bestEffortName(res), Resource: res}, nil
}

func (q *Interface) bestEffortName(res resource.Resource) string {
	length, ok := res.Properties.Get(catalog.NameLength)
	if !ok || length <= 0 {
		return ""
	}
	name, err := q.ResourceName(res.Index, uint32(length))
	if err != nil {
		Logger().Debug("resource name unavailable",
			zap.Stringer("interface", q.iface),
			zap.Uint32("index", res.Index),
			zap.Error(err))
		return ""
	}
	return name
}

// maxPrealloc bounds the capacity reserved from a native resource count.
const maxPrealloc = 256

// AllResources reads every active resource in ascending index order.
func (q *Interface) AllResources() ([]resource.Resource, error) {
	count, err := q.ActiveResourceCount()
	if err != nil {
		return nil, err
	}
	out := make([]resource.Resource, 0, min(count, maxPrealloc))
	for i := uint32(0); i < count; i++ {
		res, err := q.Resource(i)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// AllNamedResources reads and names every active resource in ascending
// index order.
func (q *Interface) AllNamedResources() ([]resource.Named, error) {
	count, err := q.ActiveResourceCount()
	if err != nil {
		return nil, err
	}
	out := make([]resource.Named, 0, min(count, maxPrealloc))
	for i := uint32(0); i < count; i++ {
		res, err := q.NamedResource(i)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}
