package inspector

import (
	"slices"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/introspect"
	"github.com/wippyai/glinspect/resource"
)

// State is the pipeline state of an Inspector.
type State uint8

const (
	StateEmpty State = iota
	StateCollecting
	StateLinking
	StateReady
	StatePreDrawing
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCollecting:
		return "collecting"
	case StateLinking:
		return "linking"
	case StateReady:
		return "ready"
	case StatePreDrawing:
		return "pre-drawing"
	}
	return "unknown"
}

// RecompileFunc produces a freshly linked program handle.
type RecompileFunc func() (uint32, error)

// Option configures an Inspector.
type Option func(*Inspector)

// WithName sets a display name for the program.
func WithName(name string) Option {
	return func(i *Inspector) { i.name = name }
}

// WithRecompile installs the callback used by Relink.
func WithRecompile(fn RecompileFunc) Option {
	return func(i *Inspector) { i.recompile = fn }
}

// WithInterfaces restricts and orders the interfaces collected. Interfaces
// outside the catalog are dropped.
func WithInterfaces(ifaces ...catalog.Interface) Option {
	return func(i *Inspector) {
		var out []catalog.Interface
		for _, iface := range ifaces {
			if iface.Valid() && !slices.Contains(out, iface) {
				out = append(out, iface)
			}
		}
		i.ifaces = out
	}
}

// Inspector owns the collected data of one program. It is not safe for
// concurrent use and must be driven from the thread owning the context.
type Inspector struct {
	native    glinspect.Native
	recompile RecompileFunc
	table     *resource.Table
	index     map[catalog.Interface]map[string]uint32
	failures  map[catalog.Interface]error
	registry  registry
	name      string
	ifaces    []catalog.Interface
	program   uint32
	gen       uint64
	state     State
}

// New creates an inspector for program. No native calls are made until
// Initialize.
func New(native glinspect.Native, program uint32, opts ...Option) *Inspector {
	i := &Inspector{
		native:   native,
		program:  program,
		table:    resource.NewTable(),
		index:    make(map[catalog.Interface]map[string]uint32),
		failures: make(map[catalog.Interface]error),
		registry: newRegistry(),
		ifaces:   catalog.All(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SetTransform registers the transform of an interface. Nil clears it.
func (i *Inspector) SetTransform(iface catalog.Interface, fn TransformFunc) {
	i.registry.setTransform(iface, fn)
}

// SetHandler registers the handler of an interface. Nil clears it. A
// registered handler's Initialize takes precedence over a transform.
func (i *Inspector) SetHandler(iface catalog.Interface, h Handler) {
	i.registry.setHandler(iface, h)
}

// Handler returns the handler registered for the interface.
func (i *Inspector) Handler(iface catalog.Interface) (Handler, bool) {
	h, ok := i.registry.handlers[iface]
	return h, ok
}

// Subscribe adds an observer for changes to the collected data.
func (i *Inspector) Subscribe(o resource.Observer) resource.Subscription {
	return i.table.Subscribe(o)
}

// Unsubscribe removes the observer added under the subscription.
func (i *Inspector) Unsubscribe(id resource.Subscription) bool {
	return i.table.Unsubscribe(id)
}

// Native returns the native context.
func (i *Inspector) Native() glinspect.Native { return i.native }

// Program returns the current program handle.
func (i *Inspector) Program() uint32 { return i.program }

// Name returns the display name.
func (i *Inspector) Name() string { return i.name }

// Generation counts completed Initialize calls. Resource indices from a
// different generation must not be reused.
func (i *Inspector) Generation() uint64 { return i.gen }

// State returns the pipeline state.
func (i *Inspector) State() State { return i.state }

// Interfaces returns the enumeration order.
func (i *Inspector) Interfaces() []catalog.Interface {
	return slices.Clone(i.ifaces)
}

// Query returns a native query for an interface of the current program.
func (i *Inspector) Query(iface catalog.Interface) (*introspect.Interface, error) {
	return introspect.New(i.native, i.program, iface)
}

// HasData reports whether the interface was collected in the current
// generation. A collected interface may have zero entries.
func (i *Inspector) HasData(iface catalog.Interface) bool {
	return i.table.Has(iface)
}

// Container returns the entries of a collected interface in index order.
func (i *Inspector) Container(iface catalog.Interface) ([]resource.Entry, error) {
	entries, ok := i.table.Get(iface)
	if !ok {
		return nil, errors.NotCollected(errors.PhaseQuery, iface.String())
	}
	return entries, nil
}

// ResourceIndex looks a resource up by name in the name index.
func (i *Inspector) ResourceIndex(iface catalog.Interface, name string) (uint32, error) {
	names, ok := i.index[iface]
	if !ok {
		return 0, errors.NotCollected(errors.PhaseQuery, iface.String())
	}
	index, ok := names[name]
	if !ok {
		return 0, errors.NotFound(errors.PhaseQuery, iface.String()+" resource", name)
	}
	return index, nil
}

// ByName returns the entry with the given name.
func (i *Inspector) ByName(iface catalog.Interface, name string) (resource.Entry, error) {
	index, err := i.ResourceIndex(iface, name)
	if err != nil {
		return nil, err
	}
	e, ok := i.table.Entry(iface, index)
	if !ok {
		return nil, errors.NotFound(errors.PhaseQuery, iface.String()+" resource", name)
	}
	return e, nil
}

// Failures returns the per-interface errors of the last generation.
func (i *Inspector) Failures() map[catalog.Interface]error {
	out := make(map[catalog.Interface]error, len(i.failures))
	for k, v := range i.failures {
		out[k] = v
	}
	return out
}

// Count is a live active-resource count of one interface.
type Count struct {
	Interface catalog.Interface
	Active    uint32
}

// ActiveCounts queries ACTIVE_RESOURCES for every interface in enumeration
// order, independent of the collected data. Interfaces with no active
// resources or whose query is rejected are skipped.
func (i *Inspector) ActiveCounts() []Count {
	var out []Count
	for _, iface := range i.ifaces {
		q, err := i.Query(iface)
		if err != nil {
			continue
		}
		n, err := q.ActiveResourceCount()
		if err != nil || n == 0 {
			continue
		}
		out = append(out, Count{Interface: iface, Active: n})
	}
	return out
}
