package resource

import (
	"slices"

	"github.com/wippyai/glinspect/catalog"
)

// PropertyMap holds the properties queried for one resource. A missing key
// means the property is inapplicable or the native layer did not report it.
type PropertyMap map[catalog.Property]int32

// Get returns the raw value of the property.
func (m PropertyMap) Get(p catalog.Property) (int32, bool) {
	v, ok := m[p]
	return v, ok
}

// Has reports whether the property was reported.
func (m PropertyMap) Has(p catalog.Property) bool {
	_, ok := m[p]
	return ok
}

// Uint returns the property clamped to zero when negative; missing
// properties report 0.
func (m PropertyMap) Uint(p catalog.Property) uint32 {
	v := m[p]
	if v <= 0 {
		return 0
	}
	return uint32(v)
}

// Bool reports whether the property is present and non-zero.
func (m PropertyMap) Bool(p catalog.Property) bool {
	return m[p] != 0
}

// Keys returns the reported properties in ascending enum order.
func (m PropertyMap) Keys() []catalog.Property {
	keys := make([]catalog.Property, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resource is one active resource of an interface.
type Resource struct {
	Properties PropertyMap
	Index      uint32
}

// Named is a Resource with its resolved name. Name is empty when the name
// could not be resolved.
type Named struct {
	Name string
	Resource
}

// Base implements Entry.
func (n *Named) Base() *Named {
	return n
}

// Entry is a stored record. Handlers extend records by embedding Named.
type Entry interface {
	Base() *Named
}

// EventType identifies a table change.
type EventType uint8

const (
	EventStored EventType = iota
	EventCleared
)

// Event describes a table change. Interface is zero for EventCleared.
type Event struct {
	Entries   []Entry
	Interface catalog.Interface
	Type      EventType
}

// Observer receives notifications about table changes.
type Observer interface {
	OnTableEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnTableEvent implements Observer.
func (f ObserverFunc) OnTableEvent(e Event) {
	f(e)
}
