package resource

import (
	"slices"

	"github.com/wippyai/glinspect/catalog"
)

// Table holds the collected entries of every interface. An interface whose
// slot is absent was never collected or was rejected; a present slot may be
// empty.
type Table struct {
	slots     map[catalog.Interface][]Entry
	observers []subscriber
	nextSub   Subscription
}

// Subscription identifies a subscribed observer.
type Subscription uint64

type subscriber struct {
	obs Observer
	id  Subscription
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		slots: make(map[catalog.Interface][]Entry),
	}
}

// Store replaces the slot of the interface.
func (t *Table) Store(iface catalog.Interface, entries []Entry) {
	if entries == nil {
		entries = []Entry{}
	}
	t.slots[iface] = entries
	t.notify(Event{Type: EventStored, Interface: iface, Entries: entries})
}

// Get returns the slot of the interface and whether it is present.
func (t *Table) Get(iface catalog.Interface) ([]Entry, bool) {
	entries, ok := t.slots[iface]
	return entries, ok
}

// Has reports whether the slot of the interface is present.
func (t *Table) Has(iface catalog.Interface) bool {
	_, ok := t.slots[iface]
	return ok
}

// Entry returns the entry with the given resource index.
func (t *Table) Entry(iface catalog.Interface, index uint32) (Entry, bool) {
	for _, e := range t.slots[iface] {
		if e.Base().Index == index {
			return e, true
		}
	}
	return nil, false
}

// Len returns the number of present slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// Clear drops every slot.
func (t *Table) Clear() {
	t.slots = make(map[catalog.Interface][]Entry)
	t.notify(Event{Type: EventCleared})
}

// Subscribe adds an observer for table changes. Observers are notified in
// subscription order.
func (t *Table) Subscribe(o Observer) Subscription {
	t.nextSub++
	t.observers = append(t.observers, subscriber{obs: o, id: t.nextSub})
	return t.nextSub
}

// Unsubscribe removes the observer added under the subscription. It reports
// whether the subscription was active.
func (t *Table) Unsubscribe(id Subscription) bool {
	for i, sub := range t.observers {
		if sub.id == id {
			t.observers = slices.Delete(t.observers, i, i+1)
			return true
		}
	}
	return false
}

func (t *Table) notify(e Event) {
	for _, sub := range t.observers {
		sub.obs.OnTableEvent(e)
	}
}
