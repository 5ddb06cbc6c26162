// Package resource defines the records produced by program introspection.
//
// A Resource is one active resource of a program interface: its index
// within the interface and the properties queried for it. Named adds the
// resolved name. Handlers extend the record by embedding Named, and every
// stored record satisfies Entry:
//
//	type Variable struct {
//	    resource.Named
//	    Location int32
//	}
//
//	var e resource.Entry = &Variable{...}
//	e.Base().Name
//
// # Property Maps
//
// PropertyMap holds raw native values. A missing key is a normal state: the
// property is inapplicable to the resource or the native layer wrote fewer
// values than requested. Uint clamps negative values (such as -1 locations)
// to zero.
//
// # Table
//
// Table maps each interface to its collected entries:
//
//	table := resource.NewTable()
//	table.Store(catalog.Uniform, entries)
//
//	entries, ok := table.Get(catalog.Uniform)   // present slot
//	_, ok = table.Get(catalog.ProgramOutput)    // absent: never collected
//
// Observers are notified on every Store and Clear until unsubscribed:
//
//	sub := table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventStored {
//	        log.Printf("%v: %d entries", e.Interface, len(e.Entries))
//	    }
//	}))
//	defer table.Unsubscribe(sub)
//
// Tables are not safe for concurrent use.
package resource
