// Package introspect queries the active resources of one program interface.
//
//	q, err := introspect.New(native, program, catalog.Uniform)
//	all, err := q.AllNamedResources()
//
// Interface parameters are clamped to zero when negative. Resource
// properties are zipped with the values the native layer actually wrote, so
// a property it skipped is missing from the map instead of carrying a
// sentinel. Names are best-effort and never fail a query.
package introspect
