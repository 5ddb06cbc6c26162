package inspector

import (
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/resource"
)

// TransformFunc converts a raw resource into the stored record. It owns the
// resource it receives and may wrap it in a richer type.
type TransformFunc func(res resource.Named) resource.Entry

// Handler is per-interface logic run by the pipeline.
//
// Initialize converts one resource during collection; returning an error
// rejects the whole interface for the generation. PostInit runs once per
// generation after every interface has been collected and may mutate or
// replace entries in place. PrepareDraw runs before each frame and must not
// change the set of entries.
type Handler interface {
	Initialize(insp *Inspector, res resource.Named) (resource.Entry, error)
	PostInit(insp *Inspector, entries []resource.Entry) error
	PrepareDraw(insp *Inspector, entries []resource.Entry) error
}

// HandlerFuncs adapts plain functions to Handler. Nil fields behave as the
// identity transform and no-op passes.
//
// Example:
//
//	insp.SetHandler(catalog.UniformBlock, inspector.HandlerFuncs{
//	    OnPostInit: func(insp *inspector.Inspector, entries []resource.Entry) error {
//	        log.Printf("%d blocks", len(entries))
//	        return nil
//	    },
//	})
type HandlerFuncs struct {
	OnInitialize  func(insp *Inspector, res resource.Named) (resource.Entry, error)
	OnPostInit    func(insp *Inspector, entries []resource.Entry) error
	OnPrepareDraw func(insp *Inspector, entries []resource.Entry) error
}

// Initialize implements Handler.
func (h HandlerFuncs) Initialize(insp *Inspector, res resource.Named) (resource.Entry, error) {
	if h.OnInitialize == nil {
		return &res, nil
	}
	return h.OnInitialize(insp, res)
}

// PostInit implements Handler.
func (h HandlerFuncs) PostInit(insp *Inspector, entries []resource.Entry) error {
	if h.OnPostInit == nil {
		return nil
	}
	return h.OnPostInit(insp, entries)
}

// PrepareDraw implements Handler.
func (h HandlerFuncs) PrepareDraw(insp *Inspector, entries []resource.Entry) error {
	if h.OnPrepareDraw == nil {
		return nil
	}
	return h.OnPrepareDraw(insp, entries)
}

// registry maps interfaces to their transform and handler. At most one of
// each is kept per interface; the last registration wins.
type registry struct {
	transforms map[catalog.Interface]TransformFunc
	handlers   map[catalog.Interface]Handler
}

func newRegistry() registry {
	return registry{
		transforms: make(map[catalog.Interface]TransformFunc),
		handlers:   make(map[catalog.Interface]Handler),
	}
}

func (r *registry) setTransform(iface catalog.Interface, fn TransformFunc) {
	if fn == nil {
		delete(r.transforms, iface)
		return
	}
	r.transforms[iface] = fn
}

func (r *registry) setHandler(iface catalog.Interface, h Handler) {
	if h == nil {
		delete(r.handlers, iface)
		return
	}
	r.handlers[iface] = h
}

// convert applies the handler, else the transform, else identity.
func (r *registry) convert(insp *Inspector, iface catalog.Interface, res resource.Named) (resource.Entry, error) {
	if h, ok := r.handlers[iface]; ok {
		return h.Initialize(insp, res)
	}
	if fn, ok := r.transforms[iface]; ok {
		return fn(res), nil
	}
	return &res, nil
}
