package handler

import (
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/resource"
)

// SubroutineUniform is a subroutine uniform with its compatible
// subroutines resolved and the subroutine it currently selects.
type SubroutineUniform struct {
	resource.Named
	// CompatibleIndices holds COMPATIBLE_SUBROUTINES, indices into the
	// stage's subroutine interface.
	CompatibleIndices []uint32
	// Compatible holds the subroutine entries, resolved after collection.
	Compatible []resource.Entry
	Location   int32
	ArraySize  uint32
	Selected   uint32
}

// IsCompatible reports whether the subroutine index may be selected.
func (u *SubroutineUniform) IsCompatible(index uint32) bool {
	return slices.Contains(u.CompatibleIndices, index)
}

// SelectedName returns the name of the selected subroutine.
func (u *SubroutineUniform) SelectedName() string {
	for _, e := range u.Compatible {
		if b := e.Base(); b.Index == u.Selected {
			return b.Name
		}
	}
	return ""
}

// Subroutines handles the subroutine uniforms of one shader stage. It
// remembers selections by name so they survive a relink, and uploads them
// before every frame.
type Subroutines struct {
	remembered map[string]string
	uniforms   []*SubroutineUniform
	iface      catalog.Interface
	subs       catalog.Interface
	stage      catalog.Stage
}

var _ inspector.Handler = (*Subroutines)(nil)

// NewSubroutines creates the handler for a subroutine uniform interface.
func NewSubroutines(iface catalog.Interface) (*Subroutines, error) {
	subs, ok := iface.Subroutines()
	if !ok {
		return nil, errors.UnsupportedCategory(errors.PhaseCollect, iface)
	}
	stage, _ := iface.Stage()
	return &Subroutines{
		remembered: make(map[string]string),
		iface:      iface,
		subs:       subs,
		stage:      stage,
	}, nil
}

// Interface returns the handled interface.
func (s *Subroutines) Interface() catalog.Interface { return s.iface }

// Stage returns the handled shader stage.
func (s *Subroutines) Stage() catalog.Stage { return s.stage }

// Initialize implements inspector.Handler.
func (s *Subroutines) Initialize(insp *inspector.Inspector, res resource.Named) (resource.Entry, error) {
	q, err := insp.Query(s.iface)
	if err != nil {
		return nil, err
	}
	compatible, err := q.CompatibleSubroutines(res.Index, res.Properties.Uint(catalog.NumCompatibleSubroutines))
	if err != nil {
		return nil, err
	}
	return &SubroutineUniform{
		Named:             res,
		CompatibleIndices: compatible,
		Location:          value(res.Properties, catalog.Location, -1),
		ArraySize:         res.Properties.Uint(catalog.ArraySize),
	}, nil
}

// PostInit implements inspector.Handler. Each uniform selects its first
// compatible subroutine unless a selection remembered by name is still
// compatible.
func (s *Subroutines) PostInit(insp *inspector.Inspector, entries []resource.Entry) error {
	// Records of the previous generation must never reach PrepareDraw.
	clear(s.uniforms)
	s.uniforms = s.uniforms[:0]
	subs, err := insp.Container(s.subs)
	if err != nil {
		return err
	}
	for _, e := range entries {
		u, ok := e.(*SubroutineUniform)
		if !ok {
			continue
		}
		u.Compatible = u.Compatible[:0]
		for _, idx := range u.CompatibleIndices {
			if int(idx) < len(subs) {
				u.Compatible = append(u.Compatible, subs[idx])
			}
		}
		if len(u.CompatibleIndices) > 0 {
			u.Selected = u.CompatibleIndices[0]
		}
		if name, ok := s.remembered[u.Name]; ok {
			idx, err := insp.ResourceIndex(s.subs, name)
			if err == nil && u.IsCompatible(idx) {
				u.Selected = idx
			} else {
				Logger().Debug("remembered subroutine no longer available",
					zap.Stringer("interface", s.iface),
					zap.String("uniform", u.Name),
					zap.String("subroutine", name))
			}
		}
		s.uniforms = append(s.uniforms, u)
	}
	return nil
}

// Select makes the named uniform use the named subroutine from the next
// PrepareDraw on. The selection is remembered across relinks.
func (s *Subroutines) Select(insp *inspector.Inspector, uniform, subroutine string) error {
	e, err := insp.ByName(s.iface, uniform)
	if err != nil {
		return err
	}
	u, ok := e.(*SubroutineUniform)
	if !ok {
		return errors.InvalidState(errors.PhaseDraw, "uniform "+uniform+" was not collected by this handler")
	}
	idx, err := insp.ResourceIndex(s.subs, subroutine)
	if err != nil {
		return err
	}
	if !u.IsCompatible(idx) {
		return errors.New(errors.PhaseDraw, errors.KindInvalidInput).
			Path(s.iface.String(), uniform).
			Value(subroutine).
			Detail("subroutine %q is not compatible", subroutine).
			Build()
	}
	u.Selected = idx
	s.remembered[uniform] = subroutine
	return nil
}

// Selections returns the remembered selections keyed by uniform name.
func (s *Subroutines) Selections() map[string]string {
	out := make(map[string]string, len(s.remembered))
	for k, v := range s.remembered {
		out[k] = v
	}
	return out
}

// Indices returns the selected subroutine of every uniform location.
func (s *Subroutines) Indices() []uint32 {
	var n int32
	for _, u := range s.uniforms {
		if u.Location >= 0 {
			n = max(n, u.Location+int32(max(u.ArraySize, 1)))
		}
	}
	indices := make([]uint32, n)
	for _, u := range s.uniforms {
		if u.Location < 0 {
			continue
		}
		for k := int32(0); k < int32(max(u.ArraySize, 1)); k++ {
			indices[u.Location+k] = u.Selected
		}
	}
	return indices
}

// PrepareDraw implements inspector.Handler. Contexts that cannot upload
// subroutine selections are skipped.
func (s *Subroutines) PrepareDraw(insp *inspector.Inspector, _ []resource.Entry) error {
	indices := s.Indices()
	if len(indices) == 0 {
		return nil
	}
	setter, ok := insp.Native().(glinspect.SubroutineSetter)
	if !ok {
		Logger().Debug("context cannot upload subroutines",
			zap.Stringer("stage", s.stage))
		return nil
	}
	if err := setter.UniformSubroutines(s.stage, indices); err != nil {
		return errors.New(errors.PhaseDraw, errors.KindNativeQueryRejected).
			Path(s.iface.String()).
			Cause(err).
			Detail("upload subroutine selection").
			Build()
	}
	return nil
}
