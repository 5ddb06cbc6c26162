package inspector

import (
	stderrors "errors"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/resource"
)

func (i *Inspector) busy() bool {
	switch i.state {
	case StateCollecting, StateLinking, StatePreDrawing:
		return true
	}
	return false
}

// Initialize collects every interface, rebuilds the name index and runs
// the PostInit pass of every handler whose interface was collected. Data of
// the previous generation is discarded.
//
// Per-interface failures do not stop the other interfaces: a rejected
// interface is left without data and its error is part of the returned
// aggregate. Calling Initialize from a handler fails with invalid_state.
func (i *Inspector) Initialize() error {
	if i.busy() {
		return errors.InvalidState(errors.PhaseCollect, "initialize called during "+i.state.String())
	}

	defer func() {
		if i.state == StateCollecting || i.state == StateLinking {
			i.state = StateEmpty
		}
	}()

	var result error
	err := glinspect.WithProgram(i.native, i.program, func() error {
		i.table.Clear()
		i.index = make(map[catalog.Interface]map[string]uint32)
		i.failures = make(map[catalog.Interface]error)

		i.state = StateCollecting
		for _, iface := range i.ifaces {
			if err := i.collect(iface); err != nil {
				i.reject(iface, err)
				result = multierr.Append(result, err)
			}
		}
		i.rebuildIndex()

		i.state = StateLinking
		for _, iface := range i.ifaces {
			h, ok := i.registry.handlers[iface]
			if !ok {
				continue
			}
			entries, ok := i.table.Get(iface)
			if !ok {
				continue
			}
			if err := h.PostInit(i, entries); err != nil {
				err = wrapHandler(errors.PhaseLink, iface, err)
				i.failures[iface] = err
				Logger().Warn("post-init failed",
					zap.Stringer("interface", iface),
					zap.Error(err))
				result = multierr.Append(result, err)
			}
		}

		i.gen++
		i.state = StateReady
		return nil
	})
	if err != nil {
		return multierr.Append(err, result)
	}

	Logger().Debug("program initialized",
		zap.String("name", i.name),
		zap.Uint32("program", i.program),
		zap.Uint64("generation", i.gen),
		zap.Int("interfaces", i.table.Len()),
		zap.Int("failures", len(i.failures)))
	return result
}

func (i *Inspector) collect(iface catalog.Interface) error {
	q, err := i.Query(iface)
	if err != nil {
		return err
	}
	raw, err := q.AllNamedResources()
	if err != nil {
		return err
	}
	entries := make([]resource.Entry, 0, len(raw))
	for _, res := range raw {
		e, err := i.registry.convert(i, iface, res)
		if err != nil {
			return wrapHandler(errors.PhaseCollect, iface, err)
		}
		if e == nil {
			r := res
			e = &r
		}
		entries = append(entries, e)
	}
	i.table.Store(iface, entries)
	return nil
}

func (i *Inspector) reject(iface catalog.Interface, err error) {
	i.failures[iface] = err
	Logger().Warn("interface rejected",
		zap.Stringer("interface", iface),
		zap.Error(err))
}

func (i *Inspector) rebuildIndex() {
	for _, iface := range i.ifaces {
		entries, ok := i.table.Get(iface)
		if !ok {
			continue
		}
		names := make(map[string]uint32, len(entries))
		for _, e := range entries {
			b := e.Base()
			if b.Name == "" {
				continue
			}
			if _, dup := names[b.Name]; !dup {
				names[b.Name] = b.Index
			}
		}
		i.index[iface] = names
	}
}

// wrapHandler attaches the interface to a handler error unless it already
// carries a structured error.
func wrapHandler(phase errors.Phase, iface catalog.Interface, err error) error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.New(phase, errors.KindInvalidData).
		Path(iface.String()).
		Cause(err).
		Detail("handler failed").
		Build()
}

// PrepareDraw runs the PrepareDraw pass of every handler with collected
// data, with the program bound. It must be called in the ready state.
func (i *Inspector) PrepareDraw() error {
	if i.state != StateReady {
		return errors.InvalidState(errors.PhaseDraw, "prepare draw called during "+i.state.String())
	}

	i.state = StatePreDrawing
	defer func() { i.state = StateReady }()

	var result error
	err := glinspect.WithProgram(i.native, i.program, func() error {
		for _, iface := range i.ifaces {
			h, ok := i.registry.handlers[iface]
			if !ok {
				continue
			}
			entries, ok := i.table.Get(iface)
			if !ok {
				continue
			}
			if err := h.PrepareDraw(i, entries); err != nil {
				err = wrapHandler(errors.PhaseDraw, iface, err)
				Logger().Warn("prepare draw failed",
					zap.Stringer("interface", iface),
					zap.Error(err))
				result = multierr.Append(result, err)
			}
		}
		return nil
	})
	return multierr.Append(err, result)
}

// Relink asks the recompile callback for a new program, discards every
// collected interface and initializes again. Without a callback Relink
// fails with unsupported. A failed recompile keeps the current program and
// data.
func (i *Inspector) Relink() error {
	if i.recompile == nil {
		return errors.Unsupported(errors.PhaseRelink, "no recompile callback installed")
	}
	if i.busy() {
		return errors.InvalidState(errors.PhaseRelink, "relink called during "+i.state.String())
	}

	program, err := i.recompile()
	if err != nil {
		Logger().Warn("recompile failed",
			zap.String("name", i.name),
			zap.Error(err))
		return errors.Wrap(errors.PhaseRelink, errors.KindCompile, err, "recompile failed")
	}

	Logger().Info("program relinked",
		zap.String("name", i.name),
		zap.Uint32("old", i.program),
		zap.Uint32("new", program))

	i.program = program
	i.table.Clear()
	i.index = make(map[catalog.Interface]map[string]uint32)
	i.failures = make(map[catalog.Interface]error)
	i.state = StateEmpty
	return i.Initialize()
}
