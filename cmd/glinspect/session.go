package main

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/config"
	"github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/handler"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/opengl"
	"github.com/wippyai/glinspect/snapshot"
)

// session is an inspector over either a fixture or a live GL program.
type session struct {
	native   glinspect.Native
	insp     *inspector.Inspector
	handlers *handler.Set
	close    func()

	// paths are the files whose edits require a relink.
	paths []string
}

func openSession(cfg *config.Config, logger *zap.Logger) (*session, error) {
	ifaces, err := cfg.Display.ParsedInterfaces()
	if err != nil {
		return nil, err
	}
	if cfg.Program.Fixture != "" {
		return openFixture(cfg, ifaces)
	}
	if len(cfg.Program.Sources()) > 0 {
		return openGL(cfg, ifaces, logger)
	}
	return nil, errors.InvalidInput(errors.PhaseLoad, "no program: set program.fixture or per-stage sources")
}

func openFixture(cfg *config.Config, ifaces []catalog.Interface) (*session, error) {
	path := cfg.Program.Fixture
	id := cfg.Program.FixtureID
	ctx, err := snapshot.LoadContext(path)
	if err != nil {
		return nil, err
	}
	name, ok := ctx.ProgramName(id)
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "program", strconv.FormatUint(uint64(id), 10))
	}
	if name == "" {
		name = cfg.Program.Name
	}

	reload := func() (uint32, error) {
		if err := ctx.Reload(path); err != nil {
			return 0, errors.Wrap(errors.PhaseRelink, errors.KindCompile, err, "reload "+path)
		}
		if !ctx.HasProgram(id) {
			return 0, errors.NotFound(errors.PhaseRelink, "program", strconv.FormatUint(uint64(id), 10))
		}
		return id, nil
	}

	insp := inspector.New(ctx, id,
		inspector.WithName(name),
		inspector.WithInterfaces(ifaces...),
		inspector.WithRecompile(reload),
	)
	return &session{
		native:   ctx,
		insp:     insp,
		handlers: handler.Install(insp),
		close:    func() {},
		paths:    []string{path},
	}, nil
}

func openGL(cfg *config.Config, ifaces []catalog.Interface, logger *zap.Logger) (*session, error) {
	win, err := opengl.NewHiddenWindow()
	if err != nil {
		return nil, err
	}
	ctx, err := opengl.NewContext()
	if err != nil {
		win.Close()
		return nil, errors.Wrap(errors.PhaseNative, errors.KindUnsupported, err, "load GL entry points")
	}
	fp := opengl.NewFileProgram(ctx, cfg.Program.Sources())
	program, err := fp.Compile()
	if err != nil {
		win.Close()
		return nil, err
	}
	logger.Debug("program compiled", zap.Uint32("program", program), zap.Strings("sources", fp.Paths()))

	insp := inspector.New(ctx, program,
		inspector.WithName(cfg.Program.Name),
		inspector.WithInterfaces(ifaces...),
		inspector.WithRecompile(fp.Compile),
	)
	return &session{
		native:   ctx,
		insp:     insp,
		handlers: handler.Install(insp),
		close:    win.Close,
		paths:    fp.Paths(),
	}, nil
}

// initialize runs a pass and logs the per-interface failures; they are
// part of the rendered output, not fatal.
func (s *session) initialize(logger *zap.Logger) error {
	err := s.insp.Initialize()
	if err != nil && s.insp.State() != inspector.StateReady {
		return err
	}
	if err != nil {
		logger.Debug("initialize finished with failures", zap.Error(err))
	}
	return nil
}

// relink recompiles and reports whether the inspector holds a new
// generation.
func (s *session) relink(logger *zap.Logger) bool {
	before := s.insp.Generation()
	err := s.insp.Relink()
	relinked := s.insp.Generation() != before
	switch {
	case !relinked:
		logger.Warn("relink failed", zap.Error(err))
	case err != nil:
		logger.Debug("relink finished with failures", zap.Error(err))
	}
	return relinked
}
