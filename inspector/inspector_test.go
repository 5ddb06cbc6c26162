package inspector

import (
	"errors"
	"reflect"
	"slices"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/glinspect/catalog"
	ierrors "github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/resource"
	"github.com/wippyai/glinspect/snapshot"
)

func fixture() *snapshot.Snapshot {
	return &snapshot.Snapshot{Programs: []snapshot.Program{
		{ID: 1, Name: "a", Interfaces: []snapshot.Interface{
			{Name: "UNIFORM", Resources: []snapshot.Resource{
				{Name: "lightPos", Type: "FLOAT_VEC3", Properties: map[string]int32{"LOCATION": 0, "REFERENCED_BY_VERTEX_SHADER": 1}},
				{Name: "color", Type: "FLOAT_VEC4", Properties: map[string]int32{"LOCATION": 1}},
			}},
			{Name: "UNIFORM_BLOCK", Resources: []snapshot.Resource{
				{Name: "Lights", Properties: map[string]int32{"BUFFER_BINDING": 0}, ActiveVariables: []int32{0, 1}},
			}},
			{Name: "ATOMIC_COUNTER_BUFFER", Resources: []snapshot.Resource{
				{Properties: map[string]int32{"BUFFER_BINDING": 2, "BUFFER_DATA_SIZE": 4}},
			}},
			{Name: "PROGRAM_OUTPUT", Resources: []snapshot.Resource{
				{Name: "fragColor", Type: "FLOAT_VEC4", Properties: map[string]int32{"LOCATION": 0}},
			}},
			{Name: "FRAGMENT_SUBROUTINE", Resources: []snapshot.Resource{
				{Name: "flat"}, {Name: "smooth"},
			}},
			{Name: "FRAGMENT_SUBROUTINE_UNIFORM", Resources: []snapshot.Resource{
				{Name: "shade", Properties: map[string]int32{"LOCATION": 0}, CompatibleSubroutines: []int32{0, 1}},
			}},
			{Name: "TRANSFORM_FEEDBACK_BUFFER", Reject: []string{"*"}},
		}},
		{ID: 2, Name: "b", Interfaces: []snapshot.Interface{
			{Name: "UNIFORM", Resources: []snapshot.Resource{
				{Name: "lightPos", Type: "FLOAT_VEC3", Properties: map[string]int32{"LOCATION": 0}},
			}},
		}},
	}}
}

func newContext(t *testing.T) *snapshot.Context {
	t.Helper()
	c, err := snapshot.NewContext(fixture())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return c
}

func entries(t *testing.T, insp *Inspector, iface catalog.Interface) []resource.Entry {
	t.Helper()
	es, err := insp.Container(iface)
	if err != nil {
		t.Fatalf("Container(%v): %v", iface, err)
	}
	return es
}

func TestInitialize_UniformScenario(t *testing.T) {
	insp := New(newContext(t), 1)
	err := insp.Initialize()
	if !ierrors.IsKind(err, ierrors.KindNativeQueryRejected) {
		t.Fatalf("Initialize err = %v, want the rejected transform feedback buffer", err)
	}

	uniforms := entries(t, insp, catalog.Uniform)
	if len(uniforms) != 2 {
		t.Fatalf("uniforms = %d, want 2", len(uniforms))
	}
	first := uniforms[0].Base()
	if first.Name != "lightPos" {
		t.Errorf("name = %q, want lightPos", first.Name)
	}
	checks := map[catalog.Property]int32{
		catalog.Type:                       int32(catalog.TypeFloatVec3),
		catalog.ArraySize:                  1,
		catalog.Location:                   0,
		catalog.ReferencedByVertexShader:   1,
		catalog.ReferencedByFragmentShader: 0,
	}
	for p, want := range checks {
		if got, ok := first.Properties.Get(p); !ok || got != want {
			t.Errorf("%v = %d, %v; want %d", p, got, ok, want)
		}
	}

	idx, err := insp.ResourceIndex(catalog.Uniform, "lightPos")
	if err != nil || idx != 0 {
		t.Errorf("ResourceIndex(lightPos) = %d, %v; want 0", idx, err)
	}
	if insp.Generation() != 1 || insp.State() != StateReady {
		t.Errorf("generation = %d, state = %v", insp.Generation(), insp.State())
	}
}

func TestInitialize_AtomicCounterBufferHasNoName(t *testing.T) {
	insp := New(newContext(t), 1)
	_ = insp.Initialize()

	acb := entries(t, insp, catalog.AtomicCounterBuffer)
	if len(acb) != 1 {
		t.Fatalf("entries = %d, want 1", len(acb))
	}
	b := acb[0].Base()
	if b.Name != "" {
		t.Errorf("name = %q, want empty", b.Name)
	}
	if b.Properties.Has(catalog.NameLength) {
		t.Error("NAME_LENGTH must not be queried for ATOMIC_COUNTER_BUFFER")
	}
	if b.Properties.Uint(catalog.BufferBinding) != 2 {
		t.Errorf("BUFFER_BINDING = %d, want 2", b.Properties.Uint(catalog.BufferBinding))
	}
}

func TestInitialize_IdentifiersAndNames(t *testing.T) {
	insp := New(newContext(t), 1)
	_ = insp.Initialize()

	for _, iface := range insp.Interfaces() {
		es, err := insp.Container(iface)
		if err != nil {
			continue
		}
		for i, e := range es {
			b := e.Base()
			if b.Index != uint32(i) {
				t.Errorf("%v[%d] has index %d", iface, i, b.Index)
			}
			if n, ok := b.Properties.Get(catalog.NameLength); ok && n > 0 && b.Name == "" {
				t.Errorf("%v[%d] has NAME_LENGTH %d but no name", iface, i, n)
			}
		}
	}
}

func TestInitialize_RejectionIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })

	insp := New(newContext(t), 1)
	err := insp.Initialize()
	if err == nil {
		t.Fatal("expected aggregated error")
	}

	if insp.HasData(catalog.TransformFeedbackBuffer) {
		t.Error("rejected interface must have no slot")
	}
	_, err = insp.Container(catalog.TransformFeedbackBuffer)
	if !ierrors.IsKind(err, ierrors.KindNotCollected) {
		t.Errorf("Container err = %v, want not_collected", err)
	}
	if !insp.HasData(catalog.ShaderStorageBlock) {
		t.Error("an interface with zero resources is still collected")
	}
	if got := len(entries(t, insp, catalog.ShaderStorageBlock)); got != 0 {
		t.Errorf("shader storage blocks = %d, want 0", got)
	}
	if len(entries(t, insp, catalog.ProgramOutput)) != 1 {
		t.Error("sibling interfaces must still be collected")
	}

	failures := insp.Failures()
	if len(failures) != 1 || failures[catalog.TransformFeedbackBuffer] == nil {
		t.Errorf("failures = %v", failures)
	}
	if logs.FilterMessage("interface rejected").Len() != 1 {
		t.Errorf("warn logs = %v", logs.All())
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	insp := New(newContext(t), 1)
	_ = insp.Initialize()
	snap := func() map[catalog.Interface][]resource.Named {
		out := make(map[catalog.Interface][]resource.Named)
		for _, iface := range insp.Interfaces() {
			es, err := insp.Container(iface)
			if err != nil {
				continue
			}
			for _, e := range es {
				out[iface] = append(out[iface], *e.Base())
			}
		}
		return out
	}
	first := snap()
	if err := insp.Initialize(); !ierrors.IsKind(err, ierrors.KindNativeQueryRejected) {
		t.Fatalf("second Initialize: %v", err)
	}
	if !reflect.DeepEqual(first, snap()) {
		t.Error("second Initialize changed the collected data")
	}
	if insp.Generation() != 2 {
		t.Errorf("generation = %d, want 2", insp.Generation())
	}
}

func TestInitialize_RestoresProgram(t *testing.T) {
	ctx := newContext(t)
	_ = ctx.UseProgram(2)

	var during uint32
	insp := New(ctx, 1)
	insp.SetTransform(catalog.Uniform, func(res resource.Named) resource.Entry {
		during, _ = ctx.CurrentProgram()
		return &res
	})
	_ = insp.Initialize()

	if during != 1 {
		t.Errorf("program during collection = %d, want 1", during)
	}
	if cur, _ := ctx.CurrentProgram(); cur != 2 {
		t.Errorf("program after = %d, want 2", cur)
	}
}

func TestInitialize_CollectionCompletesBeforeLinking(t *testing.T) {
	insp := New(newContext(t), 1)

	var seen []catalog.Interface
	check := func(insp *Inspector, _ []resource.Entry) error {
		for _, sibling := range []catalog.Interface{
			catalog.Uniform, catalog.UniformBlock, catalog.AtomicCounterBuffer,
			catalog.ProgramOutput, catalog.FragmentSubroutine, catalog.FragmentSubroutineUniform,
		} {
			if !insp.HasData(sibling) {
				t.Errorf("post-init observed %v as absent", sibling)
			}
		}
		return nil
	}
	// Uniform comes first in enumeration order, so it sees every sibling
	// only if collection finished first.
	insp.SetHandler(catalog.Uniform, HandlerFuncs{OnPostInit: func(insp *Inspector, es []resource.Entry) error {
		seen = append(seen, catalog.Uniform)
		return check(insp, es)
	}})
	insp.SetHandler(catalog.FragmentSubroutineUniform, HandlerFuncs{OnPostInit: func(insp *Inspector, es []resource.Entry) error {
		seen = append(seen, catalog.FragmentSubroutineUniform)
		return check(insp, es)
	}})
	_ = insp.Initialize()

	if !slices.Equal(seen, []catalog.Interface{catalog.Uniform, catalog.FragmentSubroutineUniform}) {
		t.Errorf("post-init order = %v", seen)
	}
}

// compatibleNames resolves COMPATIBLE_SUBROUTINES through the name index of
// the subroutine interface.
type compatibleNames struct {
	resource.Named
	Choices []string
}

func TestInitialize_SubroutineLinkingIndependentOfOrder(t *testing.T) {
	orders := [][]catalog.Interface{
		{catalog.FragmentSubroutine, catalog.FragmentSubroutineUniform},
		{catalog.FragmentSubroutineUniform, catalog.FragmentSubroutine},
	}
	for _, order := range orders {
		ctx := newContext(t)
		insp := New(ctx, 1, WithInterfaces(order...))
		insp.SetHandler(catalog.FragmentSubroutineUniform, HandlerFuncs{
			OnInitialize: func(insp *Inspector, res resource.Named) (resource.Entry, error) {
				return &compatibleNames{Named: res}, nil
			},
			OnPostInit: func(insp *Inspector, es []resource.Entry) error {
				subs, err := insp.Container(catalog.FragmentSubroutine)
				if err != nil {
					return err
				}
				for _, e := range es {
					u := e.(*compatibleNames)
					q, err := insp.Query(catalog.FragmentSubroutineUniform)
					if err != nil {
						return err
					}
					ids, err := q.CompatibleSubroutines(u.Index, u.Properties.Uint(catalog.NumCompatibleSubroutines))
					if err != nil {
						return err
					}
					for _, id := range ids {
						name := subs[id].Base().Name
						if _, err := insp.ResourceIndex(catalog.FragmentSubroutine, name); err != nil {
							return err
						}
						u.Choices = append(u.Choices, name)
					}
				}
				return nil
			},
		})
		if err := insp.Initialize(); err != nil {
			t.Fatalf("order %v: Initialize: %v", order, err)
		}
		e, err := insp.ByName(catalog.FragmentSubroutineUniform, "shade")
		if err != nil {
			t.Fatalf("ByName: %v", err)
		}
		if got := e.(*compatibleNames).Choices; !slices.Equal(got, []string{"flat", "smooth"}) {
			t.Errorf("order %v: choices = %v", order, got)
		}
	}
}

func TestRelink_ReplacesGeneration(t *testing.T) {
	ctx := newContext(t)
	calls := 0
	insp := New(ctx, 1, WithRecompile(func() (uint32, error) {
		calls++
		return 2, nil
	}))
	_ = insp.Initialize()
	if len(entries(t, insp, catalog.ProgramOutput)) != 1 {
		t.Fatal("generation 1 should have one program output")
	}

	if err := insp.Relink(); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if calls != 1 {
		t.Errorf("recompile calls = %d, want 1", calls)
	}
	if insp.Program() != 2 || insp.Generation() != 2 {
		t.Errorf("program = %d, generation = %d", insp.Program(), insp.Generation())
	}
	if got := len(entries(t, insp, catalog.ProgramOutput)); got != 0 {
		t.Errorf("program outputs after relink = %d, want 0", got)
	}
	if got := len(entries(t, insp, catalog.Uniform)); got != 1 {
		t.Errorf("uniforms after relink = %d, want 1", got)
	}
	if _, err := insp.ResourceIndex(catalog.Uniform, "color"); !ierrors.IsKind(err, ierrors.KindNotFound) {
		t.Errorf("stale name lookup err = %v, want not_found", err)
	}
	if !insp.HasData(catalog.TransformFeedbackBuffer) {
		t.Error("interface rejected in generation 1 should be collected in generation 2")
	}
	if len(insp.Failures()) != 0 {
		t.Errorf("failures = %v", insp.Failures())
	}
}

func TestRelink_Unsupported(t *testing.T) {
	insp := New(newContext(t), 1)
	if err := insp.Relink(); !ierrors.IsKind(err, ierrors.KindUnsupported) {
		t.Errorf("err = %v, want unsupported", err)
	}
}

func TestRelink_RecompileFailureKeepsData(t *testing.T) {
	insp := New(newContext(t), 1, WithRecompile(func() (uint32, error) {
		return 0, errors.New("syntax error")
	}))
	_ = insp.Initialize()

	err := insp.Relink()
	if !ierrors.IsKind(err, ierrors.KindCompile) {
		t.Errorf("err = %v, want compile", err)
	}
	if insp.Program() != 1 || insp.State() != StateReady {
		t.Errorf("program = %d, state = %v", insp.Program(), insp.State())
	}
	if len(entries(t, insp, catalog.Uniform)) != 2 {
		t.Error("data of the current generation must survive a failed recompile")
	}
}

func TestInitialize_NotReentrant(t *testing.T) {
	insp := New(newContext(t), 1)
	var inner error
	insp.SetHandler(catalog.Uniform, HandlerFuncs{OnPostInit: func(insp *Inspector, _ []resource.Entry) error {
		inner = insp.Initialize()
		return nil
	}})
	_ = insp.Initialize()

	if !ierrors.IsKind(inner, ierrors.KindInvalidState) {
		t.Errorf("nested Initialize err = %v, want invalid_state", inner)
	}
	if insp.State() != StateReady {
		t.Errorf("state = %v, want ready", insp.State())
	}
}

func TestHandler_PrecedenceAndRejection(t *testing.T) {
	insp := New(newContext(t), 1)

	type tagged struct {
		resource.Named
		by string
	}
	insp.SetTransform(catalog.Uniform, func(res resource.Named) resource.Entry {
		return &tagged{Named: res, by: "transform"}
	})
	insp.SetHandler(catalog.Uniform, HandlerFuncs{
		OnInitialize: func(_ *Inspector, res resource.Named) (resource.Entry, error) {
			return &tagged{Named: res, by: "handler"}, nil
		},
	})
	insp.SetTransform(catalog.ProgramOutput, func(res resource.Named) resource.Entry {
		return &tagged{Named: res, by: "transform"}
	})
	insp.SetHandler(catalog.UniformBlock, HandlerFuncs{
		OnInitialize: func(*Inspector, resource.Named) (resource.Entry, error) {
			return nil, errors.New("unsupported layout")
		},
	})
	err := insp.Initialize()

	if got := entries(t, insp, catalog.Uniform)[0].(*tagged).by; got != "handler" {
		t.Errorf("uniform converted by %s, want handler", got)
	}
	if got := entries(t, insp, catalog.ProgramOutput)[0].(*tagged).by; got != "transform" {
		t.Errorf("output converted by %s, want transform", got)
	}
	if insp.HasData(catalog.UniformBlock) {
		t.Error("a failing handler must reject its interface")
	}
	if !ierrors.IsKind(err, ierrors.KindInvalidData) {
		t.Errorf("err = %v, want handler failure in the aggregate", err)
	}

	insp.SetHandler(catalog.Uniform, nil)
	insp.SetTransform(catalog.Uniform, nil)
	_ = insp.Initialize()
	if _, ok := entries(t, insp, catalog.Uniform)[0].(*resource.Named); !ok {
		t.Error("cleared registrations should fall back to identity")
	}
}

func TestPostInitFailureKeepsData(t *testing.T) {
	insp := New(newContext(t), 1)
	insp.SetHandler(catalog.ProgramOutput, HandlerFuncs{
		OnPostInit: func(*Inspector, []resource.Entry) error { return errors.New("link failed") },
	})
	err := insp.Initialize()
	if err == nil {
		t.Fatal("expected error")
	}
	if len(entries(t, insp, catalog.ProgramOutput)) != 1 {
		t.Error("post-init failure must keep collected data")
	}
	var e *ierrors.Error
	if !errors.As(insp.Failures()[catalog.ProgramOutput], &e) || e.Phase != ierrors.PhaseLink {
		t.Errorf("failure = %v, want link phase", insp.Failures()[catalog.ProgramOutput])
	}
}

func TestPrepareDraw(t *testing.T) {
	ctx := newContext(t)
	insp := New(ctx, 1)

	if err := insp.PrepareDraw(); !ierrors.IsKind(err, ierrors.KindInvalidState) {
		t.Errorf("PrepareDraw before Initialize = %v, want invalid_state", err)
	}

	var order []catalog.Interface
	var bound uint32
	record := func(iface catalog.Interface) HandlerFuncs {
		return HandlerFuncs{OnPrepareDraw: func(insp *Inspector, _ []resource.Entry) error {
			order = append(order, iface)
			bound, _ = ctx.CurrentProgram()
			if insp.State() != StatePreDrawing {
				t.Errorf("state = %v, want pre-drawing", insp.State())
			}
			return nil
		}}
	}
	insp.SetHandler(catalog.FragmentSubroutineUniform, record(catalog.FragmentSubroutineUniform))
	insp.SetHandler(catalog.Uniform, record(catalog.Uniform))
	insp.SetHandler(catalog.TransformFeedbackBuffer, record(catalog.TransformFeedbackBuffer))
	_ = insp.Initialize()

	for frame := 0; frame < 2; frame++ {
		if err := insp.PrepareDraw(); err != nil {
			t.Fatalf("PrepareDraw: %v", err)
		}
	}
	want := []catalog.Interface{
		catalog.Uniform, catalog.FragmentSubroutineUniform,
		catalog.Uniform, catalog.FragmentSubroutineUniform,
	}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if bound != 1 {
		t.Errorf("program during PrepareDraw = %d, want 1", bound)
	}
	if cur, _ := ctx.CurrentProgram(); cur != 0 {
		t.Errorf("program after PrepareDraw = %d, want 0", cur)
	}
	if insp.State() != StateReady {
		t.Errorf("state = %v, want ready", insp.State())
	}
}

func TestLookups(t *testing.T) {
	insp := New(newContext(t), 1, WithName("phong"))

	if _, err := insp.ResourceIndex(catalog.Uniform, "lightPos"); !ierrors.IsKind(err, ierrors.KindNotCollected) {
		t.Errorf("lookup before Initialize = %v, want not_collected", err)
	}
	_ = insp.Initialize()

	e, err := insp.ByName(catalog.ProgramOutput, "fragColor")
	if err != nil || e.Base().Index != 0 {
		t.Errorf("ByName(fragColor) = %v, %v", e, err)
	}
	_, err = insp.ByName(catalog.ProgramOutput, "depth")
	if !ierrors.IsKind(err, ierrors.KindNotFound) || !ierrors.IsNotFound(err) {
		t.Errorf("ByName(depth) = %v, want not_found", err)
	}
	_, err = insp.ResourceIndex(catalog.TransformFeedbackBuffer, "x")
	if !ierrors.IsKind(err, ierrors.KindNotCollected) || !ierrors.IsNotFound(err) {
		t.Errorf("rejected interface lookup = %v, want not_collected", err)
	}
	if insp.Name() != "phong" {
		t.Errorf("Name = %q", insp.Name())
	}
}

func TestActiveCounts(t *testing.T) {
	insp := New(newContext(t), 1)
	counts := insp.ActiveCounts()

	want := []Count{
		{catalog.Uniform, 2},
		{catalog.UniformBlock, 1},
		{catalog.AtomicCounterBuffer, 1},
		{catalog.ProgramOutput, 1},
		{catalog.FragmentSubroutine, 2},
		{catalog.FragmentSubroutineUniform, 1},
	}
	if !slices.Equal(counts, want) {
		t.Errorf("ActiveCounts = %v, want %v", counts, want)
	}
}

func TestWithInterfaces(t *testing.T) {
	insp := New(newContext(t), 1, WithInterfaces(catalog.ProgramOutput, catalog.Interface(9), catalog.Uniform, catalog.ProgramOutput))
	if got := insp.Interfaces(); !slices.Equal(got, []catalog.Interface{catalog.ProgramOutput, catalog.Uniform}) {
		t.Errorf("Interfaces = %v", got)
	}
	if err := insp.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if insp.HasData(catalog.UniformBlock) {
		t.Error("interfaces outside the list must not be collected")
	}
}

func TestSubscribe(t *testing.T) {
	insp := New(newContext(t), 1, WithInterfaces(catalog.Uniform, catalog.ProgramOutput))
	var types []resource.EventType
	insp.Subscribe(resource.ObserverFunc(func(e resource.Event) {
		types = append(types, e.Type)
	}))
	_ = insp.Initialize()

	want := []resource.EventType{resource.EventCleared, resource.EventStored, resource.EventStored}
	if !slices.Equal(types, want) {
		t.Errorf("events = %v, want %v", types, want)
	}
}

func TestUnsubscribe(t *testing.T) {
	insp := New(newContext(t), 1, WithInterfaces(catalog.Uniform),
		WithRecompile(func() (uint32, error) { return 2, nil }))
	var n int
	sub := insp.Subscribe(resource.ObserverFunc(func(resource.Event) { n++ }))
	_ = insp.Initialize()
	if n == 0 {
		t.Fatal("observer not notified")
	}

	if !insp.Unsubscribe(sub) {
		t.Fatal("Unsubscribe = false, want true")
	}
	before := n
	if err := insp.Relink(); err != nil {
		t.Fatalf("Relink: %v", err)
	}
	if n != before {
		t.Errorf("events after Unsubscribe = %d, want 0", n-before)
	}
}
