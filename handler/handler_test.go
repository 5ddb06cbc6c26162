package handler

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/wippyai/glinspect"
	"github.com/wippyai/glinspect/catalog"
	ierrors "github.com/wippyai/glinspect/errors"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/resource"
	"github.com/wippyai/glinspect/snapshot"
)

func phong(t *testing.T) *snapshot.Context {
	t.Helper()
	c, err := snapshot.LoadContext(filepath.Join("..", "snapshot", "testdata", "phong.toml"))
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	return c
}

func names(es []resource.Entry) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Base().Name
	}
	return out
}

func byName(t *testing.T, insp *inspector.Inspector, iface catalog.Interface, name string) resource.Entry {
	t.Helper()
	e, err := insp.ByName(iface, name)
	if err != nil {
		t.Fatalf("ByName(%v, %q): %v", iface, name, err)
	}
	return e
}

func TestVariableTransform(t *testing.T) {
	res := resource.Named{
		Name: "Material.diffuse",
		Resource: resource.Resource{Index: 2, Properties: resource.PropertyMap{
			catalog.Type:                       int32(catalog.TypeFloatVec4),
			catalog.ArraySize:                  1,
			catalog.Location:                   -1,
			catalog.BlockIndex:                 0,
			catalog.Offset:                     16,
			catalog.ReferencedByVertexShader:   0,
			catalog.ReferencedByFragmentShader: 1,
		}},
	}
	v, ok := VariableTransform(res).(*Variable)
	if !ok {
		t.Fatal("VariableTransform should produce *Variable")
	}
	if v.Type != catalog.TypeFloatVec4 || v.ArraySize != 1 || v.Offset != 16 {
		t.Errorf("decoded = %+v", v)
	}
	if v.HasLocation() {
		t.Error("location -1 should report no location")
	}
	if !v.InBlock() {
		t.Error("block index 0 should report a block member")
	}
	if !slices.Equal(v.Stages, []catalog.Stage{catalog.FragmentShader}) {
		t.Errorf("Stages = %v", v.Stages)
	}
	if !v.Referenced(catalog.FragmentShader) || v.Referenced(catalog.VertexShader) {
		t.Error("Referenced disagrees with Stages")
	}
	if v.Base().Index != 2 || v.Name != "Material.diffuse" {
		t.Errorf("base = %+v", v.Base())
	}
}

func TestVariableTransform_MissingProperties(t *testing.T) {
	v := VariableTransform(resource.Named{Name: "x", Resource: resource.Resource{Properties: resource.PropertyMap{}}}).(*Variable)
	if v.Location != -1 || v.BlockIndex != -1 || v.Offset != -1 {
		t.Errorf("missing properties = %+v, want -1 defaults", v)
	}
}

func TestNewHandlers_Unsupported(t *testing.T) {
	if _, err := NewBlocks(catalog.Uniform); !ierrors.IsKind(err, ierrors.KindUnsupportedCategory) {
		t.Errorf("NewBlocks(UNIFORM) err = %v", err)
	}
	if _, err := NewSubroutines(catalog.FragmentSubroutine); !ierrors.IsKind(err, ierrors.KindUnsupportedCategory) {
		t.Errorf("NewSubroutines(FRAGMENT_SUBROUTINE) err = %v", err)
	}
}

func TestInstall_Blocks(t *testing.T) {
	insp := inspector.New(phong(t), 1)
	set := Install(insp)
	_ = insp.Initialize()

	if _, ok := byName(t, insp, catalog.Uniform, "mvp").(*Variable); !ok {
		t.Error("uniforms should be decoded into *Variable")
	}
	if len(set.Blocks) != 4 || len(set.Subroutines) != 6 {
		t.Errorf("installed %d block and %d subroutine handlers", len(set.Blocks), len(set.Subroutines))
	}

	blk := byName(t, insp, catalog.UniformBlock, "Material").(*Block)
	if blk.DataSize != 32 || blk.Binding != 0 {
		t.Errorf("block = %+v", blk)
	}
	if got := names(blk.Members); !slices.Equal(got, []string{"Material.diffuse", "Material.shininess"}) {
		t.Errorf("members = %v", got)
	}

	acbs, err := insp.Container(catalog.AtomicCounterBuffer)
	if err != nil {
		t.Fatalf("Container: %v", err)
	}
	acb := acbs[0].(*Block)
	if got := names(acb.Members); !slices.Equal(got, []string{"hits"}) {
		t.Errorf("atomic counter members = %v", got)
	}
	if acb.Binding != 1 {
		t.Errorf("binding = %d, want 1", acb.Binding)
	}
}

func TestBlocks_MembersNotCollected(t *testing.T) {
	insp := inspector.New(phong(t), 1, inspector.WithInterfaces(catalog.UniformBlock))
	Install(insp)
	err := insp.Initialize()
	if !ierrors.IsKind(err, ierrors.KindNotCollected) {
		t.Fatalf("err = %v, want not_collected", err)
	}
	if !insp.HasData(catalog.UniformBlock) {
		t.Error("block data must survive a failed link")
	}
}

func TestSubroutines_SelectAndUpload(t *testing.T) {
	ctx := phong(t)
	insp := inspector.New(ctx, 1)
	set := Install(insp)
	_ = insp.Initialize()

	subs := set.Subroutines[catalog.FragmentShader]
	u := byName(t, insp, catalog.FragmentSubroutineUniform, "shadeModel").(*SubroutineUniform)
	if got := names(u.Compatible); !slices.Equal(got, []string{"diffuseOnly", "phongModel", "toon"}) {
		t.Errorf("compatible = %v", got)
	}
	if u.Selected != 0 || u.SelectedName() != "diffuseOnly" {
		t.Errorf("default selection = %d (%q)", u.Selected, u.SelectedName())
	}

	if err := subs.Select(insp, "shadeModel", "toon"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := subs.Select(insp, "shadeModel", "missing"); !ierrors.IsNotFound(err) {
		t.Errorf("Select(missing) = %v, want not_found", err)
	}
	if err := subs.Select(insp, "nope", "toon"); !ierrors.IsNotFound(err) {
		t.Errorf("Select(nope) = %v, want not_found", err)
	}

	if err := insp.PrepareDraw(); err != nil {
		t.Fatalf("PrepareDraw: %v", err)
	}
	uploads := ctx.Uploads()
	if len(uploads) != 1 {
		t.Fatalf("uploads = %v, want one", uploads)
	}
	if uploads[0].Stage != catalog.FragmentShader || !slices.Equal(uploads[0].Indices, []uint32{2}) {
		t.Errorf("upload = %+v", uploads[0])
	}
}

func TestSubroutines_SelectionSurvivesRelink(t *testing.T) {
	ctx := phong(t)
	insp := inspector.New(ctx, 1, inspector.WithRecompile(func() (uint32, error) { return 2, nil }))
	set := Install(insp)
	_ = insp.Initialize()

	subs := set.Subroutines[catalog.FragmentShader]
	if err := subs.Select(insp, "shadeModel", "toon"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if err := insp.Relink(); err != nil {
		t.Fatalf("Relink: %v", err)
	}

	u := byName(t, insp, catalog.FragmentSubroutineUniform, "shadeModel").(*SubroutineUniform)
	if u.Selected != 0 || u.SelectedName() != "toon" {
		t.Errorf("selection after relink = %d (%q), want toon at 0", u.Selected, u.SelectedName())
	}
	if got := subs.Selections(); got["shadeModel"] != "toon" {
		t.Errorf("Selections = %v", got)
	}
	if !slices.Equal(subs.Indices(), []uint32{0}) {
		t.Errorf("Indices = %v", subs.Indices())
	}
}

func TestSubroutines_StaleSelectionFallsBack(t *testing.T) {
	ctx := phong(t)
	insp := inspector.New(ctx, 1, inspector.WithRecompile(func() (uint32, error) { return 2, nil }))
	set := Install(insp)
	_ = insp.Initialize()

	_ = set.Subroutines[catalog.FragmentShader].Select(insp, "shadeModel", "diffuseOnly")
	_ = insp.Relink()

	u := byName(t, insp, catalog.FragmentSubroutineUniform, "shadeModel").(*SubroutineUniform)
	if u.SelectedName() != "toon" {
		t.Errorf("fallback selection = %q, want first compatible", u.SelectedName())
	}
}

func TestSubroutines_RelinkWithRejectedSubroutines(t *testing.T) {
	ctx, err := snapshot.NewContext(&snapshot.Snapshot{Programs: []snapshot.Program{
		{ID: 1, Interfaces: []snapshot.Interface{
			{Name: "FRAGMENT_SUBROUTINE", Resources: []snapshot.Resource{
				{Name: "flat"}, {Name: "smooth"}, {Name: "toon"},
			}},
			{Name: "FRAGMENT_SUBROUTINE_UNIFORM", Resources: []snapshot.Resource{
				{Name: "shade", Properties: map[string]int32{"LOCATION": 0}, CompatibleSubroutines: []int32{0, 1, 2}},
			}},
		}},
		{ID: 2, Interfaces: []snapshot.Interface{
			{Name: "FRAGMENT_SUBROUTINE", Reject: []string{"*"}},
			{Name: "FRAGMENT_SUBROUTINE_UNIFORM", Resources: []snapshot.Resource{
				{Name: "shade", Properties: map[string]int32{"LOCATION": 0}, CompatibleSubroutines: []int32{0}},
			}},
		}},
	}})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	insp := inspector.New(ctx, 1,
		inspector.WithInterfaces(catalog.FragmentSubroutine, catalog.FragmentSubroutineUniform),
		inspector.WithRecompile(func() (uint32, error) { return 2, nil }))
	set := Install(insp)
	if err := insp.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	subs := set.Subroutines[catalog.FragmentShader]
	if err := subs.Select(insp, "shade", "toon"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !slices.Equal(subs.Indices(), []uint32{2}) {
		t.Fatalf("Indices = %v, want [2]", subs.Indices())
	}

	_ = insp.Relink()
	if got := subs.Indices(); len(got) != 0 {
		t.Errorf("Indices after relink = %v, want none", got)
	}
	if err := insp.PrepareDraw(); err != nil {
		t.Errorf("PrepareDraw: %v", err)
	}
	if uploads := ctx.Uploads(); len(uploads) != 0 {
		t.Errorf("uploads = %v, want none", uploads)
	}
}

// nativeOnly hides the SubroutineSetter capability of the wrapped context.
type nativeOnly struct {
	glinspect.Native
}

func TestSubroutines_NoSetter(t *testing.T) {
	ctx := phong(t)
	insp := inspector.New(nativeOnly{ctx}, 1)
	Install(insp)
	_ = insp.Initialize()

	if err := insp.PrepareDraw(); err != nil {
		t.Errorf("PrepareDraw without setter: %v", err)
	}
	if len(ctx.Uploads()) != 0 {
		t.Error("no uploads expected")
	}
}
