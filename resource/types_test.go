package resource

import (
	"slices"
	"testing"

	"github.com/wippyai/glinspect/catalog"
)

func TestPropertyMap(t *testing.T) {
	m := PropertyMap{
		catalog.Location:   -1,
		catalog.ArraySize:  4,
		catalog.IsRowMajor: 0,
		catalog.Type:       int32(catalog.TypeFloatVec3),
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Uint negative", m.Uint(catalog.Location), uint32(0)},
		{"Uint positive", m.Uint(catalog.ArraySize), uint32(4)},
		{"Uint missing", m.Uint(catalog.Offset), uint32(0)},
		{"Has present zero", m.Has(catalog.IsRowMajor), true},
		{"Has missing", m.Has(catalog.Offset), false},
		{"Bool zero", m.Bool(catalog.IsRowMajor), false},
		{"Bool nonzero", m.Bool(catalog.ArraySize), true},
		{"Bool missing", m.Bool(catalog.IsPerPatch), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if v, ok := m.Get(catalog.Location); !ok || v != -1 {
		t.Errorf("Get(LOCATION) = %d, %v", v, ok)
	}
	if _, ok := m.Get(catalog.Offset); ok {
		t.Error("Get(OFFSET) should miss")
	}
}

func TestPropertyMap_Keys(t *testing.T) {
	m := PropertyMap{
		catalog.NameLength: 5,
		catalog.Type:       1,
		catalog.Location:   0,
	}
	keys := m.Keys()
	if !slices.IsSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}
	if len(keys) != 3 {
		t.Errorf("len = %d, want 3", len(keys))
	}
}

func TestNamedIsEntry(t *testing.T) {
	n := &Named{Name: "color", Resource: Resource{Index: 2}}
	var e Entry = n
	if e.Base() != n {
		t.Error("Base should return the receiver")
	}

	type wrapped struct {
		Named
		extra int
	}
	w := &wrapped{Named: Named{Name: "w"}, extra: 1}
	e = w
	if e.Base().Name != "w" {
		t.Errorf("embedded Base name = %q", e.Base().Name)
	}
}
