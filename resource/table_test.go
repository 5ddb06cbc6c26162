package resource

import (
	"slices"
	"testing"

	"github.com/wippyai/glinspect/catalog"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnTableEvent(e Event) {
	o.events = append(o.events, e)
}

func named(index uint32, name string) *Named {
	return &Named{Name: name, Resource: Resource{Index: index, Properties: PropertyMap{}}}
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	if table.Has(catalog.Uniform) {
		t.Fatal("new table should have no slots")
	}

	table.Store(catalog.Uniform, []Entry{named(0, "a"), named(1, "b")})
	entries, ok := table.Get(catalog.Uniform)
	if !ok || len(entries) != 2 {
		t.Fatalf("Get = %v, %v", entries, ok)
	}

	e, ok := table.Entry(catalog.Uniform, 1)
	if !ok || e.Base().Name != "b" {
		t.Fatalf("Entry(1) = %v, %v", e, ok)
	}
	if _, ok := table.Entry(catalog.Uniform, 5); ok {
		t.Error("Entry(5) should miss")
	}

	table.Clear()
	if table.Len() != 0 {
		t.Errorf("Len = %d, want 0", table.Len())
	}
	if table.Has(catalog.Uniform) {
		t.Error("slot should be absent after Clear")
	}
}

func TestTable_EmptySlotIsPresent(t *testing.T) {
	table := NewTable()
	table.Store(catalog.ProgramOutput, nil)

	entries, ok := table.Get(catalog.ProgramOutput)
	if !ok {
		t.Fatal("empty slot should be present")
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty non-nil", entries)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	sub := table.Subscribe(obs)

	table.Store(catalog.Uniform, []Entry{named(0, "a")})
	table.Clear()

	want := []EventType{EventStored, EventCleared}
	if len(obs.events) != len(want) {
		t.Fatalf("events = %d, want %d", len(obs.events), len(want))
	}
	for i, e := range obs.events {
		if e.Type != want[i] {
			t.Errorf("event %d type = %v, want %v", i, e.Type, want[i])
		}
	}
	if obs.events[0].Interface != catalog.Uniform {
		t.Errorf("stored interface = %v", obs.events[0].Interface)
	}

	if !table.Unsubscribe(sub) {
		t.Fatal("Unsubscribe = false, want true")
	}
	table.Store(catalog.Uniform, nil)
	if len(obs.events) != len(want) {
		t.Error("unsubscribed observer still notified")
	}
	if table.Unsubscribe(sub) {
		t.Error("second Unsubscribe = true, want false")
	}
}

func TestTable_UnsubscribeFunc(t *testing.T) {
	table := NewTable()
	var first, second int
	a := table.Subscribe(ObserverFunc(func(Event) { first++ }))
	table.Subscribe(ObserverFunc(func(Event) { second++ }))

	if !table.Unsubscribe(a) {
		t.Fatal("Unsubscribe = false, want true")
	}
	table.Store(catalog.Uniform, nil)
	if first != 0 {
		t.Errorf("removed observer notified %d times", first)
	}
	if second != 1 {
		t.Errorf("remaining observer notified %d times, want 1", second)
	}
}

func TestObserverFunc(t *testing.T) {
	table := NewTable()
	var got []catalog.Interface
	table.Subscribe(ObserverFunc(func(e Event) {
		got = append(got, e.Interface)
	}))
	table.Store(catalog.UniformBlock, nil)
	table.Store(catalog.ProgramInput, nil)
	if !slices.Equal(got, []catalog.Interface{catalog.UniformBlock, catalog.ProgramInput}) {
		t.Errorf("got %v", got)
	}
}
