package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/glinspect/catalog"
	"github.com/wippyai/glinspect/handler"
	"github.com/wippyai/glinspect/inspector"
	"github.com/wippyai/glinspect/resource"
)

// Unnamed is shown for resources without a name.
const Unnamed = "<unnamed>"

// Options controls what is rendered.
type Options struct {
	// Interfaces restricts the report; nil renders every interface the
	// inspector collects.
	Interfaces []catalog.Interface
	// HideEmpty skips interfaces without resources.
	HideEmpty bool
}

// Printer renders inspectors as text.
type Printer struct {
	styles Styles
	opts   Options
}

// New creates a printer whose colors follow the capabilities of w. Writers
// that are not terminals get plain text.
func New(w io.Writer, opts Options) *Printer {
	return &Printer{styles: NewStyles(lipgloss.NewRenderer(w)), opts: opts}
}

// NewWithStyles creates a printer with explicit styles.
func NewWithStyles(styles Styles, opts Options) *Printer {
	return &Printer{styles: styles, opts: opts}
}

// Render writes the collected data of insp to w.
func Render(w io.Writer, insp *inspector.Inspector, opts Options) error {
	_, err := io.WriteString(w, New(w, opts).Program(insp))
	return err
}

// RenderCounts writes the active resource counts of insp to w.
func RenderCounts(w io.Writer, insp *inspector.Inspector) error {
	_, err := io.WriteString(w, New(w, Options{}).Counts(insp))
	return err
}

// Program formats every selected interface of insp.
func (p *Printer) Program(insp *inspector.Inspector) string {
	var b strings.Builder

	name := insp.Name()
	if name == "" {
		name = "program"
	}
	b.WriteString(p.styles.Title.Render(name))
	fmt.Fprintf(&b, " program %d, generation %d, %s\n", insp.Program(), insp.Generation(), insp.State())

	failures := insp.Failures()
	for _, iface := range p.interfaces(insp) {
		section := p.Interface(insp, iface, failures[iface])
		if section == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(section)
	}
	return b.String()
}

// Counts formats the active resource count of every interface with at
// least one resource.
func (p *Printer) Counts(insp *inspector.Inspector) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Program: %2d\n", insp.Program())
	for _, c := range insp.ActiveCounts() {
		fmt.Fprintf(&b, "  • %s: %d\n", p.styles.Interface.Render(c.Interface.String()), c.Active)
	}
	return b.String()
}

// Interface formats one interface. It returns "" for an empty interface
// when empty interfaces are hidden.
func (p *Printer) Interface(insp *inspector.Inspector, iface catalog.Interface, failure error) string {
	entries, _ := insp.Container(iface)
	if len(entries) == 0 && failure == nil && p.opts.HideEmpty {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", p.styles.Interface.Render(iface.String()), len(entries))
	if failure != nil {
		b.WriteString("  ")
		b.WriteString(p.styles.Error.Render("error: " + failure.Error()))
		b.WriteString("\n")
	}
	props, _ := catalog.PropertiesFor(iface)
	for _, e := range entries {
		b.WriteString(p.Entry(e, props))
	}
	return b.String()
}

// Entry formats a single resource, properties first in catalog order.
func (p *Printer) Entry(e resource.Entry, order []catalog.Property) string {
	base := e.Base()
	name := base.Name
	if name == "" {
		name = Unnamed
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  [%d] %s\n", base.Index, p.styles.Name.Render(name))

	keys := slices.Clone(order)
	for _, k := range base.Properties.Keys() {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	var fields []string
	for _, k := range keys {
		v, ok := base.Properties.Get(k)
		if !ok {
			continue
		}
		fields = append(fields, p.styles.Property.Render(k.String()+"=")+p.styles.Value.Render(FormatValue(k, v)))
	}
	if len(fields) > 0 {
		b.WriteString("      ")
		b.WriteString(strings.Join(fields, " "))
		b.WriteString("\n")
	}

	if extra := p.linked(e); extra != "" {
		b.WriteString("      ")
		b.WriteString(extra)
		b.WriteString("\n")
	}
	return b.String()
}

// linked describes the cross references a handler resolved.
func (p *Printer) linked(e resource.Entry) string {
	switch v := e.(type) {
	case *handler.Block:
		return p.styles.Muted.Render("members: ") + entryNames(v.Members)
	case *handler.SubroutineUniform:
		s := p.styles.Muted.Render("compatible: ") + entryNames(v.Compatible)
		if name := v.SelectedName(); name != "" {
			s += p.styles.Muted.Render(" selected: ") + name
		}
		return s
	}
	return ""
}

func entryNames(es []resource.Entry) string {
	if len(es) == 0 {
		return "-"
	}
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Base().Name
		if out[i] == "" {
			out[i] = Unnamed
		}
	}
	return strings.Join(out, ", ")
}

// FormatValue renders a property value; enum valued properties use their
// symbolic name when known.
func FormatValue(p catalog.Property, v int32) string {
	if p == catalog.Type {
		return catalog.DataType(uint32(v)).String()
	}
	return strconv.FormatInt(int64(v), 10)
}

func (p *Printer) interfaces(insp *inspector.Inspector) []catalog.Interface {
	if p.opts.Interfaces == nil {
		return insp.Interfaces()
	}
	collected := insp.Interfaces()
	out := make([]catalog.Interface, 0, len(p.opts.Interfaces))
	for _, iface := range p.opts.Interfaces {
		if slices.Contains(collected, iface) {
			out = append(out, iface)
		}
	}
	return out
}
