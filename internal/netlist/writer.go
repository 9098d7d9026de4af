package netlist

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
)

// Writer renders resolved graphs for one simulator target.
type Writer struct {
	lib    *library.Library
	target Target
}

// NewWriter creates a Writer against the given library and target.
func NewWriter(lib *library.Library, target Target) *Writer {
	return &Writer{lib: lib, target: target}
}

// refData is the data a reference template is rendered with.
type refData struct {
	Name    string
	Port    map[string]string
	Generic map[string]string
}

type netlistState struct {
	defs     []string
	seenDefs map[string]bool
	lines    []string
}

// Write flattens the graph into netlist text: dialect definitions first,
// emitted once per distinct variant, then one reference line per primitive
// instance, in elaboration order.
func (w *Writer) Write(out io.Writer, graph *model.ResolvedGraph) error {
	st := &netlistState{seenDefs: make(map[string]bool)}
	if err := w.walk(st, graph, "", nil); err != nil {
		return err
	}
	for _, def := range st.defs {
		if _, err := fmt.Fprintln(out, def); err != nil {
			return err
		}
	}
	for _, line := range st.lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// walk renders one body. prefix is the hierarchical instance path of the
// enclosing structural instance ("" at top level); subst maps the enclosing
// body's external point names to the nets of the level above.
func (w *Writer) walk(st *netlistState, graph *model.ResolvedGraph, prefix string, subst map[string]string) error {
	for _, ri := range graph.Instances {
		variant, err := w.lib.Variant(ri.Unit, ri.Variant)
		if err != nil {
			return err
		}

		name := ri.Label
		if prefix != "" {
			name = prefix + "." + ri.Label
		}

		// Rewrite this instance's nets into the top-level namespace: nets
		// that are the enclosing body's external points take the caller's
		// signal, purely internal nets get hierarchical names.
		ports := make(map[string]string, len(ri.Connections))
		for point, net := range ri.Connections {
			ports[point] = substitute(net, prefix, subst)
		}

		if ri.Sub != nil {
			inner := make(map[string]string, len(variant.Points))
			for _, p := range variant.Points {
				if outer, ok := ports[p]; ok {
					inner[p] = outer
				}
			}
			if err := w.walk(st, ri.Sub, name, inner); err != nil {
				return err
			}
			continue
		}

		dialect, err := w.target.pick(variant)
		if err != nil {
			return fmt.Errorf("instance %q: %w", name, err)
		}

		defKey := ri.Unit + "/" + ri.Variant + "/" + dialect.Name
		if dialect.Definition != "" && !st.seenDefs[defKey] {
			st.seenDefs[defKey] = true
			st.defs = append(st.defs, dialect.Definition)
		}

		line, err := renderReference(dialect, refData{
			Name:    name,
			Port:    ports,
			Generic: genericStrings(ri.Generics),
		})
		if err != nil {
			return fmt.Errorf("instance %q: %w", name, err)
		}
		st.lines = append(st.lines, line)
	}
	return nil
}

func substitute(net, prefix string, subst map[string]string) string {
	if outer, ok := subst[net]; ok {
		return outer
	}
	if prefix == "" {
		return net
	}
	return prefix + "." + net
}

// renderReference executes the dialect's reference template for one instance.
func renderReference(d *model.Dialect, data refData) (string, error) {
	tmpl, err := template.New(d.Name).Parse(d.Reference)
	if err != nil {
		return "", fmt.Errorf("invalid %s reference template: %w", d.Name, err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s reference: %w", d.Name, err)
	}
	return sb.String(), nil
}

// genericStrings converts generic parameter values to their textual form
// for template substitution.
func genericStrings(generics map[string]cty.Value) map[string]string {
	if len(generics) == 0 {
		return nil
	}
	out := make(map[string]string, len(generics))
	for name, val := range generics {
		if s, err := convert.Convert(val, cty.String); err == nil && !s.IsNull() {
			out[name] = s.AsString()
			continue
		}
		out[name] = val.GoString()
	}
	return out
}
