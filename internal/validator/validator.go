// Package validator checks a resolved instance graph for connection defects:
// port map entries that name nonexistent points, variant points assigned
// more than one signal, and variant points left without any signal. All
// violations across the whole graph are aggregated into one report; nothing
// is dropped after the first defect.
package validator

import (
	"sort"

	"github.com/vk/hdlbind/internal/diag"
	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
)

// Validate walks the graph bottom-up and returns every violation found. An
// empty result means the graph is fully and unambiguously connected.
func Validate(graph *model.ResolvedGraph, lib *library.Library) diag.Diagnostics {
	var ds diag.Diagnostics
	if graph == nil {
		return ds
	}
	for _, ri := range graph.Instances {
		if ri.Sub != nil {
			ds = ds.Extend(qualify(Validate(ri.Sub, lib), ri.Label))
		}
		ds = ds.Extend(ValidateInstance(ri, lib))
	}
	return ds
}

// ValidateInstance checks a single resolved instance against its chosen
// variant's connection point set.
func ValidateInstance(ri *model.ResolvedInstance, lib *library.Library) diag.Diagnostics {
	var ds diag.Diagnostics

	variant, err := lib.Variant(ri.Unit, ri.Variant)
	if err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			return ds.Append(d)
		}
		return ds.Append(diag.Newf(diag.UnknownVariant, ri.Label, "%v", err))
	}

	// Port map shape: every key must be a declared point, every value a
	// point the chosen variant exposes.
	if ri.Rule != nil && ri.Source != nil {
		keys := make([]string, 0, len(ri.Rule.PortMap))
		for k := range ri.Rule.PortMap {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v := ri.Rule.PortMap[k]
			if !ri.Source.Component.HasPoint(k) {
				ds = ds.Append(diag.Newf(diag.DanglingPortMap, ri.Label,
					"port map names point %q, which component %q does not declare",
					k, ri.Source.Component.Name))
			}
			if !variant.HasPoint(v) {
				ds = ds.Append(diag.Newf(diag.DanglingPortMap, ri.Label,
					"port map sends %q to %q, which variant %s/%s does not expose",
					k, v, ri.Unit, ri.Variant))
			}
		}
	}

	// Identity fallthrough onto a point the variant does not have. Points
	// that were explicitly remapped were already checked above.
	assigned := make(map[string]int, len(ri.Assignments))
	for _, a := range ri.Assignments {
		assigned[a.VariantPoint]++
		if !variant.HasPoint(a.VariantPoint) {
			explicit := false
			if ri.Rule != nil {
				_, explicit = ri.Rule.PortMap[a.DeclaredPoint]
			}
			if !explicit {
				ds = ds.Append(diag.Newf(diag.DanglingPortMap, ri.Label,
					"declared point %q falls through to %q, which variant %s/%s does not expose",
					a.DeclaredPoint, a.VariantPoint, ri.Unit, ri.Variant))
			}
		}
	}

	// Every variant point must end up with exactly one external signal.
	for _, p := range variant.Points {
		switch n := assigned[p]; {
		case n == 0:
			ds = ds.Append(diag.Newf(diag.UnconnectedPoint, ri.Label,
				"variant point %q of %s/%s has no external signal",
				p, ri.Unit, ri.Variant))
		case n > 1:
			ds = ds.Append(diag.Newf(diag.DanglingPortMap, ri.Label,
				"variant point %q of %s/%s is assigned %d signals",
				p, ri.Unit, ri.Variant, n))
		}
	}

	return ds
}

func qualify(ds diag.Diagnostics, label string) diag.Diagnostics {
	out := make(diag.Diagnostics, 0, len(ds))
	for _, d := range ds {
		out = out.Append(&diag.Diagnostic{
			Kind:    d.Kind,
			Subject: label + "." + d.Subject,
			Detail:  d.Detail,
		})
	}
	return out
}
