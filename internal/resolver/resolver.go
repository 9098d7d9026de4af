// Package resolver elaborates a structural body against a binding
// configuration and a design library, producing a resolved instance graph.
//
// Resolution is a pure, synchronous tree traversal: it never mutates the
// library, the body or the configuration, and identical inputs always
// produce an identical graph or an identical error. Structural defects in
// the request itself (conflicting rules, unknown targets, cyclic design
// hierarchies) abort immediately; unresolved instances are collected across
// the whole graph and returned as one batch so a single pass surfaces every
// missing rule.
package resolver

import (
	"context"
	"strings"

	"github.com/vk/hdlbind/internal/ctxlog"
	"github.com/vk/hdlbind/internal/diag"
	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
)

// Resolve elaborates body against cfg, choosing a variant and a final
// connection mapping for every instance and recursing into structural
// variants. A nil cfg behaves like an empty rule set.
func Resolve(ctx context.Context, body *model.StructuralBody, cfg *model.Configuration, lib *library.Library) (*model.ResolvedGraph, error) {
	e := &elaborator{lib: lib, onPath: make(map[string]bool)}
	if body.Unit != "" {
		e.enter(body.Unit)
	}
	graph, err := e.resolveBody(ctx, body, cfg)
	if err != nil {
		return nil, err
	}
	return graph, nil
}

// elaborator tracks the design units on the current recursion path so that a
// variant's body instancing its own enclosing unit fails fast instead of
// recursing forever.
type elaborator struct {
	lib    *library.Library
	path   []string
	onPath map[string]bool
}

func (e *elaborator) enter(unit string) {
	e.path = append(e.path, unit)
	e.onPath[unit] = true
}

func (e *elaborator) leave(unit string) {
	e.path = e.path[:len(e.path)-1]
	delete(e.onPath, unit)
}

func (e *elaborator) resolveBody(ctx context.Context, body *model.StructuralBody, cfg *model.Configuration) (*model.ResolvedGraph, error) {
	logger := ctxlog.FromContext(ctx)

	rules := &model.RuleSet{}
	if cfg != nil && cfg.Rules != nil {
		rules = cfg.Rules
	}

	// An ambiguous rule set is rejected before any instance is resolved;
	// any choice among conflicting rules would be arbitrary.
	if ds := rules.CheckConflicts(); ds.HasErrors() {
		return nil, ds
	}

	graph := &model.ResolvedGraph{Unit: body.Unit, Variant: body.Variant}
	var unresolved diag.Diagnostics

	for _, inst := range body.Instances {
		rule := rules.Match(inst.Label, inst.Component)
		if rule == nil {
			unresolved = unresolved.Append(diag.Newf(diag.UnresolvedInstance, inst.Label,
				"no binding rule matches instance %q of component %q", inst.Label, inst.Component.Name))
			continue
		}

		variant, err := e.lib.Variant(rule.Unit, rule.Variant)
		if err != nil {
			// The rule targets a catalog entry that does not exist; the
			// request is ill-formed and nothing useful can be salvaged.
			return nil, err
		}

		ri := bind(inst, rule)

		if variant.IsStructural() {
			if e.onPath[rule.Unit] {
				return nil, diag.Newf(diag.CyclicDesignHierarchy, rule.Unit,
					"design unit %q re-entered during its own elaboration (path: %s)",
					rule.Unit, strings.Join(append(append([]string{}, e.path...), rule.Unit), " -> "))
			}

			sub := cfg.SubFor(inst.Label)
			if sub == nil {
				// No sub-configuration supplied: the catch-all defaults of
				// the current rule set apply recursively, and every nested
				// instance must satisfy one of them.
				sub = &model.Configuration{Rules: rules.CatchAlls()}
			}

			e.enter(rule.Unit)
			subGraph, err := e.resolveBody(ctx, variant.Body, sub)
			e.leave(rule.Unit)
			if err != nil {
				ds, ok := err.(diag.Diagnostics)
				if !ok || !ds.OnlyKind(diag.UnresolvedInstance) {
					return nil, err
				}
				// Nested unresolved instances join the outer batch so one
				// pass reports every missing rule at every depth.
				unresolved = unresolved.Extend(qualify(ds, inst.Label))
			}
			ri.Sub = subGraph
		}

		graph.Instances = append(graph.Instances, ri)
	}

	if unresolved.HasErrors() {
		return nil, unresolved
	}

	logger.Debug("Body resolved.", "unit", body.Unit, "variant", body.Variant, "instances", len(graph.Instances))
	return graph, nil
}

// bind builds the resolved instance for one matched rule: every wired
// declared point is rekeyed through the rule's port map (identity for
// unmapped points) onto the chosen variant's point namespace.
func bind(inst *model.Instance, rule *model.BindingRule) *model.ResolvedInstance {
	ri := &model.ResolvedInstance{
		Label:       inst.Label,
		Unit:        rule.Unit,
		Variant:     rule.Variant,
		Connections: make(map[string]string, len(inst.Connections)),
		Generics:    inst.Generics,
		Source:      inst,
		Rule:        rule,
	}
	for _, pt := range inst.Component.Points {
		signal, wired := inst.Connections[pt]
		if !wired {
			// Left open; the variant point surfaces as unconnected during
			// validation.
			continue
		}
		vp := pt
		if mapped, ok := rule.PortMap[pt]; ok {
			vp = mapped
		}
		ri.Assignments = append(ri.Assignments, model.Assignment{
			DeclaredPoint: pt,
			VariantPoint:  vp,
			Signal:        signal,
		})
		ri.Connections[vp] = signal
	}
	return ri
}

// qualify prefixes nested diagnostic subjects with the enclosing instance
// label, yielding hierarchical names like "m1.inv2".
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
