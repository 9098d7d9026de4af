// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Binding rules select which variant an instance resolves to. A rule is
// either instance-specific (a nonempty label set) or a catch-all default for
// every otherwise-unmatched instance of one component declaration. The two
// categories never race: an explicit rule always overrides a catch-all, and
// within each category declaration order decides.

package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vk/hdlbind/internal/diag"
)

// BindingRule directs instances to a (design unit, variant) target with an
// optional connection point remapping. Labels holds the explicit instance
// labels the rule covers; when Labels is empty the rule is a catch-all for
// every instance of the component declaration named by Component. PortMap
// maps declared points to variant points; identity is assumed for any point
// absent from the map.
type BindingRule struct {
	Labels    []string
	Component string
	Unit      string
	Variant   string
	PortMap   map[string]string
}

// IsCatchAll reports whether the rule is a catch-all default.
func (r *BindingRule) IsCatchAll() bool {
	return len(r.Labels) == 0
}

// Covers reports whether an explicit rule names the given instance label.
func (r *BindingRule) Covers(label string) bool {
	return slices.Contains(r.Labels, label)
}

// Describe returns the rule's identity for diagnostics.
func (r *BindingRule) Describe() string {
	if r.IsCatchAll() {
		return fmt.Sprintf("others of %q -> %s/%s", r.Component, r.Unit, r.Variant)
	}
	return fmt.Sprintf("instances [%s] -> %s/%s", strings.Join(r.Labels, ", "), r.Unit, r.Variant)
}

// RuleSet is an ordered sequence of binding rules scoped to one structural
// body. At most one rule may match any given instance; CheckConflicts
// enforces that before resolution starts.
type RuleSet struct {
	Rules []*BindingRule
}

// Match returns the rule that applies to the given instance, or nil if the
// instance is unresolved. Explicit-label rules are scanned first and always
// override catch-alls; among catch-alls for the instance's component
// declaration, the first in declaration order wins.
func (rs *RuleSet) Match(label string, component *ComponentDeclaration) *BindingRule {
	if rs == nil {
		return nil
	}
	for _, r := range rs.Rules {
		if !r.IsCatchAll() && r.Covers(label) {
			return r
		}
	}
	for _, r := range rs.Rules {
		if r.IsCatchAll() && r.Component == component.Name {
			return r
		}
	}
	return nil
}

// CatchAlls returns the rule set's catch-all rules in declaration order.
// These are the defaults that apply recursively when a structural variant is
// elaborated without an explicit sub-configuration.
func (rs *RuleSet) CatchAlls() *RuleSet {
	if rs == nil {
		return &RuleSet{}
	}
	out := &RuleSet{}
	for _, r := range rs.Rules {
		if r.IsCatchAll() {
			out.Rules = append(out.Rules, r)
		}
	}
	return out
}

// CheckConflicts rejects ambiguous rule sets: two explicit rules naming the
// same instance label, or two catch-alls targeting the same component
// declaration. Every conflict found is reported, in declaration order.
func (rs *RuleSet) CheckConflicts() diag.Diagnostics {
	if rs == nil {
		return nil
	}
	var ds diag.Diagnostics
	labelOwner := make(map[string]*BindingRule)
	defaultOwner := make(map[string]*BindingRule)
	for _, r := range rs.Rules {
		if r.IsCatchAll() {
			if prev, ok := defaultOwner[r.Component]; ok {
				ds = ds.Append(diag.Newf(diag.ConflictingRule, r.Component,
					"ambiguous default: %s and %s both catch all instances of component %q",
					prev.Describe(), r.Describe(), r.Component))
				continue
			}
			defaultOwner[r.Component] = r
			continue
		}
		for _, label := range r.Labels {
			if prev, ok := labelOwner[label]; ok {
				ds = ds.Append(diag.Newf(diag.ConflictingRule, label,
					"instance %q is covered by both %s and %s",
					label, prev.Describe(), r.Describe()))
				continue
			}
			labelOwner[label] = r
		}
	}
	return ds
}
