package hcl

import (
	"fmt"

	hcllib "github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/hdlbind/internal/library"
	"github.com/vk/hdlbind/internal/model"
	"github.com/vk/hdlbind/internal/schema"
)

// translateComponent converts a component block into the agnostic model.
func translateComponent(c *schema.Component) *model.ComponentDeclaration {
	return &model.ComponentDeclaration{
		Name:     c.Name,
		Points:   c.Points,
		Generics: c.Generics,
	}
}

// translateDesignUnit converts a design_unit block and its variants.
// Components referenced by structural bodies must already be registered.
func translateDesignUnit(du *schema.DesignUnit, lib *library.Library) (*model.DesignUnit, error) {
	unit := &model.DesignUnit{
		Name:     du.Name,
		Variants: make(map[string]*model.Variant, len(du.Variants)),
	}
	for _, v := range du.Variants {
		if _, exists := unit.Variants[v.Name]; exists {
			return nil, fmt.Errorf("design unit %q: variant %q declared more than once", du.Name, v.Name)
		}
		variant, err := translateVariant(du.Name, v, lib)
		if err != nil {
			return nil, err
		}
		unit.Variants[v.Name] = variant
	}
	return unit, nil
}

func translateVariant(unitName string, v *schema.Variant, lib *library.Library) (*model.Variant, error) {
	if v.Primitive != nil && v.Body != nil {
		return nil, fmt.Errorf("variant %s/%s: cannot be both primitive and structural", unitName, v.Name)
	}
	variant := &model.Variant{
		Unit:   unitName,
		Name:   v.Name,
		Points: v.Points,
	}
	if v.Primitive != nil {
		prim := &model.Primitive{Dialects: make(map[string]*model.Dialect, len(v.Primitive.Dialects))}
		for _, d := range v.Primitive.Dialects {
			if _, exists := prim.Dialects[d.Name]; exists {
				return nil, fmt.Errorf("variant %s/%s: dialect %q declared more than once", unitName, v.Name, d.Name)
			}
			prim.Dialects[d.Name] = &model.Dialect{
				Name:       d.Name,
				Definition: d.Definition,
				Reference:  d.Reference,
			}
		}
		variant.Primitive = prim
	}
	if v.Body != nil {
		body, err := translateBody(unitName, v, lib)
		if err != nil {
			return nil, err
		}
		variant.Body = body
	}
	return variant, nil
}

func translateBody(unitName string, v *schema.Variant, lib *library.Library) (*model.StructuralBody, error) {
	body := &model.StructuralBody{
		Unit:    unitName,
		Variant: v.Name,
		Points:  v.Points,
	}
	seen := make(map[string]bool, len(v.Body.Instances))
	for _, si := range v.Body.Instances {
		if seen[si.Label] {
			return nil, fmt.Errorf("variant %s/%s: instance label %q used more than once", unitName, v.Name, si.Label)
		}
		seen[si.Label] = true

		comp, err := lib.Component(si.Component)
		if err != nil {
			return nil, fmt.Errorf("variant %s/%s: instance %q: %w", unitName, v.Name, si.Label, err)
		}
		for pt := range si.Connect {
			if !comp.HasPoint(pt) {
				return nil, fmt.Errorf("variant %s/%s: instance %q wires point %q, which component %q does not declare",
					unitName, v.Name, si.Label, pt, comp.Name)
			}
		}

		generics, err := evalGenerics(si.Generics)
		if err != nil {
			return nil, fmt.Errorf("variant %s/%s: instance %q: %w", unitName, v.Name, si.Label, err)
		}

		body.Instances = append(body.Instances, &model.Instance{
			Label:       si.Label,
			Component:   comp,
			Connections: si.Connect,
			Generics:    generics,
		})
	}
	return body, nil
}

// evalGenerics evaluates a generics object expression into named cty values.
// Generic values are constants; no evaluation context is available.
func evalGenerics(expr hcllib.Expression) (map[string]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate generics: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("generics must be an object, got %s", ty.FriendlyName())
	}
	if val.LengthInt() == 0 {
		return nil, nil
	}
	return val.AsValueMap(), nil
}

// translateConfigure converts a configure block into a Configuration tree.
func translateConfigure(c *schema.Configure) (*model.Configuration, error) {
	rules, err := translateBinds(c.Binds)
	if err != nil {
		return nil, fmt.Errorf("configure %s/%s: %w", c.Unit, c.Variant, err)
	}
	subs, err := translateSubs(c.Subs)
	if err != nil {
		return nil, fmt.Errorf("configure %s/%s: %w", c.Unit, c.Variant, err)
	}
	return &model.Configuration{
		Unit:    c.Unit,
		Variant: c.Variant,
		Rules:   rules,
		Sub:     subs,
	}, nil
}

func translateForInstance(fi *schema.ForInstance) (*model.Configuration, error) {
	rules, err := translateBinds(fi.Binds)
	if err != nil {
		return nil, fmt.Errorf("for_instance %q: %w", fi.Label, err)
	}
	subs, err := translateSubs(fi.Subs)
	if err != nil {
		return nil, fmt.Errorf("for_instance %q: %w", fi.Label, err)
	}
	return &model.Configuration{Rules: rules, Sub: subs}, nil
}

func translateSubs(fis []*schema.ForInstance) (map[string]*model.Configuration, error) {
	if len(fis) == 0 {
		return nil, nil
	}
	subs := make(map[string]*model.Configuration, len(fis))
	for _, fi := range fis {
		if _, exists := subs[fi.Label]; exists {
			return nil, fmt.Errorf("for_instance %q given more than once", fi.Label)
		}
		sub, err := translateForInstance(fi)
		if err != nil {
			return nil, err
		}
		subs[fi.Label] = sub
	}
	return subs, nil
}

func translateBinds(binds []*schema.Bind) (*model.RuleSet, error) {
	rs := &model.RuleSet{}
	for _, b := range binds {
		switch {
		case len(b.Instances) > 0 && b.OthersOf != "":
			return nil, fmt.Errorf("bind targeting %s/%s: instances and others_of are mutually exclusive", b.Unit, b.Variant)
		case len(b.Instances) == 0 && b.OthersOf == "":
			return nil, fmt.Errorf("bind targeting %s/%s: one of instances or others_of is required", b.Unit, b.Variant)
		}
		rs.Rules = append(rs.Rules, &model.BindingRule{
			Labels:    b.Instances,
			Component: b.OthersOf,
			Unit:      b.Unit,
			Variant:   b.Variant,
			PortMap:   b.PortMap,
		})
	}
	return rs, nil
}
