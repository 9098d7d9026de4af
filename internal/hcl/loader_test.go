package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const componentsHCL = `
component "HalfAdder" {
  points = ["u", "v", "x", "y"]
}

component "Mos" {
  points   = ["g", "d", "s", "b"]
  generics = ["w", "l"]
}
`

const unitsHCL = `
design_unit "HA1" {
  variant "RTL" {
    points = ["u", "v", "x", "y"]
  }
}

design_unit "HA2" {
  variant "Gate" {
    points = ["a", "b", "sum", "carry"]

    primitive {
      dialect "spice" {
        definition = ".subckt ha2 a b sum carry"
        reference  = "xha2_{{.Name}} {{.Port.a}} {{.Port.b}} {{.Port.sum}} {{.Port.carry}} ha2"
      }
    }
  }
}

design_unit "FullAdder" {
  variant "Structural" {
    points = ["a", "b", "cin", "sum", "cout"]

    body {
      instance "m1" {
        component = "HalfAdder"
        connect = {
          u = "a"
          v = "b"
          x = "s1"
          y = "c1"
        }
      }

      instance "m2" {
        component = "HalfAdder"
        connect = {
          u = "s1"
          v = "cin"
          x = "sum"
          y = "c2"
        }
        generics = {
          w = "1u"
        }
      }
    }
  }
}
`

const configHCL = `
configure "FullAdder" "Structural" {
  bind {
    instances = ["m2"]
    unit      = "HA2"
    variant   = "Gate"
    port_map = {
      u = "a"
      v = "b"
      x = "sum"
      y = "carry"
    }
  }

  bind {
    others_of = "HalfAdder"
    unit      = "HA1"
    variant   = "RTL"
  }

  for_instance "m1" {
    bind {
      others_of = "Mos"
      unit      = "Nmos"
      variant   = "RTL"
    }
  }
}
`

func TestLoadLibrary(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"components.hcl": componentsHCL,
		"units.hcl":      unitsHCL,
	})

	lib, err := NewLoader().LoadLibrary(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 2, lib.Components())
	assert.Equal(t, 3, lib.Units())

	comp, err := lib.Component("Mos")
	require.NoError(t, err)
	assert.Equal(t, []string{"w", "l"}, comp.Generics)

	gate, err := lib.Variant("HA2", "Gate")
	require.NoError(t, err)
	require.NotNil(t, gate.Primitive)
	spice := gate.Primitive.Dialects["spice"]
	require.NotNil(t, spice)
	assert.Contains(t, spice.Definition, ".subckt ha2")

	structural, err := lib.Variant("FullAdder", "Structural")
	require.NoError(t, err)
	require.True(t, structural.IsStructural())
	require.Len(t, structural.Body.Instances, 2)

	m1 := structural.Body.Instance("m1")
	require.NotNil(t, m1)
	assert.Equal(t, "HalfAdder", m1.Component.Name)
	assert.Equal(t, map[string]string{"u": "a", "v": "b", "x": "s1", "y": "c1"}, m1.Connections)
	assert.Nil(t, m1.Generics)

	m2 := structural.Body.Instance("m2")
	require.NotNil(t, m2)
	require.Contains(t, m2.Generics, "w")
	assert.Equal(t, cty.StringVal("1u"), m2.Generics["w"])
}

func TestLoadLibrary_ComponentsAcrossFiles(t *testing.T) {
	// The body in units.hcl references components declared in a separate
	// file; registration order must not matter.
	dir := writeFiles(t, map[string]string{
		"zz_components.hcl": componentsHCL,
		"aa_units.hcl":      unitsHCL,
	})

	lib, err := NewLoader().LoadLibrary(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 3, lib.Units())
}

func TestLoadLibrary_UnknownComponent(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"units.hcl": unitsHCL, // HalfAdder never declared
	})

	_, err := NewLoader().LoadLibrary(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"HalfAdder"`)
}

func TestLoadLibrary_WiringUndeclaredPoint(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.hcl": componentsHCL + `
design_unit "Bad" {
  variant "Structural" {
    points = []
    body {
      instance "i1" {
        component = "HalfAdder"
        connect = { nosuch = "n1" }
      }
    }
  }
}
`,
	})

	_, err := NewLoader().LoadLibrary(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nosuch"`)
}

func TestLoadLibrary_DuplicateInstanceLabel(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"lib.hcl": componentsHCL + `
design_unit "Bad" {
  variant "Structural" {
    points = []
    body {
      instance "i1" {
        component = "HalfAdder"
        connect = { u = "n1" }
      }
      instance "i1" {
        component = "HalfAdder"
        connect = { v = "n2" }
      }
    }
  }
}
`,
	})

	_, err := NewLoader().LoadLibrary(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestLoadConfiguration(t *testing.T) {
	dir := writeFiles(t, map[string]string{"config.hcl": configHCL})

	cfg, err := NewLoader().LoadConfiguration(context.Background(), filepath.Join(dir, "config.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "FullAdder", cfg.Unit)
	assert.Equal(t, "Structural", cfg.Variant)
	require.Len(t, cfg.Rules.Rules, 2)

	explicit := cfg.Rules.Rules[0]
	assert.Equal(t, []string{"m2"}, explicit.Labels)
	assert.Equal(t, "HA2", explicit.Unit)
	assert.Equal(t, map[string]string{"u": "a", "v": "b", "x": "sum", "y": "carry"}, explicit.PortMap)

	catchAll := cfg.Rules.Rules[1]
	assert.True(t, catchAll.IsCatchAll())
	assert.Equal(t, "HalfAdder", catchAll.Component)

	require.Contains(t, cfg.Sub, "m1")
	sub := cfg.Sub["m1"]
	require.Len(t, sub.Rules.Rules, 1)
	assert.Equal(t, "Nmos", sub.Rules.Rules[0].Unit)
}

func TestLoadConfiguration_BothSelectors(t *testing.T) {
	dir := writeFiles(t, map[string]string{"config.hcl": `
configure "X" "Y" {
  bind {
    instances = ["m1"]
    others_of = "HalfAdder"
    unit      = "HA1"
    variant   = "RTL"
  }
}
`})

	_, err := NewLoader().LoadConfiguration(context.Background(), filepath.Join(dir, "config.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoadConfiguration_NoSelector(t *testing.T) {
	dir := writeFiles(t, map[string]string{"config.hcl": `
configure "X" "Y" {
  bind {
    unit    = "HA1"
    variant = "RTL"
  }
}
`})

	_, err := NewLoader().LoadConfiguration(context.Background(), filepath.Join(dir, "config.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of instances or others_of is required")
}

func TestLoadConfiguration_DuplicateForInstance(t *testing.T) {
	dir := writeFiles(t, map[string]string{"config.hcl": `
configure "X" "Y" {
  for_instance "m1" {}
  for_instance "m1" {}
}
`})

	_, err := NewLoader().LoadConfiguration(context.Background(), filepath.Join(dir, "config.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `for_instance "m1" given more than once`)
}
