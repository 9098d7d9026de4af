package integration_tests

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/hdlbind/internal/testutil"
)

const bufferLibrary = `
component "Inverter" {
  points   = ["in", "out"]
  generics = ["w"]
}

component "Buffer" {
  points = ["a", "y"]
}

design_unit "Inv" {
  variant "Gate" {
    points = ["in", "out"]
    primitive {
      dialect "spice" {
        definition = ".subckt inv in out"
        reference  = "xinv_{{.Name}} {{.Port.in}} {{.Port.out}} inv W={{.Generic.w}}"
      }
      dialect "xyce" {
        definition = "* xyce inverter"
        reference  = "YINV {{.Name}} {{.Port.in}} {{.Port.out}}"
      }
    }
  }
}

design_unit "Buf" {
  variant "Structural" {
    points = ["a", "y"]
    body {
      instance "inv1" {
        component = "Inverter"
        connect   = { in = "a", out = "mid" }
        generics  = { w = "2u" }
      }
      instance "inv2" {
        component = "Inverter"
        connect   = { in = "mid", out = "y" }
        generics  = { w = "4u" }
      }
    }
  }
}

design_unit "Top" {
  variant "TB" {
    points = []
    body {
      instance "b1" {
        component = "Buffer"
        connect   = { a = "n_in", y = "n_out" }
      }
    }
  }
}
`

const bufferConfig = `
configure "Top" "TB" {
  bind {
    others_of = "Buffer"
    unit      = "Buf"
    variant   = "Structural"
  }

  for_instance "b1" {
    bind {
      others_of = "Inverter"
      unit      = "Inv"
      variant   = "Gate"
    }
  }
}
`

func TestHierarchy_NestedConfiguration(t *testing.T) {
	t.Parallel()

	res := testutil.RunElaboration(t,
		map[string]string{"buffer.hcl": bufferLibrary}, bufferConfig, "")
	require.NoError(t, res.Err, "logs:\n%s", res.LogOutput)
	require.True(t, json.Valid([]byte(res.Output)), "report should be valid JSON")
	assert.Contains(t, res.Output, `"body"`)
	assert.Contains(t, res.Output, `"generics"`)

	require.NotNil(t, res.Graph)
	b1 := res.Graph.Instance("b1")
	require.NotNil(t, b1)
	assert.Equal(t, "Buf", b1.Unit)

	require.NotNil(t, b1.Sub)
	require.Len(t, b1.Sub.Instances, 2)
	for _, inner := range b1.Sub.Instances {
		assert.Equal(t, "Inv", inner.Unit)
		assert.Equal(t, "Gate", inner.Variant)
	}
}

func TestHierarchy_FlattenedNetlist(t *testing.T) {
	t.Parallel()

	res := testutil.RunElaboration(t,
		map[string]string{"buffer.hcl": bufferLibrary}, bufferConfig, "ngspice")
	require.NoError(t, res.Err, "logs:\n%s", res.LogOutput)

	// The Buf body's external nets take the top-level signals; its internal
	// net is prefixed with the instance path.
	assert.Contains(t, res.Output, "xinv_b1.inv1 n_in b1.mid inv W=2u")
	assert.Contains(t, res.Output, "xinv_b1.inv2 b1.mid n_out inv W=4u")

	// One definition for two inverter instances.
	assert.Equal(t, 1, countOccurrences(res.Output, ".subckt inv in out"))
}

func TestHierarchy_TargetDialectPreferred(t *testing.T) {
	t.Parallel()

	res := testutil.RunElaboration(t,
		map[string]string{"buffer.hcl": bufferLibrary}, bufferConfig, "xyce")
	require.NoError(t, res.Err, "logs:\n%s", res.LogOutput)

	// xyce has a dedicated dialect, so the generic spice form is not used.
	assert.Contains(t, res.Output, "YINV b1.inv1 n_in b1.mid")
	assert.NotContains(t, res.Output, "xinv_")
}

func TestHierarchy_DefaultsApplyWithoutSubConfiguration(t *testing.T) {
	t.Parallel()

	// No for_instance block: the Inverter catch-all applies recursively
	// inside the Buf body.
	config := `
configure "Top" "TB" {
  bind {
    others_of = "Buffer"
    unit      = "Buf"
    variant   = "Structural"
  }
  bind {
    others_of = "Inverter"
    unit      = "Inv"
    variant   = "Gate"
  }
}
`
	res := testutil.RunElaboration(t,
		map[string]string{"buffer.hcl": bufferLibrary}, config, "")
	require.NoError(t, res.Err, "logs:\n%s", res.LogOutput)
	require.NotNil(t, res.Graph)

	b1 := res.Graph.Instance("b1")
	require.NotNil(t, b1)
	require.NotNil(t, b1.Sub)
	assert.Equal(t, "Inv", b1.Sub.Instances[0].Unit)
}

func TestHierarchy_NestedUnresolvedNamesQualified(t *testing.T) {
	t.Parallel()

	// The Buffer rule resolves b1, but nothing covers the inverters inside.
	config := `
configure "Top" "TB" {
  bind {
    others_of = "Buffer"
    unit      = "Buf"
    variant   = "Structural"
  }
}
`
	res := testutil.RunElaboration(t,
		map[string]string{"buffer.hcl": bufferLibrary}, config, "")
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "b1.inv1")
	assert.Contains(t, res.Err.Error(), "b1.inv2")
}

func countOccurrences(s, sub string) int {
	count := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			count++
		}
	}
	return count
}
