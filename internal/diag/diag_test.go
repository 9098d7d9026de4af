package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic_Error(t *testing.T) {
	d := Newf(UnresolvedInstance, "m1", "no binding rule matches instance %q", "m1")
	assert.Equal(t, `UnresolvedInstance: m1: no binding rule matches instance "m1"`, d.Error())

	noSubject := Newf(ConflictingRule, "", "ambiguous rule set")
	assert.Equal(t, "ConflictingRule: ambiguous rule set", noSubject.Error())
}

func TestDiagnostics_Error(t *testing.T) {
	var ds Diagnostics
	assert.Equal(t, "no diagnostics", ds.Error())
	assert.False(t, ds.HasErrors())

	ds = ds.Append(Newf(UnconnectedPoint, "i1", "point has no signal"))
	assert.Equal(t, "UnconnectedPoint: i1: point has no signal", ds.Error())

	ds = ds.Append(Newf(DanglingPortMap, "i2", "bad mapping"))
	assert.True(t, ds.HasErrors())
	assert.Contains(t, ds.Error(), "2 diagnostics:")
	assert.Contains(t, ds.Error(), "UnconnectedPoint: i1")
	assert.Contains(t, ds.Error(), "DanglingPortMap: i2")
}

func TestDiagnostics_AppendIgnoresNil(t *testing.T) {
	var ds Diagnostics
	ds = ds.Append(nil)
	assert.Empty(t, ds)
}

func TestDiagnostics_OnlyKind(t *testing.T) {
	var ds Diagnostics
	assert.False(t, ds.OnlyKind(UnresolvedInstance))

	ds = ds.Append(Newf(UnresolvedInstance, "a", ""), Newf(UnresolvedInstance, "b", ""))
	assert.True(t, ds.OnlyKind(UnresolvedInstance))

	ds = ds.Append(Newf(ConflictingRule, "c", ""))
	assert.False(t, ds.OnlyKind(UnresolvedInstance))
}
