package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/svcheck/internal/token"
)

func TestDefsOfReturnsScopeMapForScopeKinds(t *testing.T) {
	mod := NewModule("m", token.Position{})
	mod.Module.Defs["x"] = NewMember("x", NewIntVector("logic", false, ""), token.Position{})
	require.Len(t, mod.DefsOf(), 1)

	leaf := NewEnumValue("col_e", token.Position{})
	assert.Nil(t, leaf.DefsOf())
}

func TestNewTypeCarriesUnpackedDims(t *testing.T) {
	typ := NewType(NewIntVector("logic", false, "7:0"), "[3:0]", token.Position{})
	require.Equal(t, KindType, typ.Kind)
	assert.Equal(t, "[3:0]", typ.UnpackedDims)
	assert.Equal(t, "7:0", typ.Type.Packed)
}

func TestInstanceStoresTypeNameForLaterLinking(t *testing.T) {
	inst := NewInstance("counter", token.Position{Line: 4, Col: 2})
	assert.Equal(t, "counter", inst.InstanceOf)
	assert.False(t, inst.Linked)
}
