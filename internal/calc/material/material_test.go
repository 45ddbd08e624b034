package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOr(t *testing.T) {
	m := Material{FyMPa: 235}.Or(Steel())
	assert.Equal(t, 210.0, m.E_GPa)
	assert.Equal(t, 235.0, m.FyMPa)
	assert.Equal(t, 7850.0, m.DensityKgM3)
	assert.Equal(t, 9.81, m.GravityMS2)
	assert.NoError(t, m.Validate())
}

func TestValidate(t *testing.T) {
	assert.Error(t, Material{}.Validate())
	assert.NoError(t, Steel().Validate())
}

func TestSI(t *testing.T) {
	s := Steel()
	assert.InDelta(t, 210e9, s.EPa(), 1)
	assert.InDelta(t, 345e6, s.FyPa(), 1e-3)
	assert.InDelta(t, 77008.5, s.UnitWeight(), 1e-6)
}
