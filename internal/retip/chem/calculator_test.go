package chem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func describe(t *testing.T, smiles string) map[string]float64 {
	t.Helper()

	calc, err := NewCalculator(DefaultConfig())
	require.NoError(t, err)

	m, err := NewParser().Parse(smiles)
	require.NoError(t, err)

	out, err := calc.Compute(m)
	require.NoError(t, err)
	require.Len(t, out, len(calc.Names()))
	return out
}

func TestNewCalculatorNames(t *testing.T) {
	calc, err := NewCalculator(Config{Elements: []string{"C", "N", "C"}})
	require.NoError(t, err)

	names := calc.Names()
	assert.Equal(t, []string{"nC", "nN", "nAtom"}, names[:3])
	assert.Equal(t, "FormalCharge", names[len(names)-1])

	names[0] = "changed"
	assert.Equal(t, "nC", calc.Names()[0])
}

func TestNewCalculatorRejectsConfig(t *testing.T) {
	_, err := NewCalculator(Config{})
	assert.Error(t, err)

	_, err = NewCalculator(Config{Elements: []string{"C", "Qq"}})
	assert.Error(t, err)
}

func TestComputeEthanol(t *testing.T) {
	out := describe(t, "CCO")

	assert.Equal(t, 2.0, out["nC"])
	assert.Equal(t, 1.0, out["nO"])
	assert.Equal(t, 6.0, out["nH"])
	assert.Equal(t, 9.0, out["nAtom"])
	assert.Equal(t, 3.0, out["nHeavyAtom"])
	assert.Equal(t, 8.0, out["nBonds"])
	assert.Equal(t, 8.0, out["nBondsS"])
	assert.Equal(t, 0.0, out["nRing"])
	assert.Equal(t, 0.0, out["nRot"])
	assert.Equal(t, 1.0, out["FCSP3"])
	assert.Equal(t, 1.0, out["nHBDon"])
	assert.Equal(t, 1.0, out["nHBAcc"])
	assert.InDelta(t, 46.069, out["MW"], 1e-3)
	assert.InDelta(t, 46.069/9, out["AMW"], 1e-3)
}

func TestComputeBenzene(t *testing.T) {
	out := describe(t, "c1ccccc1")

	assert.Equal(t, 6.0, out["nAromAtom"])
	assert.Equal(t, 1.0, out["nRing"])
	assert.Equal(t, 6.0, out["nBondsA"])
	assert.Equal(t, 12.0, out["nBonds"])
	assert.Equal(t, 0.0, out["FCSP3"])
	assert.InDelta(t, 78.114, out["MW"], 1e-3)
}

func TestComputeRotatableBonds(t *testing.T) {
	assert.Equal(t, 1.0, describe(t, "CCCC")["nRot"])
	assert.Equal(t, 0.0, describe(t, "C1CCCCC1")["nRot"])
	assert.Equal(t, 1.0, describe(t, "c1ccccc1-c1ccccc1")["nRot"])
	assert.Equal(t, 2.0, describe(t, "c1ccccc1-c1ccccc1")["nRing"])
}

func TestComputeHalogensAndCharge(t *testing.T) {
	out := describe(t, "ClC(Br)(F)I.[NH4+].[Cl-]")

	assert.Equal(t, 5.0, out["nX"])
	assert.Equal(t, 2.0, out["nCl"])
	assert.Equal(t, 0.0, out["FormalCharge"])
	assert.Equal(t, 1.0, out["nHBDon"])
	assert.Equal(t, 0.0, out["nHBAcc"])
}

func TestComputeUndefinedDescriptorsAreNaN(t *testing.T) {
	out := describe(t, "O")

	assert.True(t, math.IsNaN(out["FCSP3"]))
	assert.Equal(t, 2.0, out["nH"])
	assert.InDelta(t, 18.015, out["MW"], 1e-3)
}

func TestComputeUsesIsotopeMass(t *testing.T) {
	assert.InDelta(t, 17.032, describe(t, "[13CH4]")["MW"], 1e-3)
}

func TestComputeRejectsEmptyMolecule(t *testing.T) {
	calc, err := NewCalculator(DefaultConfig())
	require.NoError(t, err)

	_, err = calc.Compute(&Molecule{})
	assert.Error(t, err)
	_, err = calc.Compute(nil)
	assert.Error(t, err)
}
