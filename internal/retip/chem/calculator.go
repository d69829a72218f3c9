package chem

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// Config fixes what a Calculator produces. It is treated as an immutable value.
type Config struct {
	// Elements get one n<Element> count descriptor each, in this order.
	Elements []string
}

// DefaultConfig counts the elements common in small organic molecules.
func DefaultConfig() Config {
	return Config{
		Elements: []string{"H", "B", "C", "N", "O", "S", "P", "F", "Cl", "Br", "I"},
	}
}

// descriptors computed from the graph after the per-element counts
var graphDescriptors = []string{
	"nAtom", "nHeavyAtom", "nX",
	"nBonds", "nBondsS", "nBondsD", "nBondsT", "nBondsA",
	"nRing", "nAromAtom", "nRot",
	"MW", "AMW", "FCSP3",
	"nHBDon", "nHBAcc", "FormalCharge",
}

// Calculator computes constitutional descriptors. Safe for concurrent use.
type Calculator struct {
	elements []string
	names    []string
}

// NewCalculator validates cfg and derives the descriptor names once.
func NewCalculator(cfg Config) (*Calculator, error) {
	if len(cfg.Elements) == 0 {
		return nil, errors.New("at least one element is required")
	}

	elements := make([]string, 0, len(cfg.Elements))
	seen := make(map[string]bool, len(cfg.Elements))
	for _, el := range cfg.Elements {
		if !knownElement(el) {
			return nil, fmt.Errorf("unknown element %q", el)
		}
		if seen[el] {
			continue
		}
		seen[el] = true
		elements = append(elements, el)
	}

	names := make([]string, 0, len(elements)+len(graphDescriptors))
	for _, el := range elements {
		names = append(names, "n"+el)
	}
	names = append(names, graphDescriptors...)

	return &Calculator{elements: elements, names: names}, nil
}

// Names returns the descriptor names in output order.
func (c *Calculator) Names() []string {
	return slices.Clone(c.names)
}

// Compute describes m. Values that cannot be defined for m are NaN.
func (c *Calculator) Compute(m *Molecule) (map[string]float64, error) {
	if m == nil || len(m.Atoms) == 0 {
		return nil, errors.New("empty molecule")
	}

	out := make(map[string]float64, len(c.names))

	counts := make(map[string]int)
	var (
		heavy, hydrogens, aromatic, charge int
		mass                               float64
	)
	for _, a := range m.Atoms {
		counts[a.Element]++
		if a.Element != "H" {
			heavy++
		}
		if a.Aromatic {
			aromatic++
		}
		hydrogens += a.Hydrogens
		charge += a.Charge

		if a.Isotope > 0 {
			mass += float64(a.Isotope)
		} else {
			mass += atomicMass[a.Element]
		}
		mass += float64(a.Hydrogens) * atomicMass["H"]
	}
	counts["H"] += hydrogens

	for _, el := range c.elements {
		out["n"+el] = float64(counts[el])
	}

	total := len(m.Atoms) + hydrogens
	out["nAtom"] = float64(total)
	out["nHeavyAtom"] = float64(heavy)
	nX := 0
	for el := range halogens {
		nX += counts[el]
	}
	out["nX"] = float64(nX)

	var single, double, triple, arom int
	for _, b := range m.Bonds {
		switch b.Order {
		case BondDouble:
			double++
		case BondTriple:
			triple++
		case BondAromatic:
			arom++
		default:
			single++
		}
	}
	single += hydrogens
	out["nBonds"] = float64(len(m.Bonds) + hydrogens)
	out["nBondsS"] = float64(single)
	out["nBondsD"] = float64(double)
	out["nBondsT"] = float64(triple)
	out["nBondsA"] = float64(arom)

	out["nRing"] = float64(len(m.Bonds) - len(m.Atoms) + m.components())
	out["nAromAtom"] = float64(aromatic)
	out["nRot"] = float64(rotatableBonds(m))

	out["MW"] = mass
	out["AMW"] = mass / float64(total)
	out["FCSP3"] = fractionSP3(m)

	donors, acceptors := hBondSites(m)
	out["nHBDon"] = float64(donors)
	out["nHBAcc"] = float64(acceptors)
	out["FormalCharge"] = float64(charge)

	return out, nil
}

// rotatableBonds counts acyclic single bonds between two non-terminal heavy atoms.
func rotatableBonds(m *Molecule) int {
	adj := m.neighbors()
	inRing := m.ringBonds()

	heavyDegree := func(a int) int {
		n := 0
		for _, bi := range adj[a] {
			if m.Atoms[m.Bonds[bi].other(a)].Element != "H" {
				n++
			}
		}
		return n
	}

	n := 0
	for i, b := range m.Bonds {
		if b.Order != BondSingle || inRing[i] {
			continue
		}
		if m.Atoms[b.A].Element == "H" || m.Atoms[b.B].Element == "H" {
			continue
		}
		if heavyDegree(b.A) < 2 || heavyDegree(b.B) < 2 {
			continue
		}
		n++
	}
	return n
}

// fractionSP3 is the share of carbons carrying only single bonds; NaN without carbon.
func fractionSP3(m *Molecule) float64 {
	unsaturated := make([]bool, len(m.Atoms))
	for _, b := range m.Bonds {
		if b.Order != BondSingle {
			unsaturated[b.A] = true
			unsaturated[b.B] = true
		}
	}

	var carbons, sp3 int
	for i, a := range m.Atoms {
		if a.Element != "C" {
			continue
		}
		carbons++
		if !a.Aromatic && !unsaturated[i] {
			sp3++
		}
	}

	if carbons == 0 {
		return math.NaN()
	}
	return float64(sp3) / float64(carbons)
}

// hBondSites counts N/O donors (carrying hydrogen) and non-cationic N/O acceptors.
func hBondSites(m *Molecule) (donors, acceptors int) {
	adj := m.neighbors()

	for i, a := range m.Atoms {
		if a.Element != "N" && a.Element != "O" {
			continue
		}

		h := a.Hydrogens
		for _, bi := range adj[i] {
			if m.Atoms[m.Bonds[bi].other(i)].Element == "H" {
				h++
			}
		}
		if h > 0 {
			donors++
		}
		if a.Charge <= 0 {
			acceptors++
		}
	}
	return donors, acceptors
}
