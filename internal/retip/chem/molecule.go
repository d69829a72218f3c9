package chem

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	BondSingle BondOrder = iota + 1
	BondDouble
	BondTriple
	BondAromatic
)

// valence is the contribution of the bond to an atom's valence; aromatic
// bonds count as one and the aromatic atom carries the extra electron.
func (o BondOrder) valence() int {
	switch o {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	default:
		return 1
	}
}

// Atom is one explicit atom of a parsed structure.
type Atom struct {
	Element  string
	Aromatic bool
	Isotope  int
	Charge   int
	// Hydrogens is the number of attached hydrogens that are not explicit atoms.
	Hydrogens int
	Bracket   bool
}

// Bond connects atoms A and B by index.
type Bond struct {
	A, B  int
	Order BondOrder
}

// Molecule is the graph produced by Parser.
type Molecule struct {
	Atoms []Atom
	Bonds []Bond
}

// neighbors returns, for every atom, the indices of bonds touching it.
func (m *Molecule) neighbors() [][]int {
	adj := make([][]int, len(m.Atoms))
	for i, b := range m.Bonds {
		adj[b.A] = append(adj[b.A], i)
		adj[b.B] = append(adj[b.B], i)
	}
	return adj
}

// other returns the atom on the far side of bond b from atom a.
func (b Bond) other(a int) int {
	if b.A == a {
		return b.B
	}
	return b.A
}

// components counts connected fragments.
func (m *Molecule) components() int {
	parent := make([]int, len(m.Atoms))
	for i := range parent {
		parent[i] = i
	}

	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}

	n := len(m.Atoms)
	for _, b := range m.Bonds {
		ra, rb := find(b.A), find(b.B)
		if ra != rb {
			parent[ra] = rb
			n--
		}
	}
	return n
}

// ringBonds marks bonds that lie on a cycle, i.e. every bond that is not a bridge.
func (m *Molecule) ringBonds() []bool {
	adj := m.neighbors()
	disc := make([]int, len(m.Atoms))
	low := make([]int, len(m.Atoms))
	inRing := make([]bool, len(m.Bonds))
	for i := range inRing {
		inRing[i] = true
	}

	timer := 0
	var dfs func(u, viaBond int)
	dfs = func(u, viaBond int) {
		timer++
		disc[u], low[u] = timer, timer
		for _, bi := range adj[u] {
			if bi == viaBond {
				continue
			}
			v := m.Bonds[bi].other(u)
			if disc[v] == 0 {
				dfs(v, bi)
				low[u] = min(low[u], low[v])
				if low[v] > disc[u] {
					inRing[bi] = false
				}
			} else {
				low[u] = min(low[u], disc[v])
			}
		}
	}

	for a := range m.Atoms {
		if disc[a] == 0 {
			dfs(a, -1)
		}
	}
	return inRing
}
