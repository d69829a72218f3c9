package chem

import (
	"fmt"
	"strings"
)

// SyntaxError reports where a structure string stopped making sense.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("smiles %q at %d: %s", e.Input, e.Pos, e.Msg)
}

// Parser reads SMILES strings. It is stateless and safe for concurrent use.
type Parser struct{}

// NewParser returns a SMILES parser.
func NewParser() *Parser {
	return &Parser{}
}

type ringOpen struct {
	atom  int
	order BondOrder
	pos   int
}

type parseState struct {
	in      string
	pos     int
	mol     *Molecule
	prev    int
	pending BondOrder
	branch  []int
	rings   map[int]ringOpen
}

// Parse turns s into a Molecule or returns a *SyntaxError.
func (p *Parser) Parse(s string) (*Molecule, error) {
	st := &parseState{
		in:    s,
		mol:   &Molecule{},
		prev:  -1,
		rings: make(map[int]ringOpen),
	}

	if strings.TrimSpace(s) == "" {
		return nil, st.fail("empty structure")
	}

	for st.pos < len(s) {
		if err := st.step(); err != nil {
			return nil, err
		}
	}

	if st.pending != 0 {
		return nil, st.fail("dangling bond")
	}
	if len(st.branch) > 0 {
		return nil, st.fail("unclosed branch")
	}
	for n, r := range st.rings {
		return nil, &SyntaxError{Input: s, Pos: r.pos, Msg: fmt.Sprintf("unclosed ring %d", n)}
	}

	st.resolveHydrogens()

	return st.mol, nil
}

func (st *parseState) fail(msg string) error {
	return &SyntaxError{Input: st.in, Pos: st.pos, Msg: msg}
}

func (st *parseState) step() error {
	c := st.in[st.pos]

	switch {
	case c == '(':
		if st.prev < 0 {
			return st.fail("branch without a preceding atom")
		}
		st.branch = append(st.branch, st.prev)
		st.pos++
	case c == ')':
		if len(st.branch) == 0 {
			return st.fail("unbalanced ')'")
		}
		if st.pending != 0 {
			return st.fail("bond before ')'")
		}
		st.prev = st.branch[len(st.branch)-1]
		st.branch = st.branch[:len(st.branch)-1]
		st.pos++
	case strings.IndexByte(`-=#:/\`, c) >= 0:
		if st.pending != 0 {
			return st.fail("consecutive bonds")
		}
		if st.prev < 0 {
			return st.fail("bond without a preceding atom")
		}
		st.pending = bondFromSymbol(c)
		st.pos++
	case c == '.':
		if st.pending != 0 || st.prev < 0 {
			return st.fail("misplaced '.'")
		}
		st.prev = -1
		st.pos++
	case c == '%' || (c >= '0' && c <= '9'):
		return st.ringClosure()
	case c == '[':
		return st.bracketAtom()
	default:
		return st.organicAtom()
	}

	return nil
}

func bondFromSymbol(c byte) BondOrder {
	switch c {
	case '=':
		return BondDouble
	case '#':
		return BondTriple
	case ':':
		return BondAromatic
	default:
		return BondSingle
	}
}

func (st *parseState) ringClosure() error {
	if st.prev < 0 {
		return st.fail("ring closure without a preceding atom")
	}

	start := st.pos
	var num int
	if st.in[st.pos] == '%' {
		if st.pos+2 >= len(st.in) || !isDigit(st.in[st.pos+1]) || !isDigit(st.in[st.pos+2]) {
			return st.fail("'%' must be followed by two digits")
		}
		num = int(st.in[st.pos+1]-'0')*10 + int(st.in[st.pos+2]-'0')
		st.pos += 3
	} else {
		num = int(st.in[st.pos] - '0')
		st.pos++
	}

	open, ok := st.rings[num]
	if !ok {
		st.rings[num] = ringOpen{atom: st.prev, order: st.pending, pos: start}
		st.pending = 0
		return nil
	}

	delete(st.rings, num)
	order := st.pending
	switch {
	case order == 0:
		order = open.order
	case open.order != 0 && open.order != order:
		return &SyntaxError{Input: st.in, Pos: start, Msg: fmt.Sprintf("conflicting bonds on ring %d", num)}
	}
	st.pending = 0

	if open.atom == st.prev {
		return &SyntaxError{Input: st.in, Pos: start, Msg: fmt.Sprintf("ring %d closes on itself", num)}
	}
	for _, b := range st.mol.Bonds {
		if (b.A == open.atom && b.B == st.prev) || (b.B == open.atom && b.A == st.prev) {
			return &SyntaxError{Input: st.in, Pos: start, Msg: fmt.Sprintf("ring %d duplicates a bond", num)}
		}
	}

	st.bond(open.atom, st.prev, order)
	return nil
}

func (st *parseState) organicAtom() error {
	rest := st.in[st.pos:]

	for _, two := range []string{"Cl", "Br"} {
		if strings.HasPrefix(rest, two) {
			st.pos += 2
			st.addAtom(Atom{Element: two}, false)
			return nil
		}
	}

	c := rest[0]
	switch c {
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		st.pos++
		st.addAtom(Atom{Element: string(c)}, false)
		return nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		st.pos++
		st.addAtom(Atom{Element: aromaticSymbols[string(c)], Aromatic: true}, false)
		return nil
	}

	return st.fail(fmt.Sprintf("unexpected character %q", c))
}

func (st *parseState) bracketAtom() error {
	start := st.pos
	end := strings.IndexByte(st.in[st.pos:], ']')
	if end < 0 {
		return st.fail("unclosed '['")
	}
	body := st.in[st.pos+1 : st.pos+end]
	st.pos += end + 1

	bad := func(msg string) error {
		return &SyntaxError{Input: st.in, Pos: start, Msg: msg}
	}

	i := 0
	atom := Atom{Bracket: true}

	for i < len(body) && isDigit(body[i]) {
		atom.Isotope = atom.Isotope*10 + int(body[i]-'0')
		i++
	}

	switch {
	case i < len(body) && isLower(body[i]):
		if i+1 < len(body) {
			if el, ok := aromaticSymbols[body[i:i+2]]; ok {
				atom.Element, atom.Aromatic = el, true
				i += 2
				break
			}
		}
		el, ok := aromaticSymbols[body[i:i+1]]
		if !ok {
			return bad(fmt.Sprintf("unknown aromatic symbol %q", body[i:i+1]))
		}
		atom.Element, atom.Aromatic = el, true
		i++
	case i < len(body) && isUpper(body[i]):
		sym := body[i : i+1]
		if i+1 < len(body) && isLower(body[i+1]) && knownElement(body[i:i+2]) {
			sym = body[i : i+2]
		}
		if !knownElement(sym) {
			return bad(fmt.Sprintf("unknown element %q", sym))
		}
		atom.Element = sym
		i += len(sym)
	default:
		return bad("missing element symbol")
	}

	if i < len(body) && body[i] == '@' {
		for i < len(body) && body[i] == '@' {
			i++
		}
		// chirality classes such as @TH1 or @SP2
		if i+1 < len(body) && chiralClasses[body[i:i+2]] {
			i += 2
			for i < len(body) && isDigit(body[i]) {
				i++
			}
		}
	}

	if i < len(body) && body[i] == 'H' {
		i++
		atom.Hydrogens = 1
		if i < len(body) && isDigit(body[i]) {
			atom.Hydrogens = int(body[i] - '0')
			i++
		}
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sym := body[i]
		i++
		switch {
		case i < len(body) && isDigit(body[i]):
			n := 0
			for i < len(body) && isDigit(body[i]) {
				n = n*10 + int(body[i]-'0')
				i++
			}
			atom.Charge = sign * n
		default:
			n := 1
			for i < len(body) && body[i] == sym {
				n++
				i++
			}
			atom.Charge = sign * n
		}
	}

	if i < len(body) && body[i] == ':' {
		i++
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}

	if i != len(body) {
		return bad(fmt.Sprintf("unexpected %q in bracket atom", body[i:]))
	}

	st.addAtom(atom, true)
	return nil
}

func (st *parseState) addAtom(a Atom, bracket bool) {
	a.Bracket = bracket
	idx := len(st.mol.Atoms)
	st.mol.Atoms = append(st.mol.Atoms, a)

	if st.prev >= 0 {
		st.bond(st.prev, idx, st.pending)
	}
	st.pending = 0
	st.prev = idx
}

func (st *parseState) bond(a, b int, order BondOrder) {
	if order == 0 {
		order = BondSingle
		if st.mol.Atoms[a].Aromatic && st.mol.Atoms[b].Aromatic {
			order = BondAromatic
		}
	}
	st.mol.Bonds = append(st.mol.Bonds, Bond{A: a, B: b, Order: order})
}

// resolveHydrogens fills implicit hydrogens on organic-subset atoms.
// Bracket atoms keep exactly the hydrogens they declare.
func (st *parseState) resolveHydrogens() {
	used := make([]int, len(st.mol.Atoms))
	for _, b := range st.mol.Bonds {
		used[b.A] += b.Order.valence()
		used[b.B] += b.Order.valence()
	}

	for i := range st.mol.Atoms {
		a := &st.mol.Atoms[i]
		if a.Bracket {
			continue
		}

		allowed := organicValence[a.Element]
		if a.Aromatic {
			a.Hydrogens = max(0, allowed[0]-(used[i]+1))
			continue
		}

		a.Hydrogens = 0
		for _, v := range allowed {
			if v >= used[i] {
				a.Hydrogens = v - used[i]
				break
			}
		}
	}
}

var chiralClasses = map[string]bool{"TH": true, "AL": true, "SP": true, "TB": true, "OH": true}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
