/*
 * molecule.go, part of godg.
 *
 * Copyright 2023 Raul Mera rauldotmeraatusachdotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package dg

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//Molecule is the reference Moleculer implementation: a molecular graph of
//element symbols, typed bonds and declared stereocenters. It carries no
//coordinates; producing those is the whole point of this package.
type Molecule struct {
	symbols   []string
	bonds     []*Bond
	adjacency [][]int
	stereos   []*Stereo
	cycles    *Cycles
}

//NewMolecule builds a molecule from element symbols and bonds. It panics if
//a bond references an atom out of range or joins an atom to itself.
func NewMolecule(symbols []string, bonds []*Bond) *Molecule {
	m := &Molecule{
		symbols:   append([]string{}, symbols...),
		adjacency: make([][]int, len(symbols)),
	}
	for _, b := range bonds {
		if b.At1 < 0 || b.At1 >= len(symbols) || b.At2 < 0 || b.At2 >= len(symbols) {
			panic("NewMolecule: bond references an atom out of range")
		}
		if b.At1 == b.At2 {
			panic("NewMolecule: bond joins an atom to itself")
		}
		m.bonds = append(m.bonds, &Bond{At1: b.At1, At2: b.At2, Type: b.Type})
		m.adjacency[b.At1] = append(m.adjacency[b.At1], b.At2)
		m.adjacency[b.At2] = append(m.adjacency[b.At2], b.At1)
	}
	for _, neigh := range m.adjacency {
		sort.Ints(neigh)
	}
	return m
}

//Len returns the number of atoms.
func (m *Molecule) Len() int {
	return len(m.symbols)
}

//Symbol returns the element symbol of the i-th atom.
func (m *Molecule) Symbol(i int) string {
	return m.symbols[i]
}

//Bonds returns the bond list. The caller must not modify it.
func (m *Molecule) Bonds() []*Bond {
	return m.bonds
}

//BondBetween returns the bond joining i and j, or nil if they are not
//bonded.
func (m *Molecule) BondBetween(i, j int) *Bond {
	for _, b := range m.bonds {
		if (b.At1 == i && b.At2 == j) || (b.At1 == j && b.At2 == i) {
			return b
		}
	}
	return nil
}

//Neighbors returns the atoms bonded to i, in ascending order. The caller
//must not modify the returned slice.
func (m *Molecule) Neighbors(i int) []int {
	return m.adjacency[i]
}

//Stereos returns the declared stereocenters.
func (m *Molecule) Stereos() []*Stereo {
	return m.stereos
}

//AddStereo declares a stereocenter. Declared stereocenters take precedence
//over the shapes the engine would otherwise infer.
func (m *Molecule) AddStereo(s *Stereo) {
	m.stereos = append(m.stereos, s)
}

//Cycles returns the small-cycle index of the molecule, building it on first
//use.
func (m *Molecule) Cycles() *Cycles {
	if m.cycles == nil {
		m.cycles = NewCycles(m, maxRelevantCycleSize)
	}
	return m.cycles
}

//Copy returns a deep copy, including deep copies of the stereocenters so
//assignments on the copy never leak back.
func (m *Molecule) Copy() Moleculer {
	nm := NewMolecule(m.symbols, m.bonds)
	for _, s := range m.stereos {
		nm.stereos = append(nm.stereos, s.Copy())
	}
	return nm
}

//Rings larger than this are conformationally too floppy for exact-angle
//treatment, so the cycle index ignores them.
const maxRelevantCycleSize = 6

//Cycles indexes the simple cycles of a molecular graph up to a size cap,
//answering the membership queries the spatial model needs.
type Cycles struct {
	rings [][]int //each ring as an ordered atom walk
	byAtom map[int][]int //atom index -> indices into rings
}

//NewCycles enumerates a cycle basis of the molecular graph and keeps the
//rings of at most maxSize atoms.
func NewCycles(mol Moleculer, maxSize int) *Cycles {
	c := &Cycles{byAtom: make(map[int][]int)}
	g := simple.NewUndirectedGraph()
	for i := 0; i < mol.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	for _, b := range mol.Bonds() {
		g.SetEdge(g.NewEdge(simple.Node(b.At1), simple.Node(b.At2)))
	}
	for _, cyc := range topo.UndirectedCyclesIn(g) {
		//cycles come back as closed walks, first node repeated at the end
		ring := make([]int, 0, len(cyc)-1)
		for _, node := range cyc[:len(cyc)-1] {
			ring = append(ring, int(node.ID()))
		}
		if len(ring) < 3 || len(ring) > maxSize {
			continue
		}
		c.rings = append(c.rings, canonicalWalk(ring))
	}
	//graph iteration order is unspecified, so the ring list is put into a
	//reproducible order
	sort.Slice(c.rings, func(i, j int) bool {
		return lessRing(c.rings[i], c.rings[j])
	})
	for ri, ring := range c.rings {
		for _, at := range ring {
			c.byAtom[at] = append(c.byAtom[at], ri)
		}
	}
	return c
}

//canonicalWalk rotates and orients a ring walk so its smallest atom comes
//first, followed by the smaller of that atom's two ring neighbors. Every
//rotation and reversal of the same ring maps to the same walk.
func canonicalWalk(ring []int) []int {
	n := len(ring)
	at := 0
	for k, v := range ring {
		if v < ring[at] {
			at = k
		}
	}
	out := make([]int, 0, n)
	for k := 0; k < n; k++ {
		out = append(out, ring[(at+k)%n])
	}
	if out[n-1] < out[1] {
		for i, j := 1, n-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

//lessRing orders canonical ring walks: smaller rings first, ties broken
//lexicographically.
func lessRing(a, b []int) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

//NumRings returns how many small rings were found.
func (c *Cycles) NumRings() int {
	return len(c.rings)
}

//Ring returns the i-th ring as an ordered atom walk. The caller must not
//modify it.
func (c *Cycles) Ring(i int) []int {
	return c.rings[i]
}

//SmallestSizeFor returns the size of the smallest ring containing the atom,
//and whether the atom is in any ring at all.
func (c *Cycles) SmallestSizeFor(atom int) (int, bool) {
	best := 0
	for _, ri := range c.byAtom[atom] {
		if n := len(c.rings[ri]); best == 0 || n < best {
			best = n
		}
	}
	return best, best > 0
}

//RingsFor returns the indices of the rings containing the atom.
func (c *Cycles) RingsFor(atom int) []int {
	return c.byAtom[atom]
}

//SpiroPair reports whether the atom is the single shared atom of exactly
//two small rings, returning both ring walks if so. Such an atom gets its
//cross-ring angles from the spiro geometry instead of its local shape.
func (c *Cycles) SpiroPair(atom int) (a, b []int, ok bool) {
	var small []int
	for _, ri := range c.byAtom[atom] {
		if len(c.rings[ri]) <= 5 {
			small = append(small, ri)
		}
	}
	if len(small) != 2 {
		return nil, nil, false
	}
	ra, rb := c.rings[small[0]], c.rings[small[1]]
	shared := 0
	for _, x := range ra {
		if contains(rb, x) {
			shared++
		}
	}
	if shared != 1 {
		return nil, nil, false
	}
	return ra, rb, true
}
