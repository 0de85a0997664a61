/*
 * model_test.go, part of godg.
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
	"math"
	"math/rand"
	"strings"
	"testing"
)

//a linear carbon chain, single bonds only
func chainMolecule(n int) *Molecule {
	symbols := make([]string, n)
	var bonds []*Bond
	for i := 0; i < n; i++ {
		symbols[i] = "C"
		if i > 0 {
			bonds = append(bonds, &Bond{At1: i - 1, At2: i, Type: Single})
		}
	}
	return NewMolecule(symbols, bonds)
}

//a carbon ring of size n
func ringMolecule(n int) *Molecule {
	symbols := make([]string, n)
	var bonds []*Bond
	for i := 0; i < n; i++ {
		symbols[i] = "C"
		bonds = append(bonds, &Bond{At1: i, At2: (i + 1) % n, Type: Single})
	}
	return NewMolecule(symbols, bonds)
}

//spiro[4.4]nonane: two 5-rings sharing atom 0
func spiroMolecule() *Molecule {
	symbols := make([]string, 9)
	for i := range symbols {
		symbols[i] = "C"
	}
	bonds := []*Bond{
		{At1: 0, At2: 1, Type: Single}, {At1: 1, At2: 2, Type: Single},
		{At1: 2, At2: 3, Type: Single}, {At1: 3, At2: 4, Type: Single},
		{At1: 4, At2: 0, Type: Single},
		{At1: 0, At2: 5, Type: Single}, {At1: 5, At2: 6, Type: Single},
		{At1: 6, At2: 7, Type: Single}, {At1: 7, At2: 8, Type: Single},
		{At1: 8, At2: 0, Type: Single},
	}
	return NewMolecule(symbols, bonds)
}

func TestCycleDetection(Te *testing.T) {
	cyc := ringMolecule(6).Cycles()
	if cyc.NumRings() != 1 {
		Te.Fatalf("cyclohexane has %d small rings, want 1", cyc.NumRings())
	}
	if size, in := cyc.SmallestSizeFor(3); !in || size != 6 {
		Te.Errorf("atom 3 of cyclohexane: in-ring %v, size %d", in, size)
	}
	if _, in := chainMolecule(6).Cycles().SmallestSizeFor(2); in {
		Te.Error("a chain atom reports ring membership")
	}
}

func TestSpiroDetection(Te *testing.T) {
	cyc := spiroMolecule().Cycles()
	if cyc.NumRings() != 2 {
		Te.Fatalf("spiro[4.4]nonane has %d small rings, want 2", cyc.NumRings())
	}
	if _, _, ok := cyc.SpiroPair(0); !ok {
		Te.Error("the shared atom is not recognized as a spiro atom")
	}
	if _, _, ok := cyc.SpiroPair(1); ok {
		Te.Error("a plain ring atom is recognized as a spiro atom")
	}
}

func TestModelBondBounds(Te *testing.T) {
	mol := chainMolecule(3)
	m := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(1)))
	b, ok := m.bondB[orderedPair(0, 1)]
	if !ok {
		Te.Fatal("no bounds modeled for a bonded pair")
	}
	d := BondDistance("C", "C", Single)
	if b.Lower >= d || b.Upper <= d {
		Te.Errorf("bond bounds %s do not bracket the ideal length %.3f", b.String(), d)
	}
	if math.Abs(b.Upper-b.Lower-2*bondRelativeVariance*d) > 1e-10 {
		Te.Errorf("bond interval width is %.6f", b.Upper-b.Lower)
	}
}

//Cyclopropane is treated as rigidly planar, so its ring angles must come
//out as the equilateral pi/3 rather than anything shape-derived.
func TestFlatRingAngles(Te *testing.T) {
	mol := ringMolecule(3)
	m := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(1)))
	for c := 0; c < 3; c++ {
		key := orderedTriple((c+2)%3, c, (c+1)%3)
		ang, ok := m.angleB[key]
		if !ok {
			Te.Fatalf("no angle modeled at ring atom %d", c)
		}
		mid := (ang.Lower + ang.Upper) / 2
		if math.Abs(mid-math.Pi/3) > 1e-5 {
			Te.Errorf("ring angle at atom %d centers on %.6f, want pi/3", c, mid)
		}
	}
}

//The spiro atom's cross-ring angles must be overwritten past tetrahedral,
//since the squeezed in-ring angles open them up.
func TestSpiroCrossAngleOverwrite(Te *testing.T) {
	mol := spiroMolecule()
	m := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(1)))
	for _, a := range []int{1, 4} {
		for _, b := range []int{5, 8} {
			ang, ok := m.angleB[orderedTriple(a, 0, b)]
			if !ok {
				Te.Fatalf("no cross-ring angle modeled for %d-0-%d", a, b)
			}
			mid := (ang.Lower + ang.Upper) / 2
			if mid <= tetAngle {
				Te.Errorf("cross-ring angle %d-0-%d centers on %.6f, not opened past tetrahedral", a, b, mid)
			}
		}
	}
}

func TestModelBoundsList(Te *testing.T) {
	mol := chainMolecule(4)
	m := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(1)))
	list := m.BoundsList()
	var got12, got13, got14 bool
	for _, d := range list {
		if !d.B.Valid() {
			Te.Errorf("invalid bounds %s for pair %d-%d", d.B.String(), d.I, d.J)
		}
		switch orderedPair(d.I, d.J) {
		case orderedPair(0, 1):
			got12 = true
		case orderedPair(0, 2):
			got13 = true
		case orderedPair(0, 3):
			got14 = true
		}
	}
	if !got12 || !got13 || !got14 {
		Te.Errorf("bounds list misses pairs: 1-2 %v, 1-3 %v, 1-4 %v", got12, got13, got14)
	}
}

//Same seed, same model: stereocenter assignment is the only random part.
func TestModelReproducible(Te *testing.T) {
	mol := spiroMolecule()
	a := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(7)))
	b := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(7)))
	sa, sb := a.Stereos(), b.Stereos()
	if len(sa) != len(sb) {
		Te.Fatalf("stereocenter counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i].Assignment != sb[i].Assignment {
			Te.Errorf("stereocenter %d assigned %d vs %d", i, sa[i].Assignment, sb[i].Assignment)
		}
	}
}

func TestModelDot(Te *testing.T) {
	mol := chainMolecule(3)
	m := NewModel(mol, DefaultConfig(), rand.New(rand.NewSource(1)))
	dot := m.Dot()
	if !strings.HasPrefix(dot, "graph") || !strings.Contains(dot, "0 -- 1") {
		Te.Errorf("unexpected graphviz output:\n%s", dot)
	}
}

func TestInferShape(Te *testing.T) {
	//central carbon of allene-like C=C=C is linear
	mol := NewMolecule([]string{"C", "C", "C"}, []*Bond{
		{At1: 0, At2: 1, Type: Double}, {At1: 1, At2: 2, Type: Double},
	})
	if s := InferShape(mol, 1); s != Linear {
		Te.Errorf("cumulated diene center inferred as %v, want linear", s)
	}
	if s := InferShape(chainMolecule(3), 1); s != Bent {
		Te.Errorf("chain center inferred as %v, want bent", s)
	}
}

//A model whose stereocenters all have a single permutation involves no
//random choice and may be shared across generation attempts; one with a
//multi-permutation center may not.
func TestModelRandomized(Te *testing.T) {
	if m := NewModel(chainMolecule(4), DefaultConfig(), rand.New(rand.NewSource(1))); m.randomized {
		Te.Error("a plain chain model claims to be randomized")
	}
	methaneLike := NewMolecule([]string{"C", "H", "H", "H", "H"}, []*Bond{
		{At1: 0, At2: 1, Type: Single},
		{At1: 0, At2: 2, Type: Single},
		{At1: 0, At2: 3, Type: Single},
		{At1: 0, At2: 4, Type: Single},
	})
	if m := NewModel(methaneLike, DefaultConfig(), rand.New(rand.NewSource(1))); !m.randomized {
		Te.Error("a synthetic tetrahedral center left the model deterministic")
	}
	//declaring and assigning the center removes the random choice
	declared := NewMolecule([]string{"C", "H", "H", "H", "H"}, []*Bond{
		{At1: 0, At2: 1, Type: Single},
		{At1: 0, At2: 2, Type: Single},
		{At1: 0, At2: 3, Type: Single},
		{At1: 0, At2: 4, Type: Single},
	})
	s := NewAtomStereo(declared, 0, Tetrahedral)
	s.Assignment = 0
	declared.AddStereo(s)
	if m := NewModel(declared, DefaultConfig(), rand.New(rand.NewSource(1))); m.randomized {
		Te.Error("a fully assigned molecule claims to be randomized")
	}
}

//Ring walks must come out canonical and in a fixed order, whatever order
//the underlying graph traversal discovers them in.
func TestRingCanonicalOrder(Te *testing.T) {
	cyc := spiroMolecule().Cycles()
	want := [][]int{{0, 1, 2, 3, 4}, {0, 5, 6, 7, 8}}
	if cyc.NumRings() != len(want) {
		Te.Fatalf("got %d rings, want %d", cyc.NumRings(), len(want))
	}
	for ri, w := range want {
		ring := cyc.Ring(ri)
		if len(ring) != len(w) {
			Te.Fatalf("ring %d has %d atoms, want %d", ri, len(ring), len(w))
		}
		for k := range w {
			if ring[k] != w[k] {
				Te.Fatalf("ring %d is %v, want %v", ri, ring, w)
			}
		}
	}
}
