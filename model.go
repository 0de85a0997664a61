/*
 * model.go, part of godg.
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
)

//Relative spread on modeled bond lengths, and absolute spreads (radians) on
//modeled angles and dihedrals. Config.Loosening scales all three.
const (
	bondRelativeVariance    = 0.01
	angleAbsoluteVariance   = math.Pi / 36
	dihedralAbsoluteVariance = math.Pi / 36
)

//Model is the spatial interpretation of a molecular graph: interval bounds
//on bonded distances, angles and dihedrals, plus the fully assigned
//stereocenter list (declared and synthetic) the refinement constraints come
//from. All angle information is keyed canonically, so each relationship is
//stored exactly once. Bounds follow first-writer-wins semantics: whoever
//models a relationship first keeps it, except for the documented spiro
//overwrite.
type Model struct {
	mol        Moleculer
	loosening  float64
	bondB      map[[2]int]Bounds
	angleB     map[[3]int]Bounds
	dihedralB  map[[4]int]Bounds
	extraDihedrals []DihedralBound //stereo-implied dihedral refinement constraints
	stereos    []*Stereo
	//true when building the model made an actual random choice, i.e. some
	//stereocenter with more than one permutation had to be assigned. A
	//non-randomized model is deterministic and safe to share.
	randomized bool
}

//NewModel builds the spatial model of a molecule. Any stereocenter still
//unassigned afterward got its permutation from r, so two calls with
//equally-seeded generators produce identical models. Unassigned declared
//stereocenters are assigned in place of their synthetic counterparts.
func NewModel(mol Moleculer, cfg *Config, r *rand.Rand) *Model {
	m := &Model{
		mol:       mol,
		loosening: cfg.Loosening,
		bondB:     make(map[[2]int]Bounds),
		angleB:    make(map[[3]int]Bounds),
		dihedralB: make(map[[4]int]Bounds),
	}
	m.collectStereos(r)
	m.setBondBounds()
	m.setFlatRingAngles()
	m.setStereoInformation()
	m.setSpiroCrossAngles()
	m.addDefaultAngles()
	m.addDefaultDihedrals()
	return m
}

//collectStereos copies the declared stereocenters, assigns any that lack a
//permutation, and instantiates synthetic ones wherever the graph leaves the
//local arrangement undeclared: every atom with two or more neighbors gets
//an atom stereocenter with its inferred shape, and every double bond
//between such atoms gets a bond stereocenter.
func (m *Model) collectStereos(r *rand.Rand) {
	atomCovered := make(map[int]bool)
	bondCovered := make(map[[2]int]bool)
	for _, s := range m.mol.Stereos() {
		ns := s.Copy()
		if !ns.Assigned() {
			ns.AssignRandom(r)
			if ns.NumPerm > 1 {
				m.randomized = true
			}
		}
		m.stereos = append(m.stereos, ns)
		if ns.Kind == AtomStereo {
			atomCovered[ns.Center] = true
		} else {
			bondCovered[orderedPair(ns.Edge[0], ns.Edge[1])] = true
		}
	}
	for i := 0; i < m.mol.Len(); i++ {
		if atomCovered[i] || len(m.mol.Neighbors(i)) < 2 {
			continue
		}
		s := NewAtomStereo(m.mol, i, InferShape(m.mol, i))
		s.AssignRandom(r)
		if s.NumPerm > 1 {
			m.randomized = true
		}
		m.stereos = append(m.stereos, s)
	}
	for _, b := range m.mol.Bonds() {
		if b.Type != Double || bondCovered[orderedPair(b.At1, b.At2)] {
			continue
		}
		if len(m.mol.Neighbors(b.At1)) < 2 || len(m.mol.Neighbors(b.At2)) < 2 {
			continue //a terminal end leaves nothing to arrange
		}
		s := NewBondStereo(b.At1, b.At2)
		s.AssignRandom(r)
		if s.NumPerm > 1 {
			m.randomized = true
		}
		m.stereos = append(m.stereos, s)
	}
}

//setBondBounds models every non-eta bond as its tabulated distance widened
//by the relative bond variance.
func (m *Model) setBondBounds() {
	v := bondRelativeVariance * m.loosening
	for _, b := range m.mol.Bonds() {
		if b.Type == Eta {
			continue
		}
		key := orderedPair(b.At1, b.At2)
		if _, ok := m.bondB[key]; ok {
			continue
		}
		d := BondDistance(m.mol.Symbol(b.At1), m.mol.Symbol(b.At2), b.Type)
		m.bondB[key] = Bounds{d * (1 - v), d * (1 + v)}
	}
}

//flatRing reports whether a small ring is modeled as planar: 3-rings
//always, 4-rings when at least one ring bond is double.
func (m *Model) flatRing(ring []int) bool {
	switch len(ring) {
	case 3:
		return true
	case 4:
		for k := range ring {
			b := m.mol.BondBetween(ring[k], ring[(k+1)%len(ring)])
			if b != nil && b.Type == Double {
				return true
			}
		}
	}
	return false
}

//setFlatRingAngles fixes the internal angles of planar small rings to the
//exact convex-polygon values their modeled edge lengths imply. These writes
//come before any stereocenter information so they win.
func (m *Model) setFlatRingAngles() {
	cyc := m.mol.Cycles()
	v := angleAbsoluteVariance * m.loosening
	for ri := 0; ri < cyc.NumRings(); ri++ {
		ring := cyc.Ring(ri)
		if !m.flatRing(ring) {
			continue
		}
		n := len(ring)
		edges := make([]float64, n)
		for k := 0; k < n; k++ {
			b := m.mol.BondBetween(ring[k], ring[(k+1)%n])
			edges[k] = BondDistance(m.mol.Symbol(ring[k]), m.mol.Symbol(ring[(k+1)%n]), b.Type)
		}
		angles := InternalAngles(edges)
		for k := 0; k < n; k++ {
			at := ring[(k+1)%n]
			key := orderedTriple(ring[k], at, ring[(k+2)%n])
			if _, ok := m.angleB[key]; ok {
				continue
			}
			m.angleB[key] = NewBounds(angles[k], v).Clamp(Bounds{0, math.Pi})
		}
	}
}

//cycleMultiplier widens angle variances for atoms squeezed into small
//rings, where idealized shapes distort the most.
func (m *Model) cycleMultiplier(atom int) float64 {
	size, in := m.mol.Cycles().SmallestSizeFor(atom)
	if !in {
		return 1
	}
	switch size {
	case 3:
		return 6.25
	case 4:
		return 4.25
	case 5:
		return 3.25
	}
	return 1
}

//setStereoInformation writes the angle and dihedral intervals the assigned
//stereocenters imply, skipping anything already modeled.
func (m *Model) setStereoInformation() {
	variance := func(i, center, k int) float64 {
		mult := m.cycleMultiplier(i)
		if mc := m.cycleMultiplier(center); mc > mult {
			mult = mc
		}
		if mk := m.cycleMultiplier(k); mk > mult {
			mult = mk
		}
		return angleAbsoluteVariance * m.loosening * mult
	}
	for _, s := range m.stereos {
		for key, b := range s.AngleBounds(variance) {
			if _, ok := m.angleB[key]; !ok {
				m.angleB[key] = b
			}
		}
		for _, db := range s.DihedralBounds(m.mol, dihedralAbsoluteVariance*m.loosening) {
			m.extraDihedrals = append(m.extraDihedrals, db)
			key := orderedQuad(db.I, db.J, db.K, db.L)
			if _, ok := m.dihedralB[key]; !ok {
				m.dihedralB[key] = Bounds{db.Lower, db.Upper}
			}
		}
	}
}

//setSpiroCrossAngles overwrites the cross-ring angles at tetrahedral spiro
//atoms. The two fused rings squeeze the in-ring angles well below
//tetrahedral, which opens the angles between the rings beyond what the
//shape suggests, so here later information deliberately replaces the
//shape-derived entries.
func (m *Model) setSpiroCrossAngles() {
	for _, s := range m.stereos {
		if s.Kind != AtomStereo || s.Shape != Tetrahedral {
			continue
		}
		ringA, ringB, ok := m.mol.Cycles().SpiroPair(s.Center)
		if !ok {
			continue
		}
		alpha := m.ringAngleAt(ringA, s.Center)
		beta := m.ringAngleAt(ringB, s.Center)
		cross := SpiroCrossAngle(alpha, beta)
		v := angleAbsoluteVariance * m.loosening * m.cycleMultiplier(s.Center)
		for _, a := range ringNeighbors(ringA, s.Center) {
			for _, b := range ringNeighbors(ringB, s.Center) {
				key := orderedTriple(a, s.Center, b)
				m.angleB[key] = NewBounds(cross, v).Clamp(Bounds{0, math.Pi})
			}
		}
	}
}

//ringAngleAt returns the convex-polygon internal angle of the ring at the
//given member atom.
func (m *Model) ringAngleAt(ring []int, atom int) float64 {
	n := len(ring)
	edges := make([]float64, n)
	for k := 0; k < n; k++ {
		b := m.mol.BondBetween(ring[k], ring[(k+1)%n])
		edges[k] = BondDistance(m.mol.Symbol(ring[k]), m.mol.Symbol(ring[(k+1)%n]), b.Type)
	}
	angles := InternalAngles(edges)
	for k := 0; k < n; k++ {
		if ring[(k+1)%n] == atom {
			return angles[k]
		}
	}
	panic("ringAngleAt: atom is not a member of the ring")
}

//ringNeighbors returns the two ring members adjacent to atom in the walk.
func ringNeighbors(ring []int, atom int) []int {
	n := len(ring)
	for k, at := range ring {
		if at == atom {
			return []int{ring[(k+n-1)%n], ring[(k+1)%n]}
		}
	}
	panic("ringNeighbors: atom is not a member of the ring")
}

//addDefaultAngles gives every still-unmodeled bonded triple the trivial
//interval, so the bounds list can at least derive triangle-inequality
//information for it.
func (m *Model) addDefaultAngles() {
	for c := 0; c < m.mol.Len(); c++ {
		neigh := m.mol.Neighbors(c)
		for a := 0; a < len(neigh); a++ {
			for b := a + 1; b < len(neigh); b++ {
				key := orderedTriple(neigh[a], c, neigh[b])
				if _, ok := m.angleB[key]; !ok {
					m.angleB[key] = Bounds{0, math.Pi}
				}
			}
		}
	}
}

//addDefaultDihedrals does the same for every bonded chain of four atoms.
func (m *Model) addDefaultDihedrals() {
	for _, b := range m.mol.Bonds() {
		j, k := b.At1, b.At2
		for _, i := range sidesOf(m.mol, j, k) {
			for _, l := range sidesOf(m.mol, k, j) {
				if i == l {
					continue
				}
				key := orderedQuad(i, j, k, l)
				if _, ok := m.dihedralB[key]; !ok {
					m.dihedralB[key] = Bounds{0, math.Pi}
				}
			}
		}
	}
}

//BoundsList flattens the model into per-pair distance intervals: bonds as
//stored, angles via the law of cosines over the adjacent bond intervals,
//dihedrals via the full 1-4 distance expression. Chains whose flanking
//angles are unmodeled are skipped. Duplicate pairs (a 3-ring makes its
//bonded pairs 1-3 pairs too) are left to the consumer to merge by
//tightening.
func (m *Model) BoundsList() []DistBound {
	var out []DistBound
	for key, b := range m.bondB {
		out = append(out, DistBound{I: key[0], J: key[1], B: b})
	}
	for key, ang := range m.angleB {
		ab, ok1 := m.bondB[orderedPair(key[0], key[1])]
		bc, ok2 := m.bondB[orderedPair(key[1], key[2])]
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, DistBound{I: key[0], J: key[2], B: Bounds{
			Lower: LawOfCosines(ab.Lower, bc.Lower, ang.Lower),
			Upper: LawOfCosines(ab.Upper, bc.Upper, ang.Upper),
		}})
	}
	for key, dih := range m.dihedralB {
		ij, ok1 := m.bondB[orderedPair(key[0], key[1])]
		jk, ok2 := m.bondB[orderedPair(key[1], key[2])]
		kl, ok3 := m.bondB[orderedPair(key[2], key[3])]
		alpha, ok4 := m.angleB[orderedTriple(key[0], key[1], key[2])]
		beta, ok5 := m.angleB[orderedTriple(key[1], key[2], key[3])]
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
			continue
		}
		out = append(out, DistBound{I: key[0], J: key[3], B: Bounds{
			Lower: DihedralLength(ij.Lower, jk.Lower, kl.Lower, alpha.Lower, beta.Lower, dih.Lower),
			Upper: DihedralLength(ij.Upper, jk.Upper, kl.Upper, alpha.Upper, beta.Upper, dih.Upper),
		}})
	}
	return out
}

//ChiralityConstraints collects the signed-volume constraints of every
//stereocenter in the model.
func (m *Model) ChiralityConstraints() []Chirality {
	var out []Chirality
	for _, s := range m.stereos {
		out = append(out, s.ChiralityConstraints(m.mol, m.loosening)...)
	}
	return out
}

//DihedralConstraints collects the stereo-implied torsion constraints.
func (m *Model) DihedralConstraints() []DihedralBound {
	return append([]DihedralBound{}, m.extraDihedrals...)
}

//Stereos returns the model's fully assigned stereocenter list.
func (m *Model) Stereos() []*Stereo {
	return m.stereos
}
