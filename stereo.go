/*
 * stereo.go, part of godg.
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

//A stereocenter is either an atom locus (substituent arrangement around one
//atom) or a bond locus (arrangement across a double-bond-like edge). Instead
//of an open interface hierarchy, the two variants live in one closed struct
//discriminated by Kind, and every consumer switches on it. Both variants
//share the capability set the engine needs: assignment state, permutation
//count, random assignment, implied local bounds and chirality constraints.

//StereoKind discriminates the two stereocenter variants.
type StereoKind int

const (
	AtomStereo StereoKind = iota
	BondStereo
)

//Chirality constrains the signed volume of the tetrahedron spanned by four
//atoms: positive, negative, or (for enforced flatness) zero.
type Chirality struct {
	Sites [4]int
	Lower float64
	Upper float64
}

//Target returns whether the constraint requires an actual handedness, as
//opposed to flatness. Flat constraints need no energetic barrier to reach
//and are excluded from correct-sign bookkeeping.
func (c *Chirality) Target() bool {
	return c.Lower > 0 || c.Upper < 0
}

//DihedralBound restricts the torsion angle over the chain I-J-K-L to
//[Lower, Upper], both in [0, pi], compared against the torsion's absolute
//value (the two enantiomeric torsions are equivalent at this level).
type DihedralBound struct {
	I, J, K, L   int
	Lower, Upper float64
}

//Stereo is a stereocenter of either kind.
type Stereo struct {
	Kind StereoKind
	//Atom variant: the central atom, its idealized shape, and the
	//substituent atoms. Sites[n] occupies shape position
	//positionMap(Assignment)[n] once assigned.
	Center int
	Shape  Shape
	Sites  []int
	//Bond variant: the two ends of the edge.
	Edge [2]int
	//Shared state. Assignment is -1 while unassigned. NumPerm == 0 marks a
	//stereocenter that admits no valid arrangement at all.
	Assignment int
	NumPerm    int
	//Optional relative occurrence weights, one per permutation. nil means
	//uniform. Used by AssignRandom.
	Weights []int
}

//NewAtomStereo builds an unassigned atom stereocenter for the given center
//with the given shape. The substituent sites are the center's neighbors.
func NewAtomStereo(mol Moleculer, center int, shape Shape) *Stereo {
	return &Stereo{
		Kind:       AtomStereo,
		Center:     center,
		Shape:      shape,
		Sites:      mol.Neighbors(center),
		Assignment: -1,
		NumPerm:    shape.NumPermutations(),
	}
}

//NewBondStereo builds an unassigned bond stereocenter over the edge (i, j).
//Assignment 0 pairs the first-ranked substituents cis, assignment 1 trans.
func NewBondStereo(i, j int) *Stereo {
	return &Stereo{
		Kind:       BondStereo,
		Edge:       [2]int{i, j},
		Assignment: -1,
		NumPerm:    2,
	}
}

//Assigned returns whether the stereocenter has a concrete permutation.
func (s *Stereo) Assigned() bool {
	return s.Assignment >= 0
}

//Copy returns a deep copy.
func (s *Stereo) Copy() *Stereo {
	ns := *s
	ns.Sites = append([]int{}, s.Sites...)
	ns.Weights = append([]int{}, s.Weights...)
	if s.Weights == nil {
		ns.Weights = nil
	}
	return &ns
}

//AssignRandom picks a concrete permutation at random, weighted by the
//relative occurrence weights when present. It panics on a zero-permutation
//stereocenter; callers must check NumPerm first.
func (s *Stereo) AssignRandom(r *rand.Rand) {
	if s.NumPerm <= 0 {
		panic("AssignRandom called on a stereocenter with no valid permutations")
	}
	if s.Weights == nil {
		s.Assignment = r.Intn(s.NumPerm)
		return
	}
	total := 0
	for _, w := range s.Weights {
		total += w
	}
	pick := r.Intn(total)
	for i, w := range s.Weights {
		pick -= w
		if pick < 0 {
			s.Assignment = i
			return
		}
	}
	s.Assignment = s.NumPerm - 1
}

//AngleBounds returns the 1-3 angle intervals implied by an assigned atom
//stereocenter: for every substituent pair, the shape's ideal angle between
//the positions the pair occupies, widened by variance (already scaled by
//any cycle multiplier and loosening). Bond stereocenters imply no angles.
func (s *Stereo) AngleBounds(variance func(i, center, k int) float64) map[[3]int]Bounds {
	if s.Kind != AtomStereo || !s.Assigned() {
		return nil
	}
	pm := s.Shape.positionMap(s.Assignment)
	out := make(map[[3]int]Bounds)
	for a := 0; a < len(s.Sites); a++ {
		for b := a + 1; b < len(s.Sites); b++ {
			key := orderedTriple(s.Sites[a], s.Center, s.Sites[b])
			central := s.Shape.Angle(pm[a], pm[b])
			v := variance(s.Sites[a], s.Center, s.Sites[b])
			out[key] = NewBounds(central, v).Clamp(Bounds{0, math.Pi})
		}
	}
	return out
}

//DihedralBounds returns the 1-4 dihedral intervals implied by an assigned
//bond stereocenter: every substituent pair across the edge is pinned to cis
//or trans depending on the assignment and on the pair's rank parity.
//Substituent order within a neighbor list stands in for ranking here.
func (s *Stereo) DihedralBounds(mol Moleculer, variance float64) []DihedralBound {
	if s.Kind != BondStereo || !s.Assigned() {
		return nil
	}
	j, k := s.Edge[0], s.Edge[1]
	var out []DihedralBound
	for ai, a := range sidesOf(mol, j, k) {
		for bi, b := range sidesOf(mol, k, j) {
			cis := (ai+bi+s.Assignment)%2 == 0
			db := DihedralBound{I: a, J: j, K: k, L: b}
			if cis {
				db.Lower, db.Upper = 0, variance
			} else {
				db.Lower, db.Upper = math.Pi-variance, math.Pi
			}
			out = append(out, db)
		}
	}
	return out
}

//sidesOf returns the neighbors of center other than excluded.
func sidesOf(mol Moleculer, center, excluded int) []int {
	var out []int
	for _, n := range mol.Neighbors(center) {
		if n != excluded {
			out = append(out, n)
		}
	}
	return out
}

//ChiralityConstraints returns the signed-volume constraints an assigned
//stereocenter implies. Planar atom shapes and both ends of a bond
//stereocenter yield flatness (zero-volume) constraints; three-dimensional
//shapes yield a volume with the handedness the assignment selects.
func (s *Stereo) ChiralityConstraints(mol Moleculer, loosening float64) []Chirality {
	if !s.Assigned() {
		panic("ChiralityConstraints called on an unassigned stereocenter")
	}
	if s.Kind == BondStereo {
		var out []Chirality
		if c, ok := flatTetrahedron(mol, s.Edge[0], s.Edge[1]); ok {
			out = append(out, c)
		}
		if c, ok := flatTetrahedron(mol, s.Edge[1], s.Edge[0]); ok {
			out = append(out, c)
		}
		return out
	}
	dmean := 0.0
	for _, site := range s.Sites {
		dmean += BondDistance(mol.Symbol(s.Center), mol.Symbol(site), bondTypeOf(mol, s.Center, site))
	}
	dmean /= float64(len(s.Sites))
	v := bondRelativeVariance * loosening
	switch s.Shape {
	case TrigonalPlanar, SquarePlanar:
		//flatness of the center with its first three substituents
		return []Chirality{{
			Sites: [4]int{s.Sites[0], s.Sites[1], s.Sites[2], s.Center},
		}}
	case TrigonalPyramidal:
		vol := s.Shape.idealVolume([4]int{0, 1, 2, -1}) * dmean * dmean * dmean
		return []Chirality{volumeConstraint(
			[4]int{s.Sites[0], s.Sites[1], s.Sites[2], s.Center}, vol, v)}
	case Tetrahedral:
		vol := s.Shape.idealVolume([4]int{0, 1, 2, 3}) * dmean * dmean * dmean
		if s.Assignment == 1 {
			vol = -vol
		}
		return []Chirality{volumeConstraint(
			[4]int{s.Sites[0], s.Sites[1], s.Sites[2], s.Sites[3]}, vol, v)}
	}
	return nil
}

//volumeConstraint widens a target volume by the cubed relative bond
//variance and orders the resulting interval.
func volumeConstraint(sites [4]int, vol, relVariance float64) Chirality {
	spread := 3 * relVariance * math.Abs(vol)
	return Chirality{
		Sites: sites,
		Lower: vol - spread,
		Upper: vol + spread,
	}
}

//flatTetrahedron builds a zero-volume constraint keeping center, its two
//substituents besides across, and across itself coplanar. It reports false
//when center has fewer than two substituents besides across, in which case
//there is nothing to keep flat.
func flatTetrahedron(mol Moleculer, center, across int) (Chirality, bool) {
	others := sidesOf(mol, center, across)
	if len(others) < 2 {
		return Chirality{}, false
	}
	return Chirality{
		Sites: [4]int{others[0], others[1], across, center},
	}, true
}

func bondTypeOf(mol Moleculer, i, j int) BondType {
	b := mol.BondBetween(i, j)
	if b == nil {
		panic("bondTypeOf: atoms are not bonded")
	}
	return b.Type
}
