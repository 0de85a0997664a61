/*
 * smooth.go, part of godg.
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
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

//Fallback upper distance, in Angstroms, for atom pairs the model says
//nothing about. Far beyond any relevant molecular diameter.
const defaultUpperBound = 100.0

//DistanceBounds holds interval bounds on every pairwise distance of a
//system, packed into a single square matrix: entry (i, j) with i < j is the
//upper bound of the pair, entry (j, i) its lower bound. The diagonal is
//zero.
type DistanceBounds struct {
	n int
	m *mat.Dense
}

//NewDistanceBounds initializes the bounds matrix for a molecule from a
//flattened bounds list. Pairs the list says nothing about default to the
//sum of the two van der Waals radii below and defaultUpperBound above;
//bonded-path pairs are closer than vdW contact by nature, so the contact
//default applies only to unlisted pairs. A pair listed more than once (a
//3-ring makes its bonded pairs 1-3 pairs too) keeps the intersection of
//all its intervals.
func NewDistanceBounds(mol Moleculer, list []DistBound) *DistanceBounds {
	n := mol.Len()
	db := &DistanceBounds{n: n, m: mat.NewDense(n, n, nil)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			db.m.Set(i, j, defaultUpperBound)
		}
	}
	listed := make(map[[2]int]bool, len(list))
	for _, d := range list {
		db.Tighten(d.I, d.J, d.B)
		listed[orderedPair(d.I, d.J)] = true
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !listed[[2]int{i, j}] {
				db.Tighten(i, j, Bounds{VdwRad(mol.Symbol(i)) + VdwRad(mol.Symbol(j)), defaultUpperBound})
			}
		}
	}
	return db
}

//Len returns the number of particles.
func (db *DistanceBounds) Len() int {
	return db.n
}

//Lower returns the lower distance bound of the pair.
func (db *DistanceBounds) Lower(i, j int) float64 {
	if i < j {
		return db.m.At(j, i)
	}
	return db.m.At(i, j)
}

//Upper returns the upper distance bound of the pair.
func (db *DistanceBounds) Upper(i, j int) float64 {
	if i < j {
		return db.m.At(i, j)
	}
	return db.m.At(j, i)
}

//Tighten intersects the stored interval of the pair with b: the lower
//bound can only rise and the upper bound can only fall. It panics on i == j.
func (db *DistanceBounds) Tighten(i, j int, b Bounds) {
	if i == j {
		panic("Tighten: a particle has no distance to itself")
	}
	if i > j {
		i, j = j, i
	}
	if b.Upper < db.m.At(i, j) {
		db.m.Set(i, j, b.Upper)
	}
	if b.Lower > db.m.At(j, i) {
		db.m.Set(j, i, b.Lower)
	}
}

//fix collapses the pair's interval onto a single value. The caller is
//responsible for picking a value inside the current interval.
func (db *DistanceBounds) fix(i, j int, d float64) {
	if i > j {
		i, j = j, i
	}
	db.m.Set(i, j, d)
	db.m.Set(j, i, d)
}

//Inconsistencies counts the pairs whose lower bound exceeds their upper
//bound.
func (db *DistanceBounds) Inconsistencies() int {
	count := 0
	for i := 0; i < db.n; i++ {
		for j := i + 1; j < db.n; j++ {
			if db.m.At(j, i) > db.m.At(i, j) {
				count++
			}
		}
	}
	return count
}

//Smooth tightens every pairwise interval to triangle-inequality
//consistency: no upper bound above the sum of any two-leg upper path, no
//lower bound below what any leg's lower bound minus the other leg's upper
//bound forces. It iterates to a fixed point and returns a BoundsInconsistent
//error if any interval inverts, which means the model over-constrained the
//system.
func (db *DistanceBounds) Smooth() error {
	//Direct O(n^3) Floyd-style passes. Repeating until nothing moves makes
	//the result independent of the visit order.
	for {
		changed := false
		for k := 0; k < db.n; k++ {
			for i := 0; i < db.n; i++ {
				if i == k {
					continue
				}
				for j := i + 1; j < db.n; j++ {
					if j == k {
						continue
					}
					upper := db.Upper(i, k) + db.Upper(k, j)
					if upper < db.Upper(i, j) {
						db.m.Set(i, j, upper)
						changed = true
					}
					lower := db.Lower(i, k) - db.Upper(k, j)
					if l2 := db.Lower(j, k) - db.Upper(k, i); l2 > lower {
						lower = l2
					}
					if lower > db.Lower(i, j) {
						db.m.Set(j, i, lower)
						changed = true
					}
				}
			}
		}
		if n := db.Inconsistencies(); n > 0 {
			return newError(BoundsInconsistent, "triangle smoothing inverted %d distance intervals", n)
		}
		if !changed {
			return nil
		}
	}
}

//Partiality controls how many atoms have their distances re-smoothed
//during metrization. More re-smoothing gives better-conditioned embeddings
//at cubic cost per re-smoothed atom.
type Partiality int

const (
	//FourAtom re-smooths after the first four atoms only.
	FourAtom Partiality = iota
	//TenPercent re-smooths after the first tenth of the atoms, and at
	//least four.
	TenPercent
	//All re-smooths after every atom.
	All
)

func (p Partiality) limit(n int) int {
	switch p {
	case FourAtom:
		return mini(4, n)
	case TenPercent:
		return mini(maxi(n/10, 4), n)
	case All:
		return n
	}
	panic("unknown metrization partiality")
}

//DistanceMatrix metrizes the smoothed bounds into one concrete distance
//choice per pair: atoms are visited in random order and each of their
//remaining intervals collapses onto a uniform random value inside it. While
//fewer atoms than the partiality limit have been fixed, the whole matrix is
//re-smoothed after each atom so later choices feel the earlier ones. The
//receiver is consumed; metrize a copy if the bounds are still needed.
func (db *DistanceBounds) DistanceMatrix(r *rand.Rand, p Partiality) (*mat.Dense, error) {
	order := r.Perm(db.n)
	limit := p.limit(db.n)
	for done, i := range order {
		for _, j := range order {
			if i == j {
				continue
			}
			lo, up := db.Lower(i, j), db.Upper(i, j)
			if lo >= up {
				continue //already fixed, or tight enough not to matter
			}
			db.fix(i, j, lo+r.Float64()*(up-lo))
		}
		if done+1 < limit {
			if err := db.Smooth(); err != nil {
				return nil, errDecorate(err, "DistanceMatrix")
			}
		}
	}
	out := mat.NewDense(db.n, db.n, nil)
	for i := 0; i < db.n; i++ {
		for j := i + 1; j < db.n; j++ {
			d := 0.5 * (db.Lower(i, j) + db.Upper(i, j))
			out.Set(i, j, d)
			out.Set(j, i, d)
		}
	}
	return out, nil
}

func mini(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxi(a, b int) int {
	if a > b {
		return a
	}
	return b
}
