/*
 * bounds.go, part of godg.
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

import "fmt"

//Bounds is a scalar interval: a distance in A or an angle in radians.
type Bounds struct {
	Lower float64
	Upper float64
}

//NewBounds builds an interval around a central value with a symmetric
//absolute variance.
func NewBounds(central, variance float64) Bounds {
	return Bounds{Lower: central - variance, Upper: central + variance}
}

//Valid returns whether the interval is't inverted.
func (b Bounds) Valid() bool {
	return b.Lower <= b.Upper
}

//Clamp limits both ends of the interval to the given clamp interval.
func (b Bounds) Clamp(to Bounds) Bounds {
	return Bounds{
		Lower: clampf(b.Lower, to.Lower, to.Upper),
		Upper: clampf(b.Upper, to.Lower, to.Upper),
	}
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%4.2f, %4.2f]", b.Lower, b.Upper)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

//Bounds-map keys are canonicalized so that the sequence reads the same from
//either end: the first index is always <= the last one. That makes the keys
//direction-independent, as bonds, angles and dihedrals are.

func orderedPair(i, j int) [2]int {
	if i > j {
		return [2]int{j, i}
	}
	return [2]int{i, j}
}

func orderedTriple(i, center, k int) [3]int {
	if i > k {
		return [3]int{k, center, i}
	}
	return [3]int{i, center, k}
}

func orderedQuad(i, j, k, l int) [4]int {
	if i > l {
		return [4]int{l, k, j, i}
	}
	return [4]int{i, j, k, l}
}

//DistBound is one element of the flattened bounds list handed to the
//smoothing stage: explicit distance knowledge between a pair of atoms.
type DistBound struct {
	I int
	J int
	B Bounds
}
