/*
 * shapes.go, part of godg.
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

import "math"

//The local-shape oracle: idealized geometries for an atom's substituent
//sites, as unit vectors from the central atom. The spatial model only ever
//asks three questions of a shape: the ideal angle between two site
//positions, which site tuples define chirality-fixing tetrahedra, and how
//many rotationally distinct ways substituents map onto positions.

//Shape names an idealized local geometry.
type Shape int

const (
	NoShape Shape = iota //terminal atoms
	Linear
	Bent
	TrigonalPlanar
	TrigonalPyramidal
	Tetrahedral
	SquarePlanar
)

func (s Shape) String() string {
	switch s {
	case Linear:
		return "linear"
	case Bent:
		return "bent"
	case TrigonalPlanar:
		return "trigonal planar"
	case TrigonalPyramidal:
		return "trigonal pyramidal"
	case Tetrahedral:
		return "tetrahedral"
	case SquarePlanar:
		return "square planar"
	}
	return "no shape"
}

const tetAngle = 1.9106332362490186 //acos(-1/3), ~109.47 deg

//idealized unit vectors for each position of each shape.
var shapeCoords = map[Shape][][3]float64{
	Linear: {
		{1, 0, 0},
		{-1, 0, 0},
	},
	Bent: {
		{1, 0, 0},
		{math.Cos(tetAngle), math.Sin(tetAngle), 0},
	},
	TrigonalPlanar: {
		{1, 0, 0},
		{-0.5, math.Sqrt(3) / 2, 0},
		{-0.5, -math.Sqrt(3) / 2, 0},
	},
	//three vertices of the tetrahedron; the lone pair takes the fourth.
	TrigonalPyramidal: {
		{1 / math.Sqrt(3), 1 / math.Sqrt(3), 1 / math.Sqrt(3)},
		{1 / math.Sqrt(3), -1 / math.Sqrt(3), -1 / math.Sqrt(3)},
		{-1 / math.Sqrt(3), 1 / math.Sqrt(3), -1 / math.Sqrt(3)},
	},
	Tetrahedral: {
		{1 / math.Sqrt(3), 1 / math.Sqrt(3), 1 / math.Sqrt(3)},
		{1 / math.Sqrt(3), -1 / math.Sqrt(3), -1 / math.Sqrt(3)},
		{-1 / math.Sqrt(3), 1 / math.Sqrt(3), -1 / math.Sqrt(3)},
		{-1 / math.Sqrt(3), -1 / math.Sqrt(3), 1 / math.Sqrt(3)},
	},
	SquarePlanar: {
		{1, 0, 0},
		{0, 1, 0},
		{-1, 0, 0},
		{0, -1, 0},
	},
}

//Size returns the number of substituent positions of the shape.
func (s Shape) Size() int {
	return len(shapeCoords[s])
}

//Planar returns whether all positions plus the central atom are coplanar.
func (s Shape) Planar() bool {
	switch s {
	case Linear, Bent, TrigonalPlanar, SquarePlanar:
		return true
	}
	return false
}

//Angle returns the ideal angle, in radians, between positions a and b of
//the shape, seen from the central atom.
func (s Shape) Angle(a, b int) float64 {
	coords := shapeCoords[s]
	va := coords[a]
	vb := coords[b]
	dot := va[0]*vb[0] + va[1]*vb[1] + va[2]*vb[2]
	return math.Acos(clampf(dot, -1, 1))
}

//NumPermutations returns how many rotationally distinct substituent
//arrangements the shape admits when all substituents differ. This stands in
//for the full ranking-based stereopermutation count, which belongs to the
//ranking collaborator.
func (s Shape) NumPermutations() int {
	switch s {
	case Tetrahedral:
		return 2 //the two mirror images
	case SquarePlanar:
		return 3 //three distinct trans pairings
	}
	return 1
}

//positionMap returns, for a given assignment, the map from substituent site
//to shape position.
func (s Shape) positionMap(assignment int) []int {
	if s == SquarePlanar {
		maps := [3][]int{
			{0, 1, 2, 3},
			{0, 1, 3, 2},
			{0, 2, 1, 3},
		}
		return maps[assignment%3]
	}
	m := make([]int, s.Size())
	for i := range m {
		m[i] = i
	}
	return m
}

//idealVolume returns the signed volume of the tetrahedron spanned by four
//idealized site positions (given as shape position indices) at unit bond
//length. A position index of -1 means the central atom itself.
func (s Shape) idealVolume(p [4]int) float64 {
	coords := shapeCoords[s]
	var pts [4][3]float64
	for n, pi := range p {
		if pi >= 0 {
			pts[n] = coords[pi]
		} //else: stays at the origin, the central atom
	}
	var u, v, w [3]float64
	for d := 0; d < 3; d++ {
		u[d] = pts[0][d] - pts[3][d]
		v[d] = pts[1][d] - pts[3][d]
		w[d] = pts[2][d] - pts[3][d]
	}
	return u[0]*(v[1]*w[2]-v[2]*w[1]) +
		u[1]*(v[2]*w[0]-v[0]*w[2]) +
		u[2]*(v[0]*w[1]-v[1]*w[0])
}

//InferShape guesses the idealized local shape of a non-terminal atom from
//its substituent count and bond orders. This is a deliberately simple stand
//in for a real local-geometry model: multiple bonds flatten or linearize the
//center, everything else is as tetrahedral as the substituent count allows.
func InferShape(mol Moleculer, center int) Shape {
	neigh := mol.Neighbors(center)
	nmulti := 0
	ntriple := 0
	for _, n := range neigh {
		b := mol.BondBetween(center, n)
		switch b.Type {
		case Double, Aromatic:
			nmulti++
		case Triple:
			ntriple++
		}
	}
	switch len(neigh) {
	case 0, 1:
		return NoShape
	case 2:
		if ntriple > 0 || nmulti >= 2 {
			return Linear
		}
		if nmulti == 1 {
			return Bent //sp2-ish, still bent with a lone pair
		}
		return Bent
	case 3:
		if nmulti > 0 {
			return TrigonalPlanar
		}
		return TrigonalPyramidal
	case 4:
		return Tetrahedral
	}
	panic("InferShape: substituent counts above 4 are not supported")
}
