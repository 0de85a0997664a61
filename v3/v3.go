/*
 * v3.go, part of godg.
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

//Package v3 implements a simple container for sets of 3D vectors, backed by
//a gonum Dense matrix. Within the package it is understood that a "vector"
//is a row vector, i.e. the cartesian coordinates of a point in 3D space.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

//Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

//Matrix2Dense returns the underlying Dense of A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

//Dense2Matrix wraps a 3-column Dense into a Matrix. It panics if A does
//not have exactly 3 columns.
func Dense2Matrix(A *mat.Dense) *Matrix {
	if _, c := A.Dims(); c != 3 {
		panic("Dense2Matrix: the matrix must have 3 columns")
	}
	return &Matrix{A}
}

//NewMatrix generates and returns a Matrix with 3 columns from data.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 {
		return nil, fmt.Errorf("NewMatrix: input slice length %d not divisible by %d", l, cols)
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

//Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

//NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

//VecView returns a view of the i-th vector of the matrix. Changes in the
//view are reflected in F and vice versa.
func (F *Matrix) VecView(i int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)}
}

//View returns a view of F starting from i,j and spanning r rows and c
//columns.
func (F *Matrix) View(i, j, r, c int) *Matrix {
	return &Matrix{F.Dense.Slice(i, i+r, j, j+c).(*mat.Dense)}
}

//Norm returns the Euclidean norm of the i-th vector.
func (F *Matrix) Norm(i int) float64 {
	x, y, z := F.At(i, 0), F.At(i, 1), F.At(i, 2)
	return math.Sqrt(x*x + y*y + z*z)
}

//DistanceTo returns the Euclidean distance between the i-th vector of F
//and the j-th vector of G.
func (F *Matrix) DistanceTo(G *Matrix, i, j int) float64 {
	dx := F.At(i, 0) - G.At(j, 0)
	dy := F.At(i, 1) - G.At(j, 1)
	dz := F.At(i, 2) - G.At(j, 2)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//Copy returns a deep copy of F.
func (F *Matrix) Copy() *Matrix {
	out := Zeros(F.NVecs())
	out.Dense.Copy(F.Dense)
	return out
}
