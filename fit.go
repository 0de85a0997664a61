/*
 * fit.go, part of godg.
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
	"gonum.org/v1/gonum/mat"

	v3 "github.com/rmera/godg/v3"
)

//FitOnto rigid-body transforms moving so the atoms with non-zero weight
//superpose, in the least-squares sense, onto the same rows of ref. The
//whole structure follows the transform; atoms with zero weight just come
//along for the ride. Proper rotations only, so handedness survives. It
//panics if no weight is positive.
func FitOnto(moving, ref *v3.Matrix, weights []float64) *v3.Matrix {
	n, _ := moving.Dims()
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		panic("FitOnto: at least one atom must have positive weight")
	}
	var mc, rc [3]float64
	for i := 0; i < n; i++ {
		w := weights[i]
		for d := 0; d < 3; d++ {
			mc[d] += w * moving.At(i, d)
			rc[d] += w * ref.At(i, d)
		}
	}
	for d := 0; d < 3; d++ {
		mc[d] /= total
		rc[d] /= total
	}
	//weighted covariance of the centered point sets
	cov := mat.NewDense(3, 3, nil)
	for i := 0; i < n; i++ {
		w := weights[i]
		if w == 0 {
			continue
		}
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				cov.Set(a, b, cov.At(a, b)+
					w*(moving.At(i, a)-mc[a])*(ref.At(i, b)-rc[b]))
			}
		}
	}
	var svd mat.SVD
	if ok := svd.Factorize(cov, mat.SVDFull); !ok {
		panic("FitOnto: SVD of the covariance matrix failed")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	//flip the smallest singular direction if the raw rotation is improper
	d := 1.0
	if mat.Det(&u)*mat.Det(&v) < 0 {
		d = -1
	}
	rot := mat.NewDense(3, 3, nil)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			sum := 0.0
			for k := 0; k < 3; k++ {
				scale := 1.0
				if k == 2 {
					scale = d
				}
				sum += scale * u.At(a, k) * v.At(b, k)
			}
			rot.Set(a, b, sum)
		}
	}
	out := v3.Zeros(n)
	for i := 0; i < n; i++ {
		var p [3]float64
		for a := 0; a < 3; a++ {
			p[a] = moving.At(i, a) - mc[a]
		}
		for b := 0; b < 3; b++ {
			val := rc[b]
			for a := 0; a < 3; a++ {
				val += p[a] * rot.At(a, b)
			}
			out.Set(i, b, val)
		}
	}
	return out
}
