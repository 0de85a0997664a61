/*
 * fit_test.go, part of godg.
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
	"testing"

	v3 "github.com/rmera/godg/v3"
)

func vecsFrom(data []float64) *v3.Matrix {
	m, err := v3.NewMatrix(data)
	if err != nil {
		panic(err)
	}
	return m
}

//Fitting a rotated and translated copy onto the original must recover it.
func TestFitOntoRecovers(Te *testing.T) {
	ref := vecsFrom([]float64{
		0, 0, 0,
		1.5, 0, 0,
		0.3, 1.2, 0,
		-0.4, 0.1, 1.7,
	})
	//rotate about z by 0.7 rad, then displace
	s, c := math.Sin(0.7), math.Cos(0.7)
	n := ref.NVecs()
	moving := v3.Zeros(n)
	for i := 0; i < n; i++ {
		x, y, z := ref.At(i, 0), ref.At(i, 1), ref.At(i, 2)
		moving.Set(i, 0, c*x-s*y+3)
		moving.Set(i, 1, s*x+c*y-1)
		moving.Set(i, 2, z+2)
	}
	weights := []float64{1, 1, 1, 1}
	fitted := FitOnto(moving, ref, weights)
	for i := 0; i < n; i++ {
		if d := fitted.DistanceTo(ref, i, i); d > 1e-9 {
			Te.Errorf("atom %d is %.2e away from the reference after fitting", i, d)
		}
	}
}

//Zero-weight atoms follow the transform without influencing it.
func TestFitOntoWeighted(Te *testing.T) {
	ref := vecsFrom([]float64{
		0, 0, 0,
		1.5, 0, 0,
		9, 9, 9, //a decoy the fit must ignore
	})
	moving := vecsFrom([]float64{
		2, 1, 0,
		3.5, 1, 0,
		4, 2, 0,
	})
	fitted := FitOnto(moving, ref, []float64{1, 1, 0})
	for i := 0; i < 2; i++ {
		if d := fitted.DistanceTo(ref, i, i); d > 1e-9 {
			Te.Errorf("weighted atom %d is %.2e away from the reference", i, d)
		}
	}
	//the decoy's internal geometry survives, its position does not matter
	dOrig := moving.DistanceTo(moving, 1, 2)
	dFit := fitted.DistanceTo(fitted, 1, 2)
	if math.Abs(dOrig-dFit) > 1e-9 {
		Te.Error("the rigid transform distorted an unweighted atom")
	}
}

//A proper rotation must never flip handedness, even when a reflection
//would fit better.
func TestFitOntoKeepsHandedness(Te *testing.T) {
	ref := vecsFrom([]float64{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	//the mirror image of ref
	moving := v3.Zeros(4)
	for i := 0; i < 4; i++ {
		moving.Set(i, 0, ref.At(i, 0))
		moving.Set(i, 1, ref.At(i, 1))
		moving.Set(i, 2, -ref.At(i, 2))
	}
	fitted := FitOnto(moving, ref, []float64{1, 1, 1, 1})
	vol := func(m *v3.Matrix) float64 {
		var u, v, w [3]float64
		for d := 0; d < 3; d++ {
			u[d] = m.At(1, d) - m.At(0, d)
			v[d] = m.At(2, d) - m.At(0, d)
			w[d] = m.At(3, d) - m.At(0, d)
		}
		return dot3(u, cross3(v, w))
	}
	if vol(moving)*vol(fitted) <= 0 {
		Te.Error("fitting changed the handedness of the structure")
	}
}
