/*
 * metric_test.go, part of godg.
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

	"gonum.org/v1/gonum/mat"
)

//Embedding an exactly Euclidean distance matrix must reproduce its
//distances.
func TestEmbedRecoversDistances(Te *testing.T) {
	points := [][3]float64{
		{0, 0, 0},
		{1.5, 0, 0},
		{0.3, 1.2, 0},
		{-0.4, 0.1, 1.7},
		{1.1, 1.3, 0.8},
	}
	n := len(points)
	dm := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := 0.0
			for c := 0; c < 3; c++ {
				diff := points[i][c] - points[j][c]
				d += diff * diff
			}
			dm.Set(i, j, math.Sqrt(d))
		}
	}
	coords, err := Embed(MetricMatrix(dm))
	if err != nil {
		Te.Fatal(err)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 0.0
			for c := 0; c < embedDims; c++ {
				diff := coords.At(i, c) - coords.At(j, c)
				d += diff * diff
			}
			d = math.Sqrt(d)
			if math.Abs(d-dm.At(i, j)) > 1e-8 {
				Te.Errorf("embedded distance %d-%d is %.8f, want %.8f", i, j, d, dm.At(i, j))
			}
		}
	}
}

//A metric matrix must be centered: its row sums vanish for the centroid
//reference.
func TestMetricMatrixCentered(Te *testing.T) {
	dm := mat.NewDense(3, 3, []float64{
		0, 1, 2,
		1, 0, 1,
		2, 1, 0,
	})
	g := MetricMatrix(dm)
	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			sum += g.At(i, j)
		}
		if math.Abs(sum) > 1e-9 {
			Te.Errorf("row %d of the metric matrix sums to %.2e, want 0", i, sum)
		}
	}
}
