/*
 * metric.go, part of godg.
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

	"gonum.org/v1/gonum/mat"
)

//Coordinates are refined in this many dimensions: three spatial ones plus
//an extra that lets wrong-handed chiral centers invert without passing
//through a planar energy barrier.
const embedDims = 4

//MetricMatrix converts an n x n matrix of concrete pairwise distances into
//the corresponding Gram matrix, referenced to the centroid of the point
//set, so its dominant eigenvectors yield coordinates directly.
func MetricMatrix(distances *mat.Dense) *mat.SymDense {
	n, _ := distances.Dims()
	fn := float64(n)
	//squared distances from each point to the centroid
	d0sq := make([]float64, n)
	allsq := 0.0
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			d := distances.At(j, k)
			allsq += d * d
		}
	}
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			d := distances.At(i, j)
			sum += d * d
		}
		d0sq[i] = sum/fn - allsq/(fn*fn)
	}
	g := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			d := distances.At(i, j)
			g.SetSym(i, j, 0.5*(d0sq[i]+d0sq[j]-d*d))
		}
	}
	return g
}

//Embed turns a Gram matrix into n points in embedDims dimensions using its
//four largest eigenvalues. Negative eigenvalues among the four, which show
//up whenever the metrized distances are not exactly Euclidean, are treated
//as zero; refinement irons out the residual error. The returned matrix is
//n x embedDims, one point per row.
func Embed(g *mat.SymDense) (*mat.Dense, error) {
	n, _ := g.Dims()
	var eig mat.EigenSym
	if ok := eig.Factorize(g, true); !ok {
		return nil, newError(RefinementException, "eigendecomposition of the metric matrix failed")
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)
	//eigenvalues come out in ascending order; the last four are the
	//largest
	coords := mat.NewDense(n, embedDims, nil)
	for dim := 0; dim < embedDims; dim++ {
		col := n - 1 - dim
		if col < 0 {
			break
		}
		scale := math.Sqrt(math.Max(vals[col], 0))
		for i := 0; i < n; i++ {
			coords.Set(i, dim, scale*vecs.At(i, col))
		}
	}
	return coords, nil
}
