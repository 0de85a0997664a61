/*
 * refine.go, part of godg.
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
)

//refiner is the penalty function minimized to iron an embedded guess into a
//structure satisfying all distance, chirality and dihedral constraints.
//Coordinates are flat row-major: atom i occupies x[embedDims*i : embedDims*(i+1)].
//The fourth component participates in distances and gives chiral centers an
//inversion path; the compression term, active only in the second refinement
//stage, then squeezes it back out.
type refiner struct {
	n         int
	lowerSq   []float64 //n*n, squared lower bounds
	upperSq   []float64
	chirals   []Chirality
	dihedrals []DihedralBound
	compress  bool
	//last evaluated point, kept so stage control can inspect progress
	//between optimizer iterations
	lastX []float64
	//set when an evaluation hits a gradient singularity; the surrounding
	//minimization aborts on it
	evalErr error
}

func newRefiner(bounds *DistanceBounds, chirals []Chirality, dihedrals []DihedralBound) *refiner {
	n := bounds.Len()
	f := &refiner{
		n:         n,
		lowerSq:   make([]float64, n*n),
		upperSq:   make([]float64, n*n),
		chirals:   chirals,
		dihedrals: dihedrals,
		lastX:     make([]float64, n*embedDims),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			l, u := bounds.Lower(i, j), bounds.Upper(i, j)
			f.lowerSq[i*n+j] = l * l
			f.upperSq[i*n+j] = u * u
		}
	}
	return f
}

//Func returns the total penalty at x.
func (f *refiner) Func(x []float64) float64 {
	copy(f.lastX, x)
	total := f.distanceTerms(x, nil)
	total += f.chiralTerms(x, nil)
	total += f.dihedralTerms(x, nil)
	if f.compress {
		for i := 0; i < f.n; i++ {
			w := x[i*embedDims+3]
			total += w * w
		}
	}
	return total
}

//Grad writes the analytic penalty gradient at x into grad.
func (f *refiner) Grad(grad, x []float64) {
	for i := range grad {
		grad[i] = 0
	}
	f.distanceTerms(x, grad)
	f.chiralTerms(x, grad)
	f.dihedralTerms(x, grad)
	if f.compress {
		for i := 0; i < f.n; i++ {
			grad[i*embedDims+3] += 2 * x[i*embedDims+3]
		}
	}
}

//distanceTerms accumulates the pairwise bound violations. The upper term
//(d^2/u^2 - 1)^2 and lower term (2l^2/(l^2+d^2) - 1)^2 are both smooth and
//bounded below by zero, and each is active only on its own side of the
//interval.
func (f *refiner) distanceTerms(x, grad []float64) float64 {
	total := 0.0
	for i := 0; i < f.n; i++ {
		for j := i + 1; j < f.n; j++ {
			var diff [embedDims]float64
			dsq := 0.0
			for d := 0; d < embedDims; d++ {
				diff[d] = x[i*embedDims+d] - x[j*embedDims+d]
				dsq += diff[d] * diff[d]
			}
			usq := f.upperSq[i*f.n+j]
			lsq := f.lowerSq[i*f.n+j]
			if e := dsq/usq - 1; e > 0 {
				total += e * e
				if grad != nil {
					k := 4 * e / usq
					for d := 0; d < embedDims; d++ {
						grad[i*embedDims+d] += k * diff[d]
						grad[j*embedDims+d] -= k * diff[d]
					}
				}
			}
			if e := 2*lsq/(lsq+dsq) - 1; e > 0 {
				total += e * e
				if grad != nil {
					denom := lsq + dsq
					k := -8 * lsq * e / (denom * denom)
					for d := 0; d < embedDims; d++ {
						grad[i*embedDims+d] += k * diff[d]
						grad[j*embedDims+d] -= k * diff[d]
					}
				}
			}
		}
	}
	return total
}

//chiralTerms penalizes signed tetrahedron volumes outside their intervals.
//Volumes are evaluated on the spatial components only, so the fourth
//dimension offers a penalty-free inversion route.
func (f *refiner) chiralTerms(x, grad []float64) float64 {
	total := 0.0
	for ci := range f.chirals {
		c := &f.chirals[ci]
		a := f.pos3(x, c.Sites[0])
		b := f.pos3(x, c.Sites[1])
		cc := f.pos3(x, c.Sites[2])
		d := f.pos3(x, c.Sites[3])
		ad := sub3(a, d)
		bd := sub3(b, d)
		cd := sub3(cc, d)
		vol := dot3(ad, cross3(bd, cd))
		var e, sign float64
		switch {
		case vol < c.Lower:
			e, sign = c.Lower-vol, -1
		case vol > c.Upper:
			e, sign = vol-c.Upper, 1
		default:
			continue
		}
		total += e * e
		if grad == nil {
			continue
		}
		k := 2 * e * sign
		ga := cross3(bd, cd)
		gb := cross3(cd, ad)
		gc := cross3(ad, bd)
		for d3 := 0; d3 < 3; d3++ {
			grad[c.Sites[0]*embedDims+d3] += k * ga[d3]
			grad[c.Sites[1]*embedDims+d3] += k * gb[d3]
			grad[c.Sites[2]*embedDims+d3] += k * gc[d3]
			grad[c.Sites[3]*embedDims+d3] -= k * (ga[d3] + gb[d3] + gc[d3])
		}
	}
	return total
}

//dihedralTerms penalizes torsion magnitudes outside their intervals. A
//collinear chain makes the torsion undefined; evaluation then records a
//RefinementException and skips the term, and the minimization driver aborts
//the attempt.
func (f *refiner) dihedralTerms(x, grad []float64) float64 {
	total := 0.0
	for di := range f.dihedrals {
		dc := &f.dihedrals[di]
		ri := f.pos3(x, dc.I)
		rj := f.pos3(x, dc.J)
		rk := f.pos3(x, dc.K)
		rl := f.pos3(x, dc.L)
		b1 := sub3(rj, ri)
		b2 := sub3(rk, rj)
		b3 := sub3(rl, rk)
		n1 := cross3(b1, b2)
		n2 := cross3(b2, b3)
		n1sq := dot3(n1, n1)
		n2sq := dot3(n2, n2)
		b2norm := math.Sqrt(dot3(b2, b2))
		if n1sq < 1e-10 || n2sq < 1e-10 || b2norm < 1e-10 {
			if f.evalErr == nil {
				f.evalErr = newError(RefinementException,
					"degenerate torsion over atoms %d-%d-%d-%d", dc.I, dc.J, dc.K, dc.L)
			}
			continue
		}
		y := dot3(cross3(n1, n2), b2) / b2norm
		phi := math.Atan2(y, dot3(n1, n2))
		abs := math.Abs(phi)
		var e, vsign float64
		switch {
		case abs < dc.Lower:
			e, vsign = dc.Lower-abs, -1
		case abs > dc.Upper:
			e, vsign = abs-dc.Upper, 1
		default:
			continue
		}
		total += e * e
		if grad == nil {
			continue
		}
		//Blondel-Karplus torsion derivatives
		k := 2 * e * vsign * sign(phi)
		var dphidi, dphidl [3]float64
		for d3 := 0; d3 < 3; d3++ {
			dphidi[d3] = -b2norm / n1sq * n1[d3]
			dphidl[d3] = b2norm / n2sq * n2[d3]
		}
		p := dot3(b1, b2) / (b2norm * b2norm)
		q := dot3(b3, b2) / (b2norm * b2norm)
		for d3 := 0; d3 < 3; d3++ {
			gi := dphidi[d3]
			gl := dphidl[d3]
			gj := -(1+p)*gi + q*gl
			gk := p*gi - (1+q)*gl
			grad[dc.I*embedDims+d3] += k * gi
			grad[dc.J*embedDims+d3] += k * gj
			grad[dc.K*embedDims+d3] += k * gk
			grad[dc.L*embedDims+d3] += k * gl
		}
	}
	return total
}

func (f *refiner) pos3(x []float64, atom int) [3]float64 {
	return [3]float64{x[atom*embedDims], x[atom*embedDims+1], x[atom*embedDims+2]}
}

//proportionCorrectSign returns the fraction of handed chirality constraints
//whose tetrahedron volume at x already has the required sign. Flatness
//constraints do not count; with no handed constraints at all the proportion
//is one.
func (f *refiner) proportionCorrectSign(x []float64) float64 {
	total, correct := 0, 0
	for ci := range f.chirals {
		c := &f.chirals[ci]
		if !c.Target() {
			continue
		}
		total++
		ad := sub3(f.pos3(x, c.Sites[0]), f.pos3(x, c.Sites[3]))
		bd := sub3(f.pos3(x, c.Sites[1]), f.pos3(x, c.Sites[3]))
		cd := sub3(f.pos3(x, c.Sites[2]), f.pos3(x, c.Sites[3]))
		vol := dot3(ad, cross3(bd, cd))
		if (c.Lower > 0 && vol > 0) || (c.Upper < 0 && vol < 0) {
			correct++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(correct) / float64(total)
}

//invertY reflects the whole point set through the xz plane, flipping the
//handedness of every chiral center at once.
func invertY(x []float64, n int) {
	for i := 0; i < n; i++ {
		x[i*embedDims+1] = -x[i*embedDims+1]
	}
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
