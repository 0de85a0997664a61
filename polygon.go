/*
 * polygon.go, part of godg.
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

//Small flat rings are modeled exactly: given the ring's edge lengths, a
//unique convex cyclic polygon maximizes the enclosed area, and its internal
//angles are what we set as tight angle bounds. The polygon is found through
//its circumradius. Every vertex lies on a circle of radius r, so each edge d
//subtends a central angle 2*asin(d/(2r)); r is the root at which the central
//angles close up around the circumcenter. The circumcenter may fall outside
//the polygon (one very long edge), in which case the long edge's central
//angle must instead equal the sum of all the others.

//PolygonExists returns whether edge lengths can form a closed polygon at
//all: the longest edge must be shorter than the sum of the others.
func PolygonExists(edges []float64) bool {
	longest := 0.0
	sum := 0.0
	for _, e := range edges {
		if e > longest {
			longest = e
		}
		sum += e
	}
	return longest < sum-longest
}

//the circumradius of the regular n-gon with the given edge length.
func regularCircumradius(n int, edge float64) float64 {
	return 0.5 * edge / math.Sin(math.Pi/float64(n))
}

//central angle subtended by an edge of length d on a circle of radius r.
func centralAngle(d, r float64) float64 {
	arg := d / (2 * r)
	if arg > 1 { //only reachable through roundoff at the bracket edge
		arg = 1
	}
	return 2 * math.Asin(arg)
}

//deviation from closure with the circumcenter inside the polygon.
func centralAnglesDeviation(r float64, edges []float64) float64 {
	sum := 0.0
	for _, d := range edges {
		sum += centralAngle(d, r)
	}
	return sum - 2*math.Pi
}

//deviation from closure with the circumcenter outside, beyond the longest
//edge: that edge's central angle has to match the sum of all the others.
func centralAnglesDeviationOutside(r float64, edges []float64, longest float64) float64 {
	sum := 0.0
	for _, d := range edges {
		if d == longest {
			continue
		}
		sum += centralAngle(d, r)
	}
	return centralAngle(longest, r) - sum
}

//bisect assumes f(lo) >= 0 and f(hi) < 0 and finds the sign change.
func bisect(f func(float64) float64, lo, hi float64) float64 {
	for i := 0; i < 200; i++ {
		mid := 0.5 * (lo + hi)
		if f(mid) >= 0 {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo < 1e-14*hi {
			break
		}
	}
	return 0.5 * (lo + hi)
}

//convexCircumradius returns the circumradius of the convex cyclic polygon
//with the given edge lengths, and whether the circumcenter lies inside the
//polygon. It panics if the edges cannot form a polygon; callers check
//PolygonExists first, as ring edge lengths that cannot close are a
//malformed-graph programming error.
func convexCircumradius(edges []float64) (float64, bool) {
	if !PolygonExists(edges) {
		panic("convexCircumradius: edge lengths cannot form a closed polygon")
	}
	longest := 0.0
	for _, d := range edges {
		if d > longest {
			longest = d
		}
	}
	minR := longest/2 + 1e-12
	if centralAnglesDeviation(minR, edges) > 0 {
		//Circumcenter inside. Bracket by doubling from the regular guess.
		hi := math.Max(regularCircumradius(len(edges), longest), minR*2)
		for centralAnglesDeviation(hi, edges) >= 0 {
			hi *= 2
		}
		f := func(r float64) float64 { return centralAnglesDeviation(r, edges) }
		return bisect(f, minR, hi), true
	}
	//Circumcenter outside, beyond the longest edge.
	hi := minR * 2
	for centralAnglesDeviationOutside(hi, edges, longest) >= 0 {
		hi *= 2
	}
	f := func(r float64) float64 { return centralAnglesDeviationOutside(r, edges, longest) }
	return bisect(f, minR, hi), false
}

//InternalAngles returns the internal angles of the flat convex polygon with
//the given edge lengths. Edge k connects vertices k and k+1; the returned
//angle k sits at vertex k+1, between edges k and k+1, so the last returned
//angle is the one at vertex 0. This matches the order in which ring angle
//bounds are set while walking a ring's index sequence.
func InternalAngles(edges []float64) []float64 {
	n := len(edges)
	r, inside := convexCircumradius(edges)
	longest := 0.0
	for _, d := range edges {
		if d > longest {
			longest = d
		}
	}
	//Each edge's isoceles triangle against the circumcenter contributes a
	//base angle (pi - theta)/2 at both of its vertices. If the circumcenter
	//is outside, the longest edge's triangle overlaps the others and its
	//contribution flips sign.
	contrib := make([]float64, n)
	flipped := false
	for k, d := range edges {
		c := (math.Pi - centralAngle(d, r)) / 2
		if !inside && d == longest && !flipped {
			c = -c
			flipped = true //only one edge flips even if lengths tie
		}
		contrib[k] = c
	}
	angles := make([]float64, n)
	for k := 0; k < n; k++ {
		angles[k] = contrib[k] + contrib[(k+1)%n]
	}
	return angles
}
