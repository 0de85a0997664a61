/*
 * geometry_test.go, part of godg.
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
	"math/rand"
	"testing"
)

func TestInternalAnglesEquilateral(Te *testing.T) {
	angles := InternalAngles([]float64{1.5, 1.5, 1.5})
	for i, a := range angles {
		if math.Abs(a-math.Pi/3) > 1e-5 {
			Te.Errorf("angle %d of an equilateral triangle is %.6f, want pi/3", i, a)
		}
	}
}

//The internal angles of any convex polygon must add up to (n-2)*pi,
//whatever the edge lengths.
func TestInternalAnglesSum(Te *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 3 + r.Intn(3)
		edges := make([]float64, n)
		for {
			for i := range edges {
				edges[i] = 1 + 3*r.Float64()
			}
			if PolygonExists(edges) {
				break
			}
		}
		angles := InternalAngles(edges)
		sum := 0.0
		for _, a := range angles {
			sum += a
		}
		want := float64(n-2) * math.Pi
		if math.Abs(sum-want) > 1e-4 {
			Te.Errorf("angles of polygon %v sum to %.6f, want %.6f", edges, sum, want)
		}
	}
}

//An obtuse enough triangle puts the circumcenter outside; the angle sum
//property must survive the change of formula.
func TestInternalAnglesObtuse(Te *testing.T) {
	angles := InternalAngles([]float64{2, 2, 3.8})
	sum := angles[0] + angles[1] + angles[2]
	if math.Abs(sum-math.Pi) > 1e-4 {
		Te.Errorf("obtuse triangle angles sum to %.6f, want pi", sum)
	}
}

func TestPolygonExists(Te *testing.T) {
	if PolygonExists([]float64{1, 1, 3}) {
		Te.Error("a 1,1,3 triangle should not exist")
	}
	if !PolygonExists([]float64{3, 4, 5}) {
		Te.Error("a 3,4,5 triangle should exist")
	}
}

func TestLawOfCosines(Te *testing.T) {
	//a right angle reduces to Pythagoras
	if d := LawOfCosines(3, 4, math.Pi/2); math.Abs(d-5) > 1e-10 {
		Te.Errorf("right-angle law of cosines gave %.6f, want 5", d)
	}
	//a straight angle reduces to a sum
	if d := LawOfCosines(1.2, 2.3, math.Pi); math.Abs(d-3.5) > 1e-10 {
		Te.Errorf("straight-angle law of cosines gave %.6f, want 3.5", d)
	}
}

//The 1-4 distance grows monotonically from the syn to the anti torsion.
func TestDihedralLength(Te *testing.T) {
	prev := 0.0
	for phi := 0.0; phi <= math.Pi+1e-9; phi += math.Pi / 10 {
		d := DihedralLength(1.5, 1.5, 1.5, 1.91, 1.91, phi)
		if d <= prev {
			Te.Errorf("1-4 distance %.6f at torsion %.3f did not grow", d, phi)
		}
		prev = d
	}
}

func TestSpiroCrossAngle(Te *testing.T) {
	//two right in-ring angles give acos(-cos^2(pi/4)) = 2*pi/3
	if a := SpiroCrossAngle(math.Pi/2, math.Pi/2); math.Abs(a-2*math.Pi/3) > 1e-10 {
		Te.Errorf("cross angle of two right angles is %.6f, want 2*pi/3", a)
	}
	//small in-ring angles open the cross angle past tetrahedral
	if a := SpiroCrossAngle(math.Pi/3, math.Pi/3); a <= tetAngle {
		Te.Errorf("spiro cross angle %.6f should exceed tetrahedral", a)
	}
}

func TestOrderedKeys(Te *testing.T) {
	if orderedPair(5, 2) != orderedPair(2, 5) {
		Te.Error("pair keys are not symmetric")
	}
	if orderedTriple(7, 1, 3) != orderedTriple(3, 1, 7) {
		Te.Error("triple keys are not symmetric")
	}
	if orderedQuad(4, 3, 2, 1) != orderedQuad(1, 2, 3, 4) {
		Te.Error("quad keys are not symmetric")
	}
}

func TestBoundsClamp(Te *testing.T) {
	b := NewBounds(0.1, 0.3).Clamp(Bounds{0, math.Pi})
	if b.Lower != 0 {
		Te.Errorf("clamped lower bound is %.6f, want 0", b.Lower)
	}
	if !b.Valid() {
		Te.Error("clamped bounds should be valid")
	}
}

func TestShapeAngles(Te *testing.T) {
	if a := Tetrahedral.Angle(0, 1); math.Abs(a-tetAngle) > 1e-10 {
		Te.Errorf("tetrahedral angle is %.6f, want %.6f", a, tetAngle)
	}
	if a := Linear.Angle(0, 1); math.Abs(a-math.Pi) > 1e-10 {
		Te.Errorf("linear angle is %.6f, want pi", a)
	}
	if a := SquarePlanar.Angle(0, 2); math.Abs(a-math.Pi) > 1e-6 {
		Te.Errorf("trans square-planar angle is %.6f, want pi", a)
	}
}
