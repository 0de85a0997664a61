/*
 * trig.go, part of godg.
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

//The trigonometric identities that convert internal coordinates (bond
//lengths, angles, dihedrals) into pairwise distances.

//LawOfCosines returns the distance opposite to the angle in a triangle with
//sides a and b meeting at that angle.
func LawOfCosines(a, b, angle float64) float64 {
	return math.Sqrt(a*a + b*b - 2*a*b*math.Cos(angle))
}

//DihedralLength returns the 1-4 distance in a chain of three bonds with
//lengths a, b, c, where alpha is the 1-2-3 angle, beta the 2-3-4 angle and
//dihedral the torsion about the central bond (0 is cis, pi is trans).
func DihedralLength(a, b, c, alpha, beta, dihedral float64) float64 {
	return math.Sqrt(
		a*a + b*b + c*c -
			2*a*b*math.Cos(alpha) -
			2*b*c*math.Cos(beta) +
			2*a*c*(math.Cos(alpha)*math.Cos(beta)-math.Sin(alpha)*math.Sin(beta)*math.Cos(dihedral)),
	)
}

//SpiroCrossAngle returns the angle between a substituent position in one
//ring and a substituent position in the other ring of a tetrahedral spiro
//atom, given the two rings' internal angles at that atom. Tighter in-ring
//angles open the cross angle: two right in-ring angles already give
//acos(-1/2), well past tetrahedral.
func SpiroCrossAngle(alpha, beta float64) float64 {
	return math.Acos(-math.Cos(alpha/2) * math.Cos(beta/2))
}
