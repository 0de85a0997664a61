/*
 * atomicdata.go, part of godg.
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

//A map for assigning covalent radii to elements.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
//Note that just common "bio-elements" are present.
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"C":  0.76, //the sp3 radius
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.2,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.5,  //hs
	"Fe": 1.52, //hs
	"Mn": 1.61, //hs
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.2,
	"I":  1.39,
}

//A map for assigning van der Waals radii to elements.
//Values from 10.1021/j100785a001 and 10.1021/jp8111556,
//metal radii from 10.1023/A:1011625728803.
var symbolVdwrad = map[string]float64{
	"H":  1.10,
	"C":  1.70,
	"O":  1.52,
	"N":  1.55,
	"P":  1.80,
	"S":  1.80,
	"Se": 1.90,
	"K":  2.75,
	"Ca": 2.31,
	"Mg": 1.73,
	"Cl": 1.75,
	"Na": 2.27,
	"Cu": 2.00,
	"Zn": 2.02,
	"Co": 1.95,
	"Fe": 1.96,
	"Mn": 1.96,
	"Cr": 1.97,
	"Si": 2.10,
	"Be": 1.53,
	"F":  1.47,
	"Br": 1.83,
	"I":  1.98,
}

//Relative bond-length contraction per bond order, referenced to the sum of
//covalent radii. The single/double/triple factors reproduce the C-C series
//(1.54, 1.33, 1.20 A) reasonably well; aromatic sits between single and
//double as usual.
var bondOrderFactor = map[BondType]float64{
	Single:   1.0,
	Double:   0.87,
	Triple:   0.78,
	Aromatic: 0.92,
}

//VdwRad returns the van der Waals radius for an element symbol. Unknown
//elements get a generous default so they at least repel.
func VdwRad(symbol string) float64 {
	if r, ok := symbolVdwrad[symbol]; ok {
		return r
	}
	return 2.0
}

//BondDistance returns the idealized length, in A, of a bond between elements
//a and b with the given bond type. It panics on Eta bonds, which have no
//modelled length, and on unknown elements: both are contract violations.
func BondDistance(a, b string, t BondType) float64 {
	ra, oka := symbolCovrad[a]
	rb, okb := symbolCovrad[b]
	if !oka || !okb {
		panic("BondDistance: unknown element symbol " + a + "/" + b)
	}
	f, ok := bondOrderFactor[t]
	if !ok {
		panic("BondDistance: bond type has no idealized length")
	}
	return f * (ra + rb)
}
