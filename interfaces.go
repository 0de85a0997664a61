/*
 * interfaces.go, part of godg.
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

//The interfaces here are the boundary of the Distance Geometry engine.
//Graph representation, stereocenter ranking and cycle perception are
//collaborator responsibilities; the engine only talks to them through these
//contracts. The concrete Molecule type in this package satisfies Moleculer
//and is enough for standalone use, but a richer cheminformatics layer can be
//plugged in instead.

//BondType is the bond-order category of an edge in the molecular graph.
type BondType int

const (
	Single BondType = iota
	Double
	Triple
	Aromatic
	//Eta marks dative/haptic bonds. They are not modeled spatially; whatever
	//stereocenter owns them is responsible for their geometry.
	Eta
)

//Bond is one edge of the molecular graph. At1 and At2 are atom indices,
//in no particular order.
type Bond struct {
	At1  int
	At2  int
	Type BondType
}

//Cross returns the atom of the bond that is not origin. It panics if origin
//is not part of the bond, as that has to be a programming error.
func (B *Bond) Cross(origin int) int {
	if B.At1 == origin {
		return B.At2
	}
	if B.At2 == origin {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!")
}

//Moleculer is the graph collaborator contract: everything the engine needs
//to know about a molecule's connectivity and composition.
type Moleculer interface {
	//Len returns the number of atoms.
	Len() int
	//Symbol returns the element symbol of the ith atom.
	Symbol(i int) string
	//Bonds returns every bond in the graph.
	Bonds() []*Bond
	//BondBetween returns the bond connecting i and j, or nil.
	BondBetween(i, j int) *Bond
	//Neighbors returns the atoms bonded to i, in ascending index order.
	Neighbors(i int) []int
	//Stereos returns the declared stereocenters of the molecule. The slice
	//is owned by the molecule; callers must not mutate it.
	Stereos() []*Stereo
	//Cycles returns the cycle perception oracle for the molecule.
	Cycles() *Cycles
	//Copy returns a deep copy, including stereocenters, so one attempt's
	//random assignments never leak into another's.
	Copy() Moleculer
}

//Errorer is the interface all errors of the goChem-family libraries
//implement. The Decorate method adds information to the error as it goes up
//the call stack without changing its type.
type Errorer interface {
	Error() string
	Decorate(string) []string
}
