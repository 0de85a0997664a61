/*
 * errors.go, part of godg.
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

import "fmt"

//ErrorKind classifies the ways a conformer generation attempt can fail.
//Attempts are independent Bernoulli trials, so every kind here is recoverable:
//the caller simply gets fewer successful structures than requested.
type ErrorKind int

const (
	//UnknownWorkerError covers any panic escaping a generation worker. It
	//exists so a misbehaving attempt can never take its siblings down.
	UnknownWorkerError ErrorKind = iota
	//GraphInfeasible: some stereocenter admits zero permutations, so no
	//spatial arrangement can satisfy the graph. No numeric work is done.
	GraphInfeasible
	//BoundsInconsistent: distance bounds construction produced an interval
	//with lower > upper, i.e. the modeled geometry contradicts itself
	//(impossible ring strain and the like).
	BoundsInconsistent
	//RefinementException: a non-finite value arose during gradient
	//evaluation, typically from a dihedral near a degenerate (linear)
	//arrangement.
	RefinementException
	//RefinementMaxIterationsReached: the minimizer hit the iteration cap.
	RefinementMaxIterationsReached
	//RefinedChiralsWrong: minimization finished but some chirality
	//constraints still have the wrong sign.
	RefinedChiralsWrong
	//RefinedStructureInacceptable: chiralities are fine but the structure
	//fails the final geometric acceptability check.
	RefinedStructureInacceptable
)

func (k ErrorKind) String() string {
	switch k {
	case GraphInfeasible:
		return "graph infeasible"
	case BoundsInconsistent:
		return "distance bounds inconsistent"
	case RefinementException:
		return "refinement exception"
	case RefinementMaxIterationsReached:
		return "refinement max iterations reached"
	case RefinedChiralsWrong:
		return "refined chiralities wrong"
	case RefinedStructureInacceptable:
		return "refined structure inacceptable"
	}
	return "unknown worker error"
}

//Error is the concrete error type of the library. It carries the failure
//kind of the attempt plus the informal call-trace decoration used all over
//the goChem family.
type Error struct {
	kind    ErrorKind
	message string
	deco    []string
}

func newError(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, a...)}
}

func (err *Error) Error() string {
	return fmt.Sprintf("godg: %s: %s", err.kind.String(), err.message)
}

//Kind returns the failure classification of the error.
func (err *Error) Kind() ErrorKind {
	return err.kind
}

//Decorate adds new information to the error and returns the current
//decoration slice. An empty string only queries.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind classifies any error returned by this library. Errors from elsewhere
//(including nil) report UnknownWorkerError, which is also what a worker panic
//gets tagged with.
func Kind(err error) ErrorKind {
	if dgerr, ok := err.(*Error); ok {
		return dgerr.kind
	}
	return UnknownWorkerError
}

//errDecorate asserts err to the local Error type and adds deco to its trace.
//Foreign error types pass through untouched.
func errDecorate(err error, caller string) error {
	err2, ok := err.(*Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
