/*
 * minimize.go, part of godg.
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
	"gonum.org/v1/gonum/optimize"

	v3 "github.com/rmera/godg/v3"
)

//Slack allowed when judging whether a refined structure actually satisfies
//its constraints: Angstroms on distances, cubic Angstroms on chiral
//volumes, radians on torsions.
const (
	acceptableDistanceSlack = 0.1
	acceptableVolumeSlack   = 0.1
	acceptableDihedralSlack = 0.1
)

//RefinementStep is one recorded state of a refinement trajectory.
type RefinementStep struct {
	Coords   []float64
	Penalty  float64
	GradNorm float64
}

//stepRecorder collects the optimizer's major-iteration states.
type stepRecorder struct {
	steps *[]RefinementStep
}

func (s *stepRecorder) Init() error { return nil }

func (s *stepRecorder) Record(loc *optimize.Location, op optimize.Operation, _ *optimize.Stats) error {
	if op != optimize.MajorIteration {
		return nil
	}
	st := RefinementStep{
		Coords:  append([]float64{}, loc.X...),
		Penalty: loc.F,
	}
	if loc.Gradient != nil {
		st.GradNorm = floatsNorm(loc.Gradient)
	}
	*s.steps = append(*s.steps, st)
	return nil
}

func floatsNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

//refineStages runs the two-stage refinement on an embedded guess. The
//first stage, skipped when every handed chirality constraint already holds,
//minimizes without the fourth-dimension compression so wrong-handed centers
//can invert, stopping as soon as all of them have. The second stage adds
//the compression term and minimizes to the gradient target. steps, when
//non-nil, accumulates the trajectory of both stages.
func refineStages(x []float64, f *refiner, cfg *Config, steps *[]RefinementStep) ([]float64, error) {
	if f.proportionCorrectSign(x) < 0.5 {
		//the mirror image is closer to the wanted enantiomer
		invertY(x, f.n)
	}
	if f.proportionCorrectSign(x) < 1 {
		f.compress = false
		res, err := minimizeStage(x, f, cfg, steps, true)
		if f.evalErr != nil {
			return nil, errDecorate(f.evalErr, "refineStages")
		}
		if err != nil && res == nil {
			return nil, newError(RefinementException, "chirality inversion stage: %v", err)
		}
		if res.Status == optimize.IterationLimit {
			return nil, newError(RefinementMaxIterationsReached,
				"no progress after %d chirality inversion steps", cfg.StepLimit)
		}
		x = res.X
	}
	f.compress = true
	res, err := minimizeStage(x, f, cfg, steps, false)
	if f.evalErr != nil {
		return nil, errDecorate(f.evalErr, "refineStages")
	}
	if err != nil && res == nil {
		return nil, newError(RefinementException, "compression stage: %v", err)
	}
	if res.Status == optimize.IterationLimit {
		return nil, newError(RefinementMaxIterationsReached,
			"gradient still above %.2g after %d compression steps", cfg.GradientTarget, cfg.StepLimit)
	}
	x = res.X
	if f.proportionCorrectSign(x) < 1 {
		return nil, newError(RefinedChiralsWrong, "refinement converged onto the wrong enantiomer of some center")
	}
	if err := f.acceptable(x); err != nil {
		return nil, errDecorate(err, "refineStages")
	}
	return x, nil
}

func minimizeStage(x []float64, f *refiner, cfg *Config, steps *[]RefinementStep, untilChiralsCorrect bool) (*optimize.Result, error) {
	problem := optimize.Problem{
		Func: f.Func,
		Grad: f.Grad,
		Status: func() (optimize.Status, error) {
			if f.evalErr != nil {
				return optimize.Failure, f.evalErr
			}
			if untilChiralsCorrect && f.proportionCorrectSign(f.lastX) >= 1 {
				return optimize.Success, nil
			}
			return optimize.NotTerminated, nil
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   cfg.StepLimit,
		GradientThreshold: cfg.GradientTarget,
		Converger:         optimize.NeverTerminate{},
	}
	if steps != nil {
		settings.Recorder = &stepRecorder{steps: steps}
	}
	return optimize.Minimize(problem, x, settings, &optimize.BFGS{})
}

//acceptable checks a refined structure against every constraint with a
//little slack, catching convergence onto local minima that merely balance
//violations against each other.
func (f *refiner) acceptable(x []float64) error {
	for i := 0; i < f.n; i++ {
		for j := i + 1; j < f.n; j++ {
			dsq := 0.0
			for d := 0; d < embedDims; d++ {
				diff := x[i*embedDims+d] - x[j*embedDims+d]
				dsq += diff * diff
			}
			dist := math.Sqrt(dsq)
			lo := math.Sqrt(f.lowerSq[i*f.n+j])
			up := math.Sqrt(f.upperSq[i*f.n+j])
			if dist < lo-acceptableDistanceSlack || dist > up+acceptableDistanceSlack {
				return newError(RefinedStructureInacceptable,
					"distance %d-%d is %.3f, outside [%.3f, %.3f]", i, j, dist, lo, up)
			}
		}
	}
	for ci := range f.chirals {
		c := &f.chirals[ci]
		ad := sub3(f.pos3(x, c.Sites[0]), f.pos3(x, c.Sites[3]))
		bd := sub3(f.pos3(x, c.Sites[1]), f.pos3(x, c.Sites[3]))
		cd := sub3(f.pos3(x, c.Sites[2]), f.pos3(x, c.Sites[3]))
		vol := dot3(ad, cross3(bd, cd))
		if vol < c.Lower-acceptableVolumeSlack || vol > c.Upper+acceptableVolumeSlack {
			return newError(RefinedStructureInacceptable,
				"chiral volume over atoms %v is %.3f, outside [%.3f, %.3f]",
				c.Sites, vol, c.Lower, c.Upper)
		}
	}
	for di := range f.dihedrals {
		dc := &f.dihedrals[di]
		b1 := sub3(f.pos3(x, dc.J), f.pos3(x, dc.I))
		b2 := sub3(f.pos3(x, dc.K), f.pos3(x, dc.J))
		b3 := sub3(f.pos3(x, dc.L), f.pos3(x, dc.K))
		n1 := cross3(b1, b2)
		n2 := cross3(b2, b3)
		b2norm := math.Sqrt(dot3(b2, b2))
		if dot3(n1, n1) < 1e-10 || dot3(n2, n2) < 1e-10 || b2norm < 1e-10 {
			continue
		}
		phi := math.Abs(math.Atan2(dot3(cross3(n1, n2), b2)/b2norm, dot3(n1, n2)))
		if phi < dc.Lower-acceptableDihedralSlack || phi > dc.Upper+acceptableDihedralSlack {
			return newError(RefinedStructureInacceptable,
				"torsion %d-%d-%d-%d is %.3f rad, outside [%.3f, %.3f]",
				dc.I, dc.J, dc.K, dc.L, phi, dc.Lower, dc.Upper)
		}
	}
	return nil
}

//toCoords drops the refinement's fourth component and packs the spatial
//ones into a coordinate matrix.
func toCoords(x []float64, n int) *v3.Matrix {
	out := v3.Zeros(n)
	for i := 0; i < n; i++ {
		for d := 0; d < 3; d++ {
			out.Set(i, d, x[i*embedDims+d])
		}
	}
	return out
}

//applyFixedPositions rigid-body fits the structure onto the requested
//fixed atom positions, weighting only those atoms. With a single fixed
//atom the fit degenerates into a pure translation.
func applyFixedPositions(coords *v3.Matrix, fixed []FixedPosition) *v3.Matrix {
	if len(fixed) == 0 {
		return coords
	}
	n, _ := coords.Dims()
	ref := v3.Zeros(n)
	weights := make([]float64, n)
	for _, fp := range fixed {
		ref.Set(fp.Atom, 0, fp.X)
		ref.Set(fp.Atom, 1, fp.Y)
		ref.Set(fp.Atom, 2, fp.Z)
		weights[fp.Atom] = 1
	}
	return FitOnto(coords, ref, weights)
}

//vectorize flattens an n x embedDims coordinate matrix into the row-major
//layout the refiner works on.
func vectorize(coords *mat.Dense) []float64 {
	n, c := coords.Dims()
	x := make([]float64, n*c)
	for i := 0; i < n; i++ {
		for d := 0; d < c; d++ {
			x[i*c+d] = coords.At(i, d)
		}
	}
	return x
}
