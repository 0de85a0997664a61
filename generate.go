/*
 * generate.go, part of godg.
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
	"log"
	"math/rand"
	"runtime"
	"sync"

	v3 "github.com/rmera/godg/v3"
)

//FixedPosition pins an atom to a point in space: every returned structure
//is rigid-body fitted so its pinned atoms match.
type FixedPosition struct {
	Atom    int
	X, Y, Z float64
}

//Config collects the tunable parameters of conformer generation. The zero
//value is not usable; start from DefaultConfig.
type Config struct {
	//Metrization thoroughness. FourAtom is nearly always enough.
	Partiality Partiality
	//Upper limit on optimizer iterations per refinement stage.
	StepLimit int
	//Gradient norm below which the compression stage is converged.
	GradientTarget float64
	//Failure tolerance used by FailureRatioExceeded to judge a finished
	//batch. The engine itself never retries a failed attempt; whether to
	//request more structures, loosen the model or give up is the caller's
	//decision.
	FailureRatio float64
	//Scales all modeled variances. Values above one loosen an
	//over-constrained model.
	Loosening float64
	//Seed of the master random source. Results are reproducible for a
	//given seed regardless of Cpus.
	Seed int64
	//Number of worker goroutines. Zero or less means runtime.NumCPU().
	Cpus int
	//Atoms to pin, if any.
	FixedPositions []FixedPosition
	//Log per-attempt failures as they happen.
	Verbose bool
}

//DefaultConfig returns the recommended settings.
func DefaultConfig() *Config {
	return &Config{
		Partiality:     FourAtom,
		StepLimit:      10000,
		GradientTarget: 1e-5,
		FailureRatio:   2,
		Loosening:      1,
		Seed:           1,
	}
}

//Result is the outcome of one conformer attempt: coordinates on success,
//a classified error otherwise.
type Result struct {
	Coords *v3.Matrix
	Err    error
	steps  []RefinementStep
}

//Steps returns the refinement trajectory of the attempt, recorded only by
//EnsembleTrajectories.
func (r *Result) Steps() []RefinementStep {
	return r.steps
}

//Ensemble generates nstructs three-dimensional structures of the molecule,
//each from an independently metrized and refined guess. Exactly one
//attempt runs per requested structure, and result i is the outcome of
//attempt i: coordinates on success, a classified error otherwise, the
//count preserved even under total failure. Unassigned stereocenters are
//assigned at random per attempt, so the ensemble samples stereoisomers as
//well as conformers. A molecule with any zero-permutation stereocenter is
//unrealizable and fails wholesale with GraphInfeasible, before any
//numeric work.
func Ensemble(mol Moleculer, nstructs int, cfg *Config) []Result {
	return ensemble(mol, nstructs, cfg, false)
}

//EnsembleTrajectories is Ensemble, recording each attempt's refinement
//trajectory into its Result. Meant for debugging refinement behavior; the
//trajectories are large.
func EnsembleTrajectories(mol Moleculer, nstructs int, cfg *Config) []Result {
	return ensemble(mol, nstructs, cfg, true)
}

//Conformation generates a single structure.
func Conformation(mol Moleculer, cfg *Config) (*v3.Matrix, error) {
	res := Ensemble(mol, 1, cfg)
	return res[0].Coords, res[0].Err
}

func ensemble(mol Moleculer, nstructs int, cfg *Config, record bool) []Result {
	results := make([]Result, nstructs)
	for _, s := range mol.Stereos() {
		if s.NumPerm == 0 {
			err := newError(GraphInfeasible, "a stereocenter admits no valid permutation")
			for i := range results {
				results[i].Err = err
			}
			return results
		}
	}
	master := rand.New(rand.NewSource(cfg.Seed))
	//Seeds are drawn up front, one per attempt, so the outcome depends only
	//on the master seed and never on worker scheduling.
	seeds := make([]int64, nstructs)
	for i := range seeds {
		seeds[i] = master.Int63()
	}
	//The bounds model depends on randomness only through stereocenters with
	//more than one permutation. Without any, it is identical across
	//attempts, so it is built once here and shared read-only.
	var shared *Model
	if m := NewModel(mol, cfg, rand.New(rand.NewSource(cfg.Seed))); !m.randomized {
		shared = m
	}
	cpus := cfg.Cpus
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}
	if cpus > nstructs {
		cpus = nstructs
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cpus; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = attempt(mol, cfg, seeds[i], record, shared)
			}
		}()
	}
	for i := range results {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if cfg.Verbose {
		for i := range results {
			if results[i].Err != nil {
				log.Printf("dg: conformer attempt %d failed: %v", i, results[i].Err)
			}
		}
	}
	return results
}

//attempt runs the full pipeline once: spatial model, bounds matrix,
//smoothing, metrization, embedding, staged refinement, optional fit onto
//the pinned atoms. shared, when non-nil, is a deterministic model reused
//across attempts; otherwise each attempt builds its own, re-rolling the
//unassigned stereocenters. A panic anywhere in the pipeline is a bug, but
//one attempt's bug should not cost the whole ensemble, so it degrades into
//an UnknownWorkerError result.
func attempt(mol Moleculer, cfg *Config, seed int64, record bool, shared *Model) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{Err: newError(UnknownWorkerError, "conformer attempt panicked: %v", rec)}
		}
	}()
	r := rand.New(rand.NewSource(seed))
	model := shared
	if model == nil {
		model = NewModel(mol, cfg, r)
	}
	bounds := NewDistanceBounds(mol, model.BoundsList())
	if err := bounds.Smooth(); err != nil {
		return Result{Err: errDecorate(err, "attempt")}
	}
	distances, err := bounds.DistanceMatrix(r, cfg.Partiality)
	if err != nil {
		return Result{Err: errDecorate(err, "attempt")}
	}
	coords4, err := Embed(MetricMatrix(distances))
	if err != nil {
		return Result{Err: errDecorate(err, "attempt")}
	}
	//refinement works against the pre-metrization chemical bounds, which
	//the metrized matrix destroyed, so they are rebuilt
	refBounds := NewDistanceBounds(mol, model.BoundsList())
	if err := refBounds.Smooth(); err != nil {
		return Result{Err: errDecorate(err, "attempt")}
	}
	f := newRefiner(refBounds, model.ChiralityConstraints(), model.DihedralConstraints())
	var steps []RefinementStep
	stepsPtr := &steps
	if !record {
		stepsPtr = nil
	}
	x, err := refineStages(vectorize(coords4), f, cfg, stepsPtr)
	if err != nil {
		return Result{Err: errDecorate(err, "attempt"), steps: steps}
	}
	coords := applyFixedPositions(toCoords(x, f.n), cfg.FixedPositions)
	return Result{Coords: coords, steps: steps}
}

//FailureRatioExceeded reports whether the fraction of failed results in a
//finished batch exceeds the configured failure ratio. Callers running
//their own retry loop use it to decide when a molecule is not worth
//further attempts, typically before loosening the model or giving up.
func FailureRatioExceeded(results []Result, cfg *Config) bool {
	failures := 0
	for i := range results {
		if results[i].Err != nil {
			failures++
		}
	}
	return float64(failures) > cfg.FailureRatio*float64(len(results))
}
