/*
 * dgplot.go, part of godg.
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

//Package dgplot plots diagnostics of conformer refinement trajectories.
package dgplot

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	dg "github.com/rmera/godg"
)

//PenaltyTrace plots the penalty value, and the gradient norm when
//recorded, of a refinement trajectory against the minimization step, both
//on a log scale, and saves the plot to plotname. The format follows the
//file extension.
func PenaltyTrace(steps []dg.RefinementStep, title, plotname string) error {
	if len(steps) == 0 {
		return fmt.Errorf("PenaltyTrace: no refinement steps to plot")
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "step"
	p.Y.Label.Text = "log10 penalty"
	p.Add(plotter.NewGrid())
	pen := make(plotter.XYs, len(steps))
	grad := make(plotter.XYs, 0, len(steps))
	for i, s := range steps {
		pen[i].X = float64(i)
		pen[i].Y = logClamped(s.Penalty)
		if s.GradNorm > 0 {
			grad = append(grad, plotter.XY{X: float64(i), Y: logClamped(s.GradNorm)})
		}
	}
	l, err := plotter.NewLine(pen)
	if err != nil {
		return err
	}
	p.Add(l)
	p.Legend.Add("penalty", l)
	if len(grad) > 0 {
		g, err := plotter.NewLine(grad)
		if err != nil {
			return err
		}
		g.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		p.Add(g)
		p.Legend.Add("gradient norm", g)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname)
}

//values can legitimately reach zero once refinement converges
func logClamped(v float64) float64 {
	if v < 1e-16 {
		v = 1e-16
	}
	return math.Log10(v)
}
