/*
 * traj_test.go, part of godg.
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

package traj

import (
	"io"
	"math"
	"path/filepath"
	"testing"

	v3 "github.com/rmera/godg/v3"
)

func writeRead(Te *testing.T, name string) {
	const natoms = 3
	frames := [][]float64{
		{0, 0, 0, 1.5, 0, 0, 2.2, 1.3, 0.2},
		{0.1, 0, 0, 1.4, 0.1, 0, 2.3, 1.2, 0.1},
	}
	penalties := []float64{12.5, 0.3}
	W, err := NewWriter(name, natoms)
	if err != nil {
		Te.Fatal(err)
	}
	for fi, data := range frames {
		coord, err := v3.NewMatrix(data)
		if err != nil {
			Te.Fatal(err)
		}
		if err := W.WNext(coord, penalties[fi]); err != nil {
			Te.Fatal(err)
		}
	}
	W.Close()
	R, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	if R.Len() != natoms {
		Te.Fatalf("read %d atoms per frame, want %d", R.Len(), natoms)
	}
	coord := v3.Zeros(natoms)
	for fi, data := range frames {
		pen, err := R.Next(coord)
		if err != nil {
			Te.Fatal(err)
		}
		if math.Abs(pen-penalties[fi]) > 1e-9 {
			Te.Errorf("frame %d penalty is %.4f, want %.4f", fi, pen, penalties[fi])
		}
		for i := 0; i < natoms; i++ {
			for d := 0; d < 3; d++ {
				//the format keeps four decimals
				if math.Abs(coord.At(i, d)-data[i*3+d]) > 1e-4 {
					Te.Errorf("frame %d atom %d component %d read back as %.5f, want %.5f",
						fi, i, d, coord.At(i, d), data[i*3+d])
				}
			}
		}
	}
	if _, err := R.Next(coord); err != io.EOF {
		Te.Errorf("reading past the last frame gave %v, want EOF", err)
	}
}

func TestWriteReadZstd(Te *testing.T) {
	writeRead(Te, filepath.Join(Te.TempDir(), "refine.stz"))
}

func TestWriteReadFlate(Te *testing.T) {
	writeRead(Te, filepath.Join(Te.TempDir(), "refine.str"))
}

func TestWNextFlat(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "flat.stz")
	W, err := NewWriter(name, 2)
	if err != nil {
		Te.Fatal(err)
	}
	//two atoms in four dimensions; the fourth components must be dropped
	x := []float64{0, 0, 0, 9, 1.5, 0, 0, -9}
	if err := W.WNextFlat(x, 4, 1.0); err != nil {
		Te.Fatal(err)
	}
	W.Close()
	R, err := New(name)
	if err != nil {
		Te.Fatal(err)
	}
	defer R.Close()
	coord := v3.Zeros(2)
	if _, err := R.Next(coord); err != nil {
		Te.Fatal(err)
	}
	if coord.At(0, 2) != 0 || math.Abs(coord.At(1, 0)-1.5) > 1e-4 {
		Te.Error("flat frame read back wrong")
	}
}

func TestMismatchedFrame(Te *testing.T) {
	W, err := NewWriter(filepath.Join(Te.TempDir(), "bad.stz"), 3)
	if err != nil {
		Te.Fatal(err)
	}
	defer W.Close()
	coord := v3.Zeros(2)
	if err := W.WNext(coord, 0); err == nil {
		Te.Error("a frame with the wrong atom count was accepted")
	}
	if err := W.WNext(nil, 0); err == nil {
		Te.Error("a nil frame was accepted")
	}
}

//A trace built up the call stack must persist on the stored error, not on
//throwaway copies.
func TestErrorDecoratePersists(Te *testing.T) {
	W, err := NewWriter(filepath.Join(Te.TempDir(), "deco.stz"), 3)
	if err != nil {
		Te.Fatal(err)
	}
	defer W.Close()
	werr := W.WNext(nil, 0)
	terr, ok := werr.(*Error)
	if !ok {
		Te.Fatalf("error has type %T, want *Error", werr)
	}
	terr.Decorate("caller one")
	trace := terr.Decorate("caller two")
	if len(trace) != 3 || trace[1] != "caller one" || trace[2] != "caller two" {
		Te.Errorf("trace after two decorations is %v", trace)
	}
}
