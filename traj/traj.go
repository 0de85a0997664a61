/*
 * traj.go, part of godg.
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

//Package traj reads and writes compressed refinement trajectories: plain
//text frames of coordinates, one frame per recorded minimization step, each
//closed by a separator line carrying the penalty value at that step. Files
//ending in "r" use raw flate; anything else uses zstd.
package traj

import (
	"bufio"
	"compress/flate"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/godg/v3"
)

//Writer writes a refinement trajectory to a compressed file.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	natoms    int
	filename  string
	writeable bool
}

//NewWriter creates a trajectory file for natoms particles.
func NewWriter(name string, natoms int) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	W := &Writer{f: f, natoms: natoms, filename: name, writeable: true}
	if strings.HasSuffix(strings.ToLower(name), "r") {
		W.h, err = flate.NewWriter(f, flate.DefaultCompression)
	} else {
		W.h, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	if err != nil {
		f.Close()
		return nil, &Error{"can't set up compression: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	fmt.Fprintf(W.h, "** %d\n", natoms)
	return W, nil
}

//Len returns the number of particles per frame.
func (W *Writer) Len() int {
	return W.natoms
}

//WNext writes one frame with its penalty value.
func (W *Writer) WNext(coord *v3.Matrix, penalty float64) error {
	if !W.writeable {
		return &Error{TrajUnIniWrite, W.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return &Error{NilCoordinates, W.filename, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != W.natoms {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, W.natoms), W.filename, []string{"WNext"}, true}
	}
	for i := 0; i < W.natoms; i++ {
		fmt.Fprintf(W.h, "%.4f %.4f %.4f\n", coord.At(i, 0), coord.At(i, 1), coord.At(i, 2))
	}
	fmt.Fprintf(W.h, "* %.6g\n", penalty)
	return nil
}

//WNextFlat writes one frame given row-major coordinates in dims dimensions;
//components beyond the third are dropped.
func (W *Writer) WNextFlat(x []float64, dims int, penalty float64) error {
	if len(x) != W.natoms*dims {
		return &Error{fmt.Sprintf("%d values given, but %d atoms in %d dimensions expected", len(x), W.natoms, dims), W.filename, []string{"WNextFlat"}, true}
	}
	coord := v3.Zeros(W.natoms)
	for i := 0; i < W.natoms; i++ {
		for d := 0; d < 3; d++ {
			coord.Set(i, d, x[i*dims+d])
		}
	}
	return W.WNext(coord, penalty)
}

//Close flushes and closes the trajectory. The Writer is unusable afterward.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Reader reads a trajectory written by Writer.
type Reader struct {
	f        *os.File
	z        io.ReadCloser
	h        *bufio.Reader
	natoms   int
	filename string
	readable bool
}

//zstd.Decoder does not implement io.ReadCloser as its Close returns
//nothing, hence this wrapper.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (s zstdql) Close() error {
	s.closeql()
	return nil
}

//New opens a trajectory file for reading.
func New(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	R := &Reader{f: f, filename: name}
	if strings.HasSuffix(strings.ToLower(name), "r") {
		R.z = flate.NewReader(f)
	} else {
		d, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &Error{"can't set up decompression: " + err.Error(), name, []string{"New"}, true}
		}
		R.z = zstdql{d.Close, d}
	}
	R.h = bufio.NewReader(R.z)
	line, err := R.h.ReadString('\n')
	if err != nil {
		R.Close()
		return nil, &Error{"can't read header: " + err.Error(), name, []string{"New"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) != 2 || fields[0] != "**" {
		R.Close()
		return nil, &Error{"malformed header: " + strings.TrimSpace(line), name, []string{"New"}, true}
	}
	R.natoms, err = strconv.Atoi(fields[1])
	if err != nil {
		R.Close()
		return nil, &Error{"malformed atom count: " + err.Error(), name, []string{"New"}, true}
	}
	R.readable = true
	return R, nil
}

//Len returns the number of particles per frame.
func (R *Reader) Len() int {
	return R.natoms
}

//Next reads the next frame into coord, which must hold Len() vectors, and
//returns the penalty recorded with the frame. A nil coord skips the frame.
//At the end of the trajectory the error is io.EOF.
func (R *Reader) Next(coord *v3.Matrix) (float64, error) {
	if !R.readable {
		return 0, &Error{TrajUnIniRead, R.filename, []string{"Next"}, true}
	}
	for i := 0; i < R.natoms; i++ {
		line, err := R.h.ReadString('\n')
		if err == io.EOF && i == 0 && strings.TrimSpace(line) == "" {
			return 0, io.EOF
		}
		if err != nil {
			return 0, &Error{"truncated frame: " + err.Error(), R.filename, []string{"Next"}, true}
		}
		if coord == nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return 0, &Error{"malformed coordinate line: " + strings.TrimSpace(line), R.filename, []string{"Next"}, true}
		}
		for d := 0; d < 3; d++ {
			val, err := strconv.ParseFloat(fields[d], 64)
			if err != nil {
				return 0, &Error{"malformed coordinate: " + err.Error(), R.filename, []string{"Next"}, true}
			}
			coord.Set(i, d, val)
		}
	}
	line, err := R.h.ReadString('\n')
	if err != nil && err != io.EOF {
		return 0, &Error{"missing frame separator: " + err.Error(), R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) < 1 || fields[0] != "*" {
		return 0, &Error{"malformed frame separator: " + strings.TrimSpace(line), R.filename, []string{"Next"}, true}
	}
	penalty := 0.0
	if len(fields) > 1 {
		penalty, err = strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0, &Error{"malformed penalty: " + err.Error(), R.filename, []string{"Next"}, true}
		}
	}
	return penalty, nil
}

//Close closes the trajectory. The Reader is unusable afterward.
func (R *Reader) Close() {
	if R == nil {
		return
	}
	if R.z != nil {
		R.z.Close()
	}
	R.f.Close()
	R.readable = false
}

//Error is the package's error type. It reports the file it refers to and
//accumulates a call trace as it climbs the stack.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("traj file %s error: %s", err.filename, err.message)
}

//Decorate adds one string to the error's trace and returns the trace. The
//receiver is a pointer so the trace persists on the stored error.
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//FileName returns the file to which the error refers.
func (err *Error) FileName() string { return err.filename }

//Critical reports whether the error rules out further use of the file.
func (err *Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "traj object uninitialized to read"
	TrajUnIniWrite = "traj object uninitialized to write"
	NilCoordinates = "nil coordinates given"
)
