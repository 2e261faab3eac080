/*
NAME
  rawio.go

DESCRIPTION
  rawio.go reads and writes packed 16-bit raw sensor and calibration frames.

LICENSE
  This file is part of a derivative work descended from the libfprint
  Goodix 5xx (SIGFM) fingerprint driver and its offline replay tools.

  SPDX-License-Identifier: LGPL-2.1-or-later

  This program is free software: you can redistribute it and/or modify
  it under the terms of the GNU Lesser General Public License as
  published by the Free Software Foundation, either version 2.1 of the
  License, or (at your option) any later version. This program is
  distributed in the hope that it will be useful, but WITHOUT ANY
  WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE.
*/

// Package rawio reads and writes the two file formats the benchmark driver
// and preprocessor consume: packed 16-bit little-endian raw sensor frames
// (and identically-shaped calibration frames) and binary PGM ("P5")
// processed images. Malformed input is reported with
// github.com/pkg/errors.Wrap, matching the teacher's bitstream decoders,
// since both are "this byte layout doesn't parse" situations rather than
// orchestration failures.
package rawio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/buxel/fpbench/pixel"
)

// Frame is a packed 16-bit raw sensor frame, shared with pixel.Frame so the
// preprocessing pipeline never has to convert between the two.
type Frame = pixel.Frame

// Calibration is a Frame captured with no finger present, subtracted from
// subsequent raw frames before percentile stretching.
type Calibration = pixel.Frame

// ReadFrame reads a packed array of 16-bit little-endian unsigned samples
// from path, exactly width*height*2 bytes with no header, and returns it
// as a pixel.Frame. It is used for both raw sensor frames and calibration
// frames, which share the format.
func ReadFrame(path string, width, height int) (pixel.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixel.Frame{}, fmt.Errorf("rawio: could not open %s: %w", path, err)
	}
	defer f.Close()

	want := width * height * 2
	buf := make([]byte, want)
	if _, err := io.ReadFull(f, buf); err != nil {
		return pixel.Frame{}, errors.Wrapf(err, "rawio: %s: expected %d bytes for %dx%d raw frame", path, want, width, height)
	}
	// A raw frame file is exactly width*height*2 bytes with no header; a
	// trailing byte indicates the caller's dimensions don't match the
	// file actually on disk.
	var extra [1]byte
	if n, _ := f.Read(extra[:]); n != 0 {
		return pixel.Frame{}, errors.Errorf("rawio: %s: file larger than %dx%d raw frame", path, width, height)
	}

	frame := pixel.NewFrame(width, height)
	for i := range frame.Pix {
		frame.Pix[i] = binary.LittleEndian.Uint16(buf[i*2 : i*2+2])
	}
	return frame, nil
}

// ReadCalibration reads a calibration frame, identical in format to a raw
// sensor frame.
func ReadCalibration(path string, width, height int) (pixel.Frame, error) {
	return ReadFrame(path, width, height)
}

// WriteFrame writes frame to path as a packed array of 16-bit
// little-endian samples. It exists mainly for test fixtures and tools
// that synthesize raw frames.
func WriteFrame(path string, frame pixel.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rawio: could not create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var buf [2]byte
	for _, s := range frame.Pix {
		binary.LittleEndian.PutUint16(buf[:], s)
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("rawio: %s: write failed: %w", path, err)
		}
	}
	return w.Flush()
}
