/*
NAME
  rawio_test.go

DESCRIPTION
  rawio_test.go tests the raw frame and PGM codecs.

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

package rawio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/buxel/fpbench/pixel"
)

func TestWriteReadFrameRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.bin")

	frame := pixel.NewFrame(4, 3)
	for i := range frame.Pix {
		frame.Pix[i] = uint16(i * 1000)
	}

	if err := WriteFrame(path, frame); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	got, err := ReadFrame(path, 4, 3)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if diff := cmp.Diff(frame, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadFrameRejectsWrongSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.bin")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFrame(path, 4, 3); err == nil {
		t.Fatal("expected an error reading a frame file of the wrong size")
	}
}

func TestWriteReadPGMRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.pgm")

	img := pixel.NewImage(5, 2)
	for i := range img.Pix {
		img.Pix[i] = byte(i * 17)
	}

	if err := WritePGM(path, img); err != nil {
		t.Fatalf("WritePGM: %v", err)
	}
	got, err := ReadPGM(path)
	if err != nil {
		t.Fatalf("ReadPGM: %v", err)
	}
	if diff := cmp.Diff(img, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPGMToleratesWhitespaceAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.pgm")
	raw := "P5\n# a comment\n3   2\n# another comment\n255\n" + string([]byte{1, 2, 3, 4, 5, 6})
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	img, err := ReadPGM(path)
	if err != nil {
		t.Fatalf("ReadPGM: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("dimensions = %dx%d, want 3x2", img.Width, img.Height)
	}
	want := []byte{1, 2, 3, 4, 5, 6}
	if diff := cmp.Diff(want, img.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPGMRejectsWrongMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.pgm")
	if err := os.WriteFile(path, []byte("P6\n1 1\n255\n\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPGM(path); err == nil {
		t.Fatal("expected an error for unsupported PGM magic")
	}
}
