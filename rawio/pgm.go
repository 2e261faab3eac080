/*
NAME
  pgm.go

DESCRIPTION
  pgm.go reads and writes binary PGM (P5) images.

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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"github.com/buxel/fpbench/pixel"
)

// ReadPGM reads a binary PGM ("P5") image from path: an ASCII header of
// magic, width, height and maxval tokens followed by one raw byte per
// pixel. Whitespace between header tokens may be arbitrary, and a single
// line comment beginning with '#' may appear wherever whitespace is
// allowed.
func ReadPGM(path string) (pixel.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return pixel.Image{}, fmt.Errorf("rawio: could not open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)

	magic, err := pgmToken(r)
	if err != nil {
		return pixel.Image{}, errors.Wrapf(err, "rawio: %s: reading magic", path)
	}
	if magic != "P5" {
		return pixel.Image{}, errors.Errorf("rawio: %s: unsupported PGM magic %q, want P5", path, magic)
	}

	width, err := pgmInt(r, path)
	if err != nil {
		return pixel.Image{}, err
	}
	height, err := pgmInt(r, path)
	if err != nil {
		return pixel.Image{}, err
	}
	maxval, err := pgmInt(r, path)
	if err != nil {
		return pixel.Image{}, err
	}
	if maxval != 255 {
		return pixel.Image{}, errors.Errorf("rawio: %s: unsupported PGM maxval %d, want 255 (8-bit only)", path, maxval)
	}

	// Exactly one whitespace byte separates the header from the pixel
	// data; pgmToken has already consumed it as the terminating
	// whitespace of the maxval token.
	img := pixel.NewImage(width, height)
	if _, err := io.ReadFull(r, img.Pix); err != nil {
		return pixel.Image{}, errors.Wrapf(err, "rawio: %s: expected %d pixel bytes for %dx%d image", path, width*height, width, height)
	}
	return img, nil
}

// WritePGM writes img to path as a binary PGM with the canonical
// three-line header "P5\n<w> <h>\n255\n" and no comments.
func WritePGM(path string, img pixel.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rawio: could not create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("rawio: %s: write header failed: %w", path, err)
	}
	if _, err := w.Write(img.Pix); err != nil {
		return fmt.Errorf("rawio: %s: write pixels failed: %w", path, err)
	}
	return w.Flush()
}

// pgmToken reads the next whitespace-delimited token from r, skipping
// leading whitespace and any '#'-prefixed comment lines encountered while
// skipping.
func pgmToken(r *bufio.Reader) (string, error) {
	if err := pgmSkipWhitespaceAndComments(r); err != nil {
		return "", err
	}
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				break
			}
			return "", err
		}
		if isPGMSpace(b) {
			break
		}
		tok = append(tok, b)
	}
	return string(tok), nil
}

func pgmInt(r *bufio.Reader, path string) (int, error) {
	tok, err := pgmToken(r)
	if err != nil {
		return 0, errors.Wrapf(err, "rawio: %s: reading header integer", path)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(err, "rawio: %s: header token %q is not an integer", path, tok)
	}
	return n, nil
}

func pgmSkipWhitespaceAndComments(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		switch {
		case b == '#':
			if err := pgmSkipLine(r); err != nil {
				return err
			}
		case isPGMSpace(b):
			continue
		default:
			return r.UnreadByte()
		}
	}
}

func pgmSkipLine(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b == '\n' {
			return nil
		}
	}
}

func isPGMSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
