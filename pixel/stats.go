/*
NAME
  stats.go

DESCRIPTION
  stats.go computes the pixel statistics used by the stddev gate.

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

package pixel

import "gonum.org/v1/gonum/stat"

// Stats holds the integer pixel statistics used by the stddev gate.
type Stats struct {
	Mean, StdDev int
}

// Measure computes the integer sample mean and standard deviation of img,
// via gonum/stat on the float64-promoted pixel values, then truncates back
// to int as the gate compares against an integer threshold.
func Measure(img Image) Stats {
	if len(img.Pix) == 0 {
		return Stats{}
	}
	vals := make([]float64, len(img.Pix))
	for i, p := range img.Pix {
		vals[i] = float64(p)
	}
	mean, std := stat.MeanStdDev(vals, nil)
	return Stats{Mean: int(mean), StdDev: int(std)}
}
