/*
NAME
  helpers.go

DESCRIPTION
  helpers.go contains small CLI argument and calibration-loading helpers.

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

package main

import (
	"strings"

	"github.com/buxel/fpbench/pixel"
	"github.com/buxel/fpbench/rawio"
)

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func loadCalibration(path string, scanWidth, height int) (pixel.Frame, error) {
	if scanWidth <= 0 {
		scanWidth = pixel.DefaultScanWidth
	}
	if height <= 0 {
		height = pixel.DefaultHeight
	}
	return rawio.ReadCalibration(path, scanWidth, height)
}
