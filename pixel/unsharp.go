/*
NAME
  unsharp.go

DESCRIPTION
  unsharp.go implements the unsharp mask sharpening stage.

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

// DefaultBoost is the unsharp mask's default sharpening factor.
const DefaultBoost = 2

// Unsharp applies an unsharp mask to img: a 3x3 weighted blur (center
// weight 4, edge weight 2, corner weight 1, taps outside the image omitted
// and the divisor reduced accordingly) is subtracted back out at the given
// boost. boost == 1 is the identity; boost <= 0 is treated as 1.
func Unsharp(img Image, boost int) Image {
	if boost <= 1 {
		out := NewImage(img.Width, img.Height)
		copy(out.Pix, img.Pix)
		return out
	}

	w, h := img.Width, img.Height
	blurred := blur3x3(img)

	out := NewImage(w, h)
	for i, s := range img.Pix {
		v := boost*int(s) - (boost-1)*int(blurred.Pix[i])
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		out.Pix[i] = byte(v)
	}
	return out
}

// kernelWeight returns the 3x3 unsharp kernel's weight at offset (dx, dy),
// dx, dy in [-1, 1]: center 4, edge 2, corner 1.
func kernelWeight(dx, dy int) int {
	wx := 2
	if dx == 0 {
		wx = 4
	}
	wy := 2
	if dy == 0 {
		wy = 4
	}
	return (wx * wy) / 4
}

func blur3x3(img Image) Image {
	w, h := img.Width, img.Height
	out := NewImage(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sum, weight := 0, 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					wgt := kernelWeight(dx, dy)
					sum += wgt * int(img.Pix[ny*w+nx])
					weight += wgt
				}
			}
			if weight == 0 {
				weight = 1
			}
			out.Pix[y*w+x] = byte(sum / weight)
		}
	}
	return out
}
