/*
NAME
  preview_withcv.go

DESCRIPTION
  preview_withcv.go is the OpenCV-backed debug preview window.

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

//go:build debug && withcv

package pixel

import (
	"image"

	"gocv.io/x/gocv"
)

// preview displays the raw (squashed-to-8-bit) and fully processed frames
// side by side, for interactive debugging of the preprocessing pipeline.
// It is only compiled in with both the debug and withcv build tags, mirroring
// the motion filters' debug windows: never part of a default or CI build,
// since it requires a native OpenCV install and a display.
type preview struct {
	windows []*gocv.Window
}

func newPreview(name string) preview {
	return preview{
		windows: []*gocv.Window{
			gocv.NewWindow(name + ": raw"),
			gocv.NewWindow(name + ": processed"),
		},
	}
}

func (p *preview) close() error {
	for _, w := range p.windows {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (p *preview) show(raw, processed Image) {
	rawMat, _ := gocv.ImageToMatRGB(toGray(raw))
	procMat, _ := gocv.ImageToMatRGB(toGray(processed))
	defer rawMat.Close()
	defer procMat.Close()
	p.windows[0].IMShow(rawMat)
	p.windows[1].IMShow(procMat)
	gocv.WaitKey(1)
}

func toGray(img Image) image.Image {
	g := image.NewGray(image.Rect(0, 0, img.Width, img.Height))
	copy(g.Pix, img.Pix)
	return g
}
