/*
NAME
  preview_nocv_debug.go

DESCRIPTION
  preview_nocv_debug.go is the no-op preview build used for a debug build without OpenCV.

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

//go:build debug && !withcv

package pixel

// preview is a no-op when debug is requested but OpenCV isn't available at
// build time (CI, headless build hosts).
type preview struct{}

func newPreview(name string) preview { return preview{} }

func (p *preview) close() error { return nil }

func (p *preview) show(raw, processed Image) {}
