/*
NAME
  cgo.go

DESCRIPTION
  cgo.go binds the real libfprint SIGFM feature extractor via cgo.

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

//go:build sigfm_cgo

package sigfm

/*
#cgo pkg-config: sigfm
#include <stdlib.h>
#include "sigfm.h"
*/
import "C"
import "unsafe"

// cgoDescriptor wraps a native SigfmImgInfo* produced by libfprint's SIGFM
// module (FAST-9 keypoints, BRIEF-256 descriptors).
type cgoDescriptor struct {
	ptr *C.SigfmImgInfo
}

// CGOExtractor binds Extractor to the real SIGFM library. It requires
// libsigfm headers and a pkg-config file named "sigfm" at build time
// (go build -tags sigfm_cgo); without it, use StubExtractor.
type CGOExtractor struct{}

// NewCGO returns the native libfprint-backed Extractor.
func NewCGO() *CGOExtractor { return &CGOExtractor{} }

func (CGOExtractor) Extract(pixels []byte, w, h int) Descriptor {
	if len(pixels) == 0 {
		return nil
	}
	ptr := C.sigfm_extract((*C.uchar)(unsafe.Pointer(&pixels[0])), C.int(w), C.int(h))
	if ptr == nil {
		return nil
	}
	return &cgoDescriptor{ptr: ptr}
}

func (CGOExtractor) KeypointsCount(d Descriptor) int {
	cd, ok := d.(*cgoDescriptor)
	if !ok || cd == nil || cd.ptr == nil {
		return 0
	}
	return int(C.sigfm_keypoints_count(cd.ptr))
}

func (CGOExtractor) MatchScore(a, b Descriptor) int {
	ca, ok1 := a.(*cgoDescriptor)
	cb, ok2 := b.(*cgoDescriptor)
	if !ok1 || !ok2 || ca == nil || cb == nil {
		return -1
	}
	return int(C.sigfm_match_score(ca.ptr, cb.ptr))
}

func (CGOExtractor) Copy(d Descriptor) Descriptor {
	cd, ok := d.(*cgoDescriptor)
	if !ok || cd == nil || cd.ptr == nil {
		return nil
	}
	return &cgoDescriptor{ptr: C.sigfm_copy_info(cd.ptr)}
}

func (CGOExtractor) Release(d Descriptor) {
	cd, ok := d.(*cgoDescriptor)
	if !ok || cd == nil || cd.ptr == nil {
		return
	}
	C.sigfm_free_info(cd.ptr)
	cd.ptr = nil
}
