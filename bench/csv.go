/*
NAME
  csv.go

DESCRIPTION
  csv.go writes verification records as machine-readable CSV.

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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// WriteCSV writes records in the idx,file,result,score,kp,study_updated
// format spec.md §6 requires for --csv runs.
func WriteCSV(w io.Writer, records []VerifyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"idx", "file", "result", "score", "kp", "study_updated"}); err != nil {
		return fmt.Errorf("bench: csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Index),
			r.File,
			r.Result.String(),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Keypoints),
			strconv.FormatBool(r.StudyUpdated),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("bench: csv row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
