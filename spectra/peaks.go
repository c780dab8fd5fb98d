// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package spectra

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/lipidatlas/core/core/fileaccess"
	"github.com/lipidatlas/core/core/logger"
)

// PeakWindow - an annotated m/z interval believed to correspond to a real
// molecular peak. Windows come pre-sorted by MinMz and non-overlapping.
type PeakWindow struct {
	MinMz          float64
	MaxMz          float64
	ExpectedPixels int32
}

// FilterPeaks - scans a sorted-by-mz sample stream against sorted peak windows
// and returns the indices of samples falling strictly inside some window
// (MinMz < mz < MaxMz, open on both ends), plus the count of distinct pixels
// observed inside each window that got closed during the scan.
//
// A sample at or below the current window's MinMz is skipped (window not
// reached yet); a sample at or above MaxMz closes the window and moves to the
// next one. The scan stops when either stream runs out. Windows closed with no
// matching samples still record a zero count.
//
// Observed-vs-expected pixel count mismatches are reported through the logger,
// never as errors: acquisition noise makes them routine.
func FilterPeaks(mzs []float64, pixels []int32, windows []PeakWindow, log logger.ILogger) ([]int, []int) {
	kept := []int{}
	pixelCounts := []int{}

	windowPixels := map[int32]bool{}
	idxWindow := 0
	idxSample := 0

	closeWindow := func() {
		pixelCounts = append(pixelCounts, len(windowPixels))
		if log != nil && windows[idxWindow].ExpectedPixels >= 0 && len(windowPixels) != int(windows[idxWindow].ExpectedPixels) {
			log.Debugf("peak window [%v, %v]: observed %v pixels, annotation expected %v",
				windows[idxWindow].MinMz, windows[idxWindow].MaxMz, len(windowPixels), windows[idxWindow].ExpectedPixels)
		}
		windowPixels = map[int32]bool{}
		idxWindow++
	}

	for idxSample < len(mzs) && idxWindow < len(windows) {
		mz := mzs[idxSample]
		window := windows[idxWindow]

		if mz <= window.MinMz {
			// Window not reached yet
			idxSample++
		} else if mz < window.MaxMz {
			// Strictly inside the window
			kept = append(kept, idxSample)
			windowPixels[pixels[idxSample]] = true
			idxSample++
		} else {
			// Beyond the window, close it and tally the distinct pixels seen
			closeWindow()
		}
	}

	return kept, pixelCounts
}

// Column sets tried in order when parsing peak tables. The annotation CSVs
// went through a few format revisions and older slices still carry the
// legacy headers.
var peakTableColumnSets = [][3]string{
	{"min", "max", "n_pix"},
	{"min_mz", "max_mz", "n_pix"},
	{"mz_min", "mz_max", "num_pixels"},
}

// ReadPeakWindows - loads the peak annotation table from a CSV file through
// the given file access. Columns are resolved against known legacy header
// sets; if none matches, the parse failure propagates to the caller.
func ReadPeakWindows(fs fileaccess.FileAccess, bucket string, path string) ([]PeakWindow, error) {
	data, err := fs.ReadObject(bucket, path)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	rows := [][]string{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse peak table %v: %w", path, err)
		}
		rows = append(rows, row)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("peak table %v has no data rows", path)
	}

	header := rows[0]
	var lastErr error
	for _, cols := range peakTableColumnSets {
		windows, err := parsePeakRows(header, rows[1:], cols)
		if err == nil {
			return windows, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("peak table %v matched no known column set: %w", path, lastErr)
}

func parsePeakRows(header []string, rows [][]string, cols [3]string) ([]PeakWindow, error) {
	colIdx := [3]int{-1, -1, -1}
	for i, name := range header {
		for j, want := range cols {
			if name == want {
				colIdx[j] = i
			}
		}
	}
	for j, idx := range colIdx {
		if idx < 0 {
			return nil, fmt.Errorf("missing column %v", cols[j])
		}
	}

	windows := make([]PeakWindow, 0, len(rows))
	for i, row := range rows {
		minMz, err1 := strconv.ParseFloat(row[colIdx[0]], 64)
		maxMz, err2 := strconv.ParseFloat(row[colIdx[1]], 64)
		nPix, err3 := strconv.ParseInt(row[colIdx[2]], 10, 32)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("bad values in peak table row %v", i+1)
		}
		if minMz >= maxMz {
			return nil, fmt.Errorf("peak table row %v: min %v >= max %v", i+1, minMz, maxMz)
		}
		windows = append(windows, PeakWindow{MinMz: minMz, MaxMz: maxMz, ExpectedPixels: int32(nPix)})
	}

	// The merge scan in FilterPeaks needs ascending, non-overlapping windows
	for i := 1; i < len(windows); i++ {
		if windows[i].MinMz < windows[i-1].MaxMz {
			return nil, fmt.Errorf("peak windows %v and %v overlap or are out of order", i-1, i)
		}
	}

	return windows, nil
}
