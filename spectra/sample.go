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

// Package spectra implements the raw MALDI spectral pipeline: parsing sparse
// acquisitions into sorted sample streams, peak-window filtering, fixed-width
// rebinning, per-pixel index reconstruction and across-pixel averaging.
package spectra

import (
	"fmt"
	"sort"
)

// Sample - one sparse spectral acquisition point. Within an acquisition,
// samples are globally sorted by (Pixel, Mz) and mz values are strictly
// increasing per pixel until resolution reduction merges bins.
type Sample struct {
	Pixel     int32
	Mz        float64
	Intensity float32
}

// Acquisition - the sparse samples of one slice in column form, the layout
// every kernel in this package works over. Columns are index-aligned.
type Acquisition struct {
	Pixels      []int32
	Mzs         []float64
	Intensities []float32

	// ImageShape is the (height, width) of the acquisition raster
	ImageShape [2]int
}

// Len - number of samples held
func (a *Acquisition) Len() int {
	return len(a.Mzs)
}

// Select - keeps only the samples at the given indices, in order. Used after
// FilterPeaks to drop everything outside annotated windows.
func (a *Acquisition) Select(indices []int) {
	pixels := make([]int32, len(indices))
	mzs := make([]float64, len(indices))
	intensities := make([]float32, len(indices))

	for i, idx := range indices {
		pixels[i] = a.Pixels[idx]
		mzs[i] = a.Mzs[idx]
		intensities[i] = a.Intensities[idx]
	}

	a.Pixels = pixels
	a.Mzs = mzs
	a.Intensities = intensities
}

// SortByMz - sorts the three columns together by ascending m/z. Needed before
// averaging across pixels.
func (a *Acquisition) SortByMz() {
	a.sortBy(func(i, j int) bool {
		return a.Mzs[i] < a.Mzs[j]
	})
}

// SortByPixelMz - sorts by (pixel, m/z) ascending. Needed before building the
// per-pixel index ranges.
func (a *Acquisition) SortByPixelMz() {
	a.sortBy(func(i, j int) bool {
		if a.Pixels[i] != a.Pixels[j] {
			return a.Pixels[i] < a.Pixels[j]
		}
		return a.Mzs[i] < a.Mzs[j]
	})
}

func (a *Acquisition) sortBy(less func(i, j int) bool) {
	order := make([]int, a.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return less(order[i], order[j])
	})
	a.Select(order)
}

// CheckSortedByMz - several kernels rely on pre-sorted input, make the
// precondition explicit rather than silently computing garbage
func CheckSortedByMz(mzs []float64) error {
	for i := 1; i < len(mzs); i++ {
		if mzs[i] < mzs[i-1] {
			return fmt.Errorf("mz array not sorted at index %v: %v < %v", i, mzs[i], mzs[i-1])
		}
	}
	return nil
}

// PixelToCoord - converts a flattened pixel index into (row, col) in the
// acquisition raster
func PixelToCoord(index int32, shape [2]int) (int, int) {
	return int(index) / shape[1], int(index) % shape[1]
}

// CoordToPixel - converts (row, col) into a flattened pixel index. Returns -1
// if the coordinate falls outside the raster.
func CoordToPixel(row int, col int, shape [2]int) int32 {
	idx := row*shape[1] + col
	if idx >= shape[0]*shape[1] {
		return -1
	}
	return int32(idx)
}
