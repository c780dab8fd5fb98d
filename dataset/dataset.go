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

// Package dataset defines the per-slice data object the explorer works from:
// the filtered sample columns of one acquisition, the per-pixel index ranges
// and the averaged spectra, serialised as JSON through fileaccess.
package dataset

import (
	"fmt"
	"path"

	"golang.org/x/exp/slices"

	"github.com/lipidatlas/core/core/fileaccess"
	"github.com/lipidatlas/core/spectra"
)

// SliceData - everything the explorer needs about one slice. The sample
// columns are sorted by (pixel, mz) and indexed by PixelRanges; the averaged
// spectra are sorted by mz.
type SliceData struct {
	Index      int    `json:"index"`
	ImageShape [2]int `json:"imageShape"`

	Pixels      []int32   `json:"pixels"`
	Mzs         []float64 `json:"mzs"`
	Intensities []float32 `json:"intensities"`

	PixelRanges [][2]int32 `json:"pixelRanges"`

	AvgMzs         []float64 `json:"avgMzs"`
	AvgIntensities []float32 `json:"avgIntensities"`

	LowResAvgMzs         []float64 `json:"lowResAvgMzs"`
	LowResAvgIntensities []float32 `json:"lowResAvgIntensities"`
}

// SlicePath - where a slice dataset lives under the dataset root
func SlicePath(root string, index int) string {
	return path.Join(root, fmt.Sprintf("slice_%v.json", index))
}

// Load - reads a slice dataset. Read failures, including not-found, are
// surfaced to the caller, never papered over with an empty object.
func Load(fs fileaccess.FileAccess, bucket string, root string, index int) (*SliceData, error) {
	data := &SliceData{}
	err := fs.ReadJSON(bucket, SlicePath(root, index), data, false)
	if err != nil {
		return nil, err
	}
	if err := data.Check(); err != nil {
		return nil, fmt.Errorf("slice %v dataset is invalid: %w", index, err)
	}
	return data, nil
}

// Save - validates and writes the slice dataset
func (d *SliceData) Save(fs fileaccess.FileAccess, bucket string, root string) error {
	if err := d.Check(); err != nil {
		return fmt.Errorf("refusing to save invalid slice %v dataset: %w", d.Index, err)
	}
	return fs.WriteJSON(bucket, SlicePath(root, d.Index), d)
}

// Check - structural validation of the arrays against each other
func (d *SliceData) Check() error {
	if d.Index < 1 {
		return fmt.Errorf("slice index must be >= 1, got %v", d.Index)
	}
	if d.ImageShape[0] <= 0 || d.ImageShape[1] <= 0 {
		return fmt.Errorf("bad image shape %v", d.ImageShape)
	}
	if len(d.Pixels) != len(d.Mzs) || len(d.Pixels) != len(d.Intensities) {
		return fmt.Errorf("sample columns disagree: %v pixels, %v mzs, %v intensities", len(d.Pixels), len(d.Mzs), len(d.Intensities))
	}
	if len(d.PixelRanges) != d.ImageShape[0]*d.ImageShape[1] {
		return fmt.Errorf("got %v pixel ranges for a %vx%v raster", len(d.PixelRanges), d.ImageShape[0], d.ImageShape[1])
	}
	if len(d.AvgMzs) != len(d.AvgIntensities) {
		return fmt.Errorf("averaged spectrum columns disagree: %v vs %v", len(d.AvgMzs), len(d.AvgIntensities))
	}
	if len(d.LowResAvgMzs) != len(d.LowResAvgIntensities) {
		return fmt.Errorf("low-res averaged spectrum columns disagree: %v vs %v", len(d.LowResAvgMzs), len(d.LowResAvgIntensities))
	}
	if !slices.IsSorted(d.AvgMzs) {
		return fmt.Errorf("averaged spectrum is not sorted by mz")
	}
	return nil
}

// PixelSpectrum - the (mz, intensity) sub-columns of one pixel
func (d *SliceData) PixelSpectrum(pixel int32) ([]float64, []float32) {
	return spectra.PixelSpectrum(pixel, d.Mzs, d.Intensities, d.PixelRanges)
}

// Image - per-pixel summed intensity of an m/z selection as a flat image
func (d *SliceData) Image(lowBound float64, highBound float64) []float64 {
	return spectra.ComputeImage(lowBound, highBound, d.Mzs, d.Intensities, d.PixelRanges)
}
