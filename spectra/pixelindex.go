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
	"fmt"
)

// NoPixelSamples - sentinel range for pixels that contributed no samples
const NoPixelSamples = int32(-1)

// BuildPixelIndex - computes, for every pixel of a slice, the inclusive
// [first, last] offsets of its samples in the pixel column of a stream sorted
// by (pixel, mz). Pixels with no samples get (-1, -1).
//
// Single linear pass: the first occurrence of a pixel sets the start, every
// occurrence updates the end.
func BuildPixelIndex(pixels []int32, totalPixels int) ([][2]int32, error) {
	ranges := make([][2]int32, totalPixels)
	for i := range ranges {
		ranges[i] = [2]int32{NoPixelSamples, NoPixelSamples}
	}

	for i, p := range pixels {
		if p < 0 || int(p) >= totalPixels {
			return nil, fmt.Errorf("pixel index %v out of range, slice has %v pixels", p, totalPixels)
		}
		if ranges[p][0] == NoPixelSamples {
			ranges[p][0] = int32(i)
		}
		ranges[p][1] = int32(i)
	}

	return ranges, nil
}

// PixelSpectrum - returns the (mz, intensity) sub-columns belonging to one
// pixel, using the ranges built by BuildPixelIndex. Empty pixels return nil
// slices. The returned slices alias the input columns.
func PixelSpectrum(pixel int32, mzs []float64, intensities []float32, ranges [][2]int32) ([]float64, []float32) {
	if pixel < 0 || int(pixel) >= len(ranges) || ranges[pixel][0] == NoPixelSamples {
		return nil, nil
	}
	start, end := ranges[pixel][0], ranges[pixel][1]
	return mzs[start : end+1], intensities[start : end+1]
}
