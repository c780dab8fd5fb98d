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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// IndexBoundaries - finds, in a sorted averaged spectrum, the first indices
// whose m/z crosses the given lower and higher bounds. If a bound lies past
// the end of the axis, the last index is returned.
func IndexBoundaries(mzs []float64, lowBound float64, highBound float64) (int, int) {
	n := len(mzs)
	idxLow := sort.SearchFloat64s(mzs, lowBound)
	if idxLow >= n {
		idxLow = n - 1
	}
	idxHigh := idxLow + sort.SearchFloat64s(mzs[idxLow:], highBound)
	if idxHigh >= n {
		idxHigh = n - 1
	}
	return idxLow, idxHigh
}

// ComputeImage - extracts, for each pixel, the summed intensity of the m/z
// selection [lowBound, highBound] (normally one annotated lipid) and lays it
// out as a flat image of ImageShape size, indexed by flattened pixel.
func ComputeImage(lowBound float64, highBound float64, mzs []float64, intensities []float32, ranges [][2]int32) []float64 {
	image := make([]float64, len(ranges))

	for pixel := range ranges {
		if ranges[pixel][0] == NoPixelSamples {
			continue
		}
		pixMzs, pixIntens := PixelSpectrum(int32(pixel), mzs, intensities, ranges)
		for i, mz := range pixMzs {
			if mz > highBound {
				break
			}
			if mz >= lowBound {
				image[pixel] += float64(pixIntens[i])
			}
		}
	}

	return image
}

// NormalizeImage - rescales an image in place so the given percentile maps to
// 1, clipping above. Percentile normalisation keeps hot pixels from washing
// out the rest of the display range.
func NormalizeImage(image []float64, percentile float64) {
	nonZero := []float64{}
	for _, v := range image {
		if v > 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return
	}

	sort.Float64s(nonZero)
	ref := stat.Quantile(percentile/100, stat.Empirical, nonZero, nil)
	if ref <= 0 {
		ref = floats.Max(nonZero)
	}
	if ref <= 0 {
		return
	}

	for i, v := range image {
		v /= ref
		if v > 1 {
			v = 1
		}
		image[i] = v
	}
}
