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
	"math"
)

// MaxReduceResolution - bin widths below this run into float32 intensity
// precision, so callers should treat it as the finest usable setting
const MaxReduceResolution = 1e-4

// ReduceResolutionSorted - rebins a sorted-by-mz spectrum into fixed-width
// buckets of the given resolution, summing intensities that land in the same
// bucket. The representative m/z of a merged bucket is the first m/z seen in
// it, which keeps the operation idempotent: re-applying with the same
// resolution maps every representative back into its own bucket.
//
// Runs in one linear pass. The total intensity is conserved. Empty input
// returns empty output. Returns an error if the input is not sorted.
func ReduceResolutionSorted(mzs []float64, intensities []float32, resolution float64) ([]float64, []float32, error) {
	if err := CheckSortedByMz(mzs); err != nil {
		return nil, nil, err
	}
	if len(mzs) == 0 {
		return []float64{}, []float32{}, nil
	}

	outMz := []float64{mzs[0]}
	outIntensity := []float32{intensities[0]}
	currentBin := int64(math.Floor(mzs[0] / resolution))

	for i := 1; i < len(mzs); i++ {
		bin := int64(math.Floor(mzs[i] / resolution))
		if bin == currentBin {
			outIntensity[len(outIntensity)-1] += intensities[i]
		} else {
			outMz = append(outMz, mzs[i])
			outIntensity = append(outIntensity, intensities[i])
			currentBin = bin
		}
	}

	return outMz, outIntensity, nil
}

// StripZeros - drops all samples whose intensity is zero or NaN, e.g. after
// regridding onto a dense axis
func StripZeros(mzs []float64, intensities []float32) ([]float64, []float32) {
	outMz := []float64{}
	outIntensity := []float32{}
	for i, v := range intensities {
		if v != 0 && !math.IsNaN(float64(v)) {
			outMz = append(outMz, mzs[i])
			outIntensity = append(outIntensity, v)
		}
	}
	return outMz, outIntensity
}

// ToFineGrained - regrids a sparse spectrum onto a dense, fixed-step m/z axis
// spanning [lowBound, highBound], summing samples that map to the same step.
// Running this over a whole acquisition adds the spectra of all pixels, which
// is how the normalised average spectrum gets built.
func ToFineGrained(mzs []float64, intensities []float32, resolution float64, lowBound float64, highBound float64) ([]float64, []float32) {
	n := int(math.Round((highBound - lowBound) / resolution))
	outMz := make([]float64, n)
	outIntensity := make([]float32, n)

	step := (highBound - lowBound) / float64(n-1)
	for i := range outMz {
		outMz[i] = lowBound + float64(i)*step
	}

	for i, mz := range mzs {
		idx := int(math.Round((mz - lowBound) / resolution))
		if idx >= 0 && idx < n {
			outIntensity[idx] += intensities[i]
		}
	}

	return outMz, outIntensity
}
