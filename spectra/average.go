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

// UniqueMzCounts - run-length groups a sorted m/z column into its unique
// values and the number of samples carrying each one. Feeds AverageSpectrum.
func UniqueMzCounts(mzs []float64) ([]float64, []int32) {
	uniqueMz := []float64{}
	counts := []int32{}

	for i, mz := range mzs {
		if i == 0 || mz != uniqueMz[len(uniqueMz)-1] {
			uniqueMz = append(uniqueMz, mz)
			counts = append(counts, 1)
		} else {
			counts[len(counts)-1]++
		}
	}

	return uniqueMz, counts
}

// AverageSpectrum - sums intensities per unique-mz group, given intensities
// sorted so each group is a contiguous run and the per-group run lengths.
// Output length equals the number of groups; total intensity is conserved.
func AverageSpectrum(intensities []float32, uniqueCounts []int32) ([]float32, error) {
	summed := make([]float32, len(uniqueCounts))

	j := 0
	for i, count := range uniqueCounts {
		if j+int(count) > len(intensities) {
			return nil, fmt.Errorf("unique counts cover %v samples but only %v intensities given", j+int(count), len(intensities))
		}
		var sum float32
		for k := j; k < j+int(count); k++ {
			sum += intensities[k]
		}
		summed[i] = sum
		j += int(count)
	}

	if j != len(intensities) {
		return nil, fmt.Errorf("unique counts cover %v samples, expected %v", j, len(intensities))
	}

	return summed, nil
}

// AveragedSpectrum - builds the across-pixel averaged spectrum of an
// acquisition sorted by m/z: unique m/z values paired with the intensity
// summed over all pixels sharing each value.
func AveragedSpectrum(mzs []float64, intensities []float32) ([]float64, []float32, error) {
	if err := CheckSortedByMz(mzs); err != nil {
		return nil, nil, err
	}

	uniqueMz, counts := UniqueMzCounts(mzs)
	summed, err := AverageSpectrum(intensities, counts)
	if err != nil {
		return nil, nil, err
	}
	return uniqueMz, summed, nil
}

// TICPerPixel - total ion count per pixel, used to normalise intensities
// before peak filtering so pixels with hot detectors don't dominate
func TICPerPixel(pixels []int32, intensities []float32, totalPixels int) ([]float32, error) {
	tic := make([]float32, totalPixels)
	for i, p := range pixels {
		if p < 0 || int(p) >= totalPixels {
			return nil, fmt.Errorf("pixel index %v out of range, slice has %v pixels", p, totalPixels)
		}
		tic[p] += intensities[i]
	}
	return tic, nil
}

// NormalizeTIC - divides each intensity by its pixel's total ion count, in
// place. Pixels with zero TIC are left untouched.
func NormalizeTIC(pixels []int32, intensities []float32, tic []float32) {
	for i, p := range pixels {
		if tic[p] != 0 {
			intensities[i] /= tic[p]
		}
	}
}
