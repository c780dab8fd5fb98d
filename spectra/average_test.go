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
	"testing"
)

func Example_averagedSpectrum() {
	mzs := []float64{1, 1, 2.5, 2.5, 2.5, 3}
	intensities := []float32{1, 2, 3, 4, 5, 6}

	uniqueMz, counts := UniqueMzCounts(mzs)
	fmt.Println(uniqueMz, counts)

	outMz, summed, err := AveragedSpectrum(mzs, intensities)
	fmt.Println(outMz, summed, err)

	// Counts that don't cover the intensity column
	_, err = AverageSpectrum([]float32{1}, []int32{2})
	fmt.Println(err)

	// Output:
	// [1 2.5 3] [2 3 1]
	// [1 2.5 3] [3 12 6] <nil>
	// unique counts cover 2 samples but only 1 intensities given
}

func Example_normalizeTIC() {
	pixels := []int32{0, 0, 1}
	intensities := []float32{2, 6, 4}

	tic, err := TICPerPixel(pixels, intensities, 3)
	fmt.Println(tic, err)

	NormalizeTIC(pixels, intensities, tic)
	fmt.Println(intensities)

	// Output:
	// [8 4 0] <nil>
	// [0.25 0.75 1]
}

func TestAverageSpectrumConservesIntensity(t *testing.T) {
	mzs := []float64{1, 1, 1, 2, 2, 5, 7, 7}
	intensities := []float32{1, 2, 4, 8, 16, 32, 64, 128}

	_, summed, err := AveragedSpectrum(mzs, intensities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var inSum, outSum float32
	for _, v := range intensities {
		inSum += v
	}
	for _, v := range summed {
		outSum += v
	}
	if inSum != outSum {
		t.Errorf("total intensity changed: in %v, out %v", inSum, outSum)
	}
}
