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

func Example_sortByPixelMz() {
	acq := &Acquisition{
		Pixels:      []int32{2, 0, 2, 0},
		Mzs:         []float64{5, 3, 1, 2},
		Intensities: []float32{50, 30, 10, 20},
		ImageShape:  [2]int{2, 2},
	}

	acq.SortByPixelMz()
	fmt.Println(acq.Pixels, acq.Mzs, acq.Intensities)

	acq.SortByMz()
	fmt.Println(acq.Pixels, acq.Mzs, acq.Intensities)

	acq.Select([]int{0, 3})
	fmt.Println(acq.Pixels, acq.Mzs, acq.Intensities, acq.Len())

	// Output:
	// [0 0 2 2] [2 3 1 5] [20 30 10 50]
	// [2 0 0 2] [1 2 3 5] [10 20 30 50]
	// [2 2] [1 5] [10 50] 2
}

func Example_pixelCoords() {
	shape := [2]int{3, 4}

	row, col := PixelToCoord(7, shape)
	fmt.Println(row, col)
	fmt.Println(CoordToPixel(row, col, shape))
	fmt.Println(CoordToPixel(3, 0, shape))

	// Output:
	// 1 3
	// 7
	// -1
}
